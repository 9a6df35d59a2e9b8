// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/UntaDotMy/AugmentCode-Free/internal/cleaner"
	"github.com/UntaDotMy/AugmentCode-Free/internal/cli/usererr"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ide"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux"
)

type cleanFlags struct {
	ide   string
	force bool
	yes   bool
}

func cleanCmd() *cobra.Command {
	flags := cleanFlags{}
	command := &cobra.Command{
		Use:   "clean",
		Short: "Clean Augment state databases, history and extensions",
		Long: "Clean removes the Augment extension's state databases from global and " +
			"per-workspace storage, the local History folder, matching extension " +
			"directories, and matching records in extensions.json. " +
			"With --force, files locked by a running editor are escalated: " +
			"retried, their holder processes killed, and finally removed with " +
			"platform-native forced-delete commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanCmd(cmd, flags)
		},
	}
	command.Flags().StringVar(
		&flags.ide, "ide", string(ide.VSCode),
		"editor to clean (vscode, vscode-insiders, cursor)")
	command.Flags().BoolVarP(
		&flags.force, "force", "f", false,
		"escalate when files are locked, killing holder processes if needed")
	command.Flags().BoolVarP(
		&flags.yes, "yes", "y", false,
		"skip the confirmation prompt")
	return command
}

func runCleanCmd(cmd *cobra.Command, flags cleanFlags) error {
	kind, err := ide.ParseKind(flags.ide)
	if err != nil {
		return err
	}
	paths, err := ide.Resolve(kind)
	if err != nil {
		return err
	}

	if !flags.yes {
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Close %s and clean its Augment state now?", kind),
		}
		confirmed := false
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			return usererr.NewWarning("aborted, nothing was cleaned")
		}
	}

	engine := cleaner.New(cleaner.DefaultConfig(), cmd.ErrOrStderr())
	tally := engine.CleanIDE(paths, flags.force)

	w := cmd.OutOrStdout()
	ux.Fsuccessf(w,
		"%s cleanup finished: removed %d item(s) "+
			"(globalStorage %d, workspaceStorage %d in %d workspace(s), history %d, profile %d)\n",
		kind, tally.Total(),
		tally.GlobalStorage, tally.WorkspaceStorage, tally.Workspaces,
		tally.History, tally.Profile)
	if tally.Total() == 0 && !flags.force {
		ux.Finfof(w, "nothing was removed; if files are locked by a running editor, re-run with --force\n")
	}
	return nil
}
