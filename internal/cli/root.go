// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/UntaDotMy/AugmentCode-Free/internal/cli/midcobra"
	"github.com/UntaDotMy/AugmentCode-Free/internal/debug"
)

var debugMiddleware = &midcobra.DebugMiddleware{}

type rootCmdFlags struct {
	quiet bool
}

func RootCmd() *cobra.Command {
	flags := rootCmdFlags{}
	command := &cobra.Command{
		Use:   "augment-free",
		Short: "Remove Augment extension state from VS Code-family editors",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.quiet {
				cmd.SetErr(io.Discard)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	command.AddCommand(cleanCmd())
	command.AddCommand(pathsCmd())
	command.AddCommand(versionCmd())

	command.PersistentFlags().BoolVarP(
		&flags.quiet, "quiet", "q", false, "suppresses logs")
	debugMiddleware.AttachToFlag(command.PersistentFlags(), "debug")

	return command
}

func Execute(ctx context.Context, args []string) int {
	defer debug.Recover()
	exe := midcobra.New(RootCmd())
	exe.AddMiddleware(debugMiddleware)
	return exe.Execute(ctx, args)
}

func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:]))
}
