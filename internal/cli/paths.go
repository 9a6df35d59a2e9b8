// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UntaDotMy/AugmentCode-Free/internal/ide"
)

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the locations that clean would sweep, per editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, kind := range ide.Kinds() {
				p, err := ide.Resolve(kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s:\n", kind)
				fmt.Fprintf(w, "  globalStorage:      %s\n", p.GlobalStorage)
				fmt.Fprintf(w, "  workspaceStorage:   %s\n", p.WorkspaceStorage)
				fmt.Fprintf(w, "  history:            %s\n", p.History)
				fmt.Fprintf(w, "  extensions:         %s\n", p.ProfileExtensions)
				fmt.Fprintf(w, "  extensions manifest: %s\n", p.ExtensionsManifest)
			}
			return nil
		},
	}
}
