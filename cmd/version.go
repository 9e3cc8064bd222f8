// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-schema-service/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Read()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Version: %s\n", info.Version)
		if info.CommitHash != "" {
			fmt.Fprintf(out, "Commit:  %s\n", info.CommitHash)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
