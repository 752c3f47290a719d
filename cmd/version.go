package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rdw version %s\n", versionInfo.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", versionInfo.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built: %s\n", versionInfo.Date)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}
