package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var disableCmd = &cobra.Command{
	Use:   "disable-token",
	Short: "Disable the current API token",
	Long: `Disable the active API token. The remote service issues a replacement
token immediately; read it from https://real-debrid.com/apitoken or let the
next credential-based run derive and cache it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		redacted, err := a.Client.DisableCurrentToken(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "API token %s has been disabled.\n", redacted)
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(disableCmd)
}
