package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand flag
var checkPassword string

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Check whether a hoster URL is supported",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		supported, err := a.Client.IsURLSupported(cmd.Context(), args[0], checkPassword)
		if err != nil {
			return err
		}
		if supported {
			fmt.Fprintln(cmd.OutOrStdout(), "supported")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "not supported")
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	checkCmd.Flags().StringVar(&checkPassword, "password", "", "Password protecting the URL")
	rootCmd.AddCommand(checkCmd)
}
