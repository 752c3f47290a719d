package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand flags
var (
	timeISO  bool
	timeUnix bool
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Show the Real-Debrid server time",
	Long: `Fetch the server time. Works without credentials: with no --token or
--username the request is sent anonymously.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		switch {
		case timeUnix && timeISO:
			ts, err := a.Client.ServerISOTimeUnix(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ts)
		case timeUnix:
			ts, err := a.Client.ServerTimeUnix(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ts)
		case timeISO:
			text, err := a.Client.ServerISOTime(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
		default:
			text, err := a.Client.ServerTime(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	timeCmd.Flags().BoolVar(&timeISO, "iso", false, "Use the ISO time endpoint")
	timeCmd.Flags().BoolVar(&timeUnix, "unix", false, "Print a Unix timestamp")
	rootCmd.AddCommand(timeCmd)
}
