package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand flags
var (
	unrestrictPassword string
	unrestrictRemote   bool
	unrestrictJSON     bool
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var unrestrictCmd = &cobra.Command{
	Use:   "unrestrict <url>",
	Short: "Unrestrict a hoster URL into a direct download URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		link, err := a.Client.UnrestrictLink(cmd.Context(), args[0], unrestrictPassword, unrestrictRemote)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if unrestrictJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(link)
		}

		fmt.Fprintln(out, link.UnrestrictedURL)
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	unrestrictCmd.Flags().StringVar(&unrestrictPassword, "password", "", "Password protecting the URL")
	unrestrictCmd.Flags().BoolVar(&unrestrictRemote, "remote", false, "Use remote traffic")
	unrestrictCmd.Flags().BoolVar(&unrestrictJSON, "json", false, "Print the full result as JSON")
	rootCmd.AddCommand(unrestrictCmd)
}
