package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand flag
var folderNoUnrestrict bool

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var folderCmd = &cobra.Command{
	Use:   "folder <url>",
	Short: "Expand a folder URL into its member download URLs",
	Long: `Expand a folder URL into individual URLs and unrestrict each of them.
Results are printed in completion order, which need not match the folder
listing order. With --no-unrestrict the raw hoster URLs are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		urls, err := a.Client.UnrestrictFolder(cmd.Context(), args[0], !folderNoUnrestrict)
		if err != nil {
			return err
		}

		for _, u := range urls {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	folderCmd.Flags().BoolVar(&folderNoUnrestrict, "no-unrestrict", false, "Print the raw folder listing without unrestricting")
	rootCmd.AddCommand(folderCmd)
}
