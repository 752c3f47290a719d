package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the authenticated account profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close()

		p := a.Client.Profile()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:        %d\n", p.ID)
		fmt.Fprintf(out, "Username:  %s\n", p.Username)
		fmt.Fprintf(out, "Email:     %s\n", p.Email)
		fmt.Fprintf(out, "Type:      %s\n", p.Type)
		fmt.Fprintf(out, "Points:    %d\n", p.Points)
		fmt.Fprintf(out, "Language:  %s (%s)\n", p.LanguageName, p.LanguageCode)
		if p.Premium {
			fmt.Fprintf(out, "Premium until: %s\n", p.PremiumExpiresAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(userCmd)
}
