// Package cmd implements the rdw command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rdw/internal/app"
	rdwerrors "rdw/internal/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile  string
	apiToken string
	username string
	verbose  bool
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "rdw",
	Short: "A CLI for the Real-Debrid unrestriction service",
	Long: `rdw talks to the Real-Debrid REST API: inspect your account, check
hoster support, and unrestrict links and folders.

Authenticate with --token, or with --username plus a password taken from
the RDW_PASSWORD environment variable or an interactive prompt. When only
a username and password are given, the API token is derived through the
Real-Debrid web login and cached locally for later runs.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rdw/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&apiToken, "token", "", "Real-Debrid API token (env: RDW_TOKEN)")
	rootCmd.PersistentFlags().
		StringVar(&username, "username", "", "Real-Debrid account username (env: RDW_USERNAME)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func initConfig() {
	viper.SetEnvPrefix("RDW")
	viper.AutomaticEnv()

	if apiToken == "" {
		apiToken = viper.GetString("token")
	}
	if username == "" {
		username = viper.GetString("username")
	}
}

// newApp wires an application for the current flag set. With anonymousOK and
// no credentials at all, the session opens in anonymous mode.
func newApp(ctx context.Context, anonymousOK bool) (*app.App, error) {
	password := ""
	if apiToken == "" && username != "" {
		var err error
		password, err = app.PasswordReader().ReadPassword(ctx, fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return nil, err
		}
	}

	anonymous := anonymousOK && apiToken == "" && username == ""

	a, err := app.New(ctx, app.Options{
		ConfigPath: cfgFile,
		APIToken:   apiToken,
		Username:   username,
		Password:   password,
		Anonymous:  anonymous,
		Verbose:    verbose,
	})
	if err != nil {
		if errors.Is(err, rdwerrors.ErrMissingCredentials) {
			return nil, fmt.Errorf("%w (set --token or --username)", err)
		}
		return nil, err
	}
	return a, nil
}
