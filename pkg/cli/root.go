// Package cli implements the deptrack-sync command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"deptrack-sync/internal/deptrack"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var apiErr *deptrack.APIError
			if errors.As(err, &apiErr) {
				errObj["http_status"] = apiErr.HTTPStatus
			}
			_ = PrintJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// connection holds the server coordinates resolved from flags, environment,
// profile, and manifest, in that order of precedence.
type connection struct {
	URL    string
	APIKey string
}

func newRootCmd() *cobra.Command {
	var (
		serverURL string
		apiKey    string
		output    string
		profile   string
	)

	rootCmd := &cobra.Command{
		Use:           "deptrack-sync",
		Short:         "Dependency-Track access-control reconciler",
		Long:          "Converges a Dependency-Track server's OIDC groups, teams, permissions, projects, and portfolio ACLs toward a declarative manifest.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional.
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}
			p := cfg.ActiveProfile(profile)

			// Precedence: flag > env > profile.
			resolveString(cmd.Flags(), "url", &serverURL, "DEPTRACK_URL", p.URL)
			resolveString(cmd.Flags(), "api-key", &apiKey, "DEPTRACK_API_KEY", p.APIKey)
			resolveString(cmd.Flags(), "output", &output, "DEPTRACK_OUTPUT", p.Output)

			if err := validateOutputFormat(output); err != nil {
				return err
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Dependency-Track API server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	conn := &connection{}
	originalPreRun := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := originalPreRun(cmd, args); err != nil {
			return err
		}
		conn.URL = serverURL
		conn.APIKey = apiKey
		return nil
	}

	rootCmd.AddCommand(newApplyCmd(conn))
	rootCmd.AddCommand(newValidateCmd(conn))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// resolveString fills target from the environment or the active profile when
// the flag was not set explicitly.
func resolveString(fs *pflag.FlagSet, name string, target *string, envVar, profileValue string) {
	if fs.Changed(name) {
		return
	}
	if v := os.Getenv(envVar); v != "" {
		*target = v
		return
	}
	if profileValue != "" {
		*target = profileValue
	}
}
