package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deptrack-sync/internal/declarative"
)

func newValidateCmd(conn *connection) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a manifest without contacting the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := declarative.LoadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}
			if conn.URL != "" {
				manifest.URL = conn.URL
			}
			if conn.APIKey != "" {
				manifest.APIKey = conn.APIKey
			}

			validationErrs := declarative.Validate(manifest)
			if getOutputFormat(cmd) == "json" {
				msgs := make([]string, 0, len(validationErrs))
				for _, ve := range validationErrs {
					msgs = append(msgs, ve.Error())
				}
				return PrintJSON(os.Stdout, map[string]interface{}{
					"valid":  len(validationErrs) == 0,
					"errors": msgs,
				})
			}

			if len(validationErrs) > 0 {
				fmt.Fprintf(os.Stderr, "Manifest has %d validation error(s):\n", len(validationErrs))
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "  - %s\n", ve.Error())
				}
				return fmt.Errorf("manifest validation failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "Manifest is valid.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "file", "f", "deptrack.yaml", "Path to the manifest file")

	return cmd
}
