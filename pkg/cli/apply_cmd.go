package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"deptrack-sync/internal/declarative"
	"deptrack-sync/internal/deptrack"
	"deptrack-sync/internal/reconcile"
)

func newApplyCmd(conn *connection) *cobra.Command {
	var (
		manifestPath string
		check        bool
		autoApprove  bool
		verbose      bool
		concurrency  int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run a reconciliation pass against the server",
		Long:  "Reads the manifest, compares it with the server's observed access-control state, and applies the operations needed to converge.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 1. Load the desired state.
			manifest, err := declarative.LoadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			// Flags, environment, and profile override the manifest.
			if conn.URL != "" {
				manifest.URL = conn.URL
			}
			if conn.APIKey != "" {
				manifest.APIKey = conn.APIKey
			}

			// 2. Validate.
			if validationErrs := declarative.Validate(manifest); len(validationErrs) > 0 {
				fmt.Fprintf(os.Stderr, "Manifest has %d validation error(s):\n", len(validationErrs))
				for _, ve := range validationErrs {
					fmt.Fprintf(os.Stderr, "  - %s\n", ve.Error())
				}
				return fmt.Errorf("manifest validation failed")
			}
			if err := validateServerURL(manifest.URL); err != nil {
				return err
			}

			// 3. Confirm destructive passes unless auto-approved.
			if manifest.State == declarative.StateAbsent && !check && !autoApprove {
				if !IsStdinTTY() {
					return fmt.Errorf("confirmation required but stdin is not a terminal; use --auto-approve")
				}
				_, _ = fmt.Fprintf(os.Stdout, "State is %q: groups, teams, and projects named in the manifest will be deleted.\nContinue? [y/N] ",
					manifest.State)
				reader := bufio.NewReader(os.Stdin)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read confirmation: %w", err)
				}
				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" && answer != "yes" {
					_, _ = fmt.Fprintln(os.Stdout, "Apply cancelled.")
					return nil
				}
			}

			// 4. Run the pass.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

			client := deptrack.NewClient(manifest.URL, manifest.APIKey)
			reconciler := reconcile.New(client, reconcile.Options{
				Logger:          logger,
				CheckMode:       check,
				TreeConcurrency: concurrency,
			})

			result, err := reconciler.Run(cmd.Context(), manifest)
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}

			// 5. Report.
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, result)
			}
			if check {
				_, _ = fmt.Fprintln(os.Stdout, "Check mode: no changes applied.")
				return nil
			}
			if result.Changed {
				_, _ = fmt.Fprintln(os.Stdout, "Apply complete: server state changed.")
			} else {
				_, _ = fmt.Fprintln(os.Stdout, "Apply complete: no changes.")
			}
			for team, keys := range result.APIKeys {
				for _, key := range keys {
					_, _ = fmt.Fprintf(os.Stdout, "  team %s api key: %s\n", team, key)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "file", "f", "deptrack.yaml", "Path to the manifest file")
	cmd.Flags().BoolVar(&check, "check", false, "Read and validate but apply no changes")
	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Skip confirmation for destructive passes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every applied operation")
	cmd.Flags().IntVar(&concurrency, "tree-concurrency", 1, "Parallel subtree fetches while rebuilding the project tree")

	return cmd
}
