// commands/check.go
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flakeprobe/flakeprobe/internal/analyzer"
	"github.com/flakeprobe/flakeprobe/internal/client"
	"github.com/flakeprobe/flakeprobe/internal/config"
	"github.com/flakeprobe/flakeprobe/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the full diagnostic sequence",
	Long: `Runs the three diagnostic stages in order: liveness check, statistics
query, and risk classification. Any stage failure aborts the run with a
non-zero exit code; later stages never execute after a failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		probe := client.New(cfg)
		if err := runCheck(ctx, cfg, probe); err != nil {
			os.Exit(1)
		}
	},
}

// runCheck executes the three stages against the given probe client. A
// non-nil error means the run was aborted; the failure has already been
// printed by the time it returns.
func runCheck(ctx context.Context, cfg *config.Config, probe *client.Client) error {
	fmt.Printf("[*] Probing %s\n\n", cfg.Server.BaseURL)

	spinner := ui.StartSpinner("Checking server liveness...")
	health, err := probe.CheckHealth(ctx)
	if err != nil {
		ui.FailSpinner(spinner, fmt.Sprintf("Health check failed: %v", err))
		return err
	}
	ui.StopSpinner(spinner)
	ui.PrintHealth(health)

	spinner = ui.StartSpinner(fmt.Sprintf("Querying flaky-test statistics for %q...", cfg.Query.ProjectID))
	records, err := probe.QueryFlakyTests(ctx, cfg.Query.Limit, cfg.Query.ProjectID)
	if err != nil {
		ui.FailSpinner(spinner, fmt.Sprintf("Statistics query failed: %v", err))
		return err
	}
	ui.StopSpinner(spinner)
	ui.PrintRecords(records)

	report := analyzer.Classify(records)
	ui.PrintStabilityReport(report)

	return nil
}

// resolveConfig merges defaults, the optional config file, environment
// overrides and finally any flags the user set on this invocation.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("server") {
		cfg.Server.BaseURL, _ = cmd.Flags().GetString("server")
	}
	if cmd.Flags().Changed("limit") {
		cfg.Query.Limit, _ = cmd.Flags().GetInt("limit")
	}
	if cmd.Flags().Changed("project") {
		cfg.Query.ProjectID, _ = cmd.Flags().GetString("project")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func init() {
	checkCmd.Flags().IntP("limit", "l", 0, "Maximum number of tests to fetch (overrides config)")
	checkCmd.Flags().StringP("project", "p", "", "Project identifier to query (overrides config)")

	rootCmd.AddCommand(checkCmd)
}
