package commands

import (
	"os"

	"github.com/flakeprobe/flakeprobe/internal/logging"
	"github.com/flakeprobe/flakeprobe/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flakeprobe",
	Short: "flakeprobe smoke-tests a flaky-test intelligence server",
	Long: `flakeprobe is a diagnostic probe for servers that expose test outcome
statistics. It checks the server's liveness endpoint, queries per-test
pass/failure history for a project, and reports which tests need attention.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logging.SetDebugMode()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	ui.PrintBanner()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to YAML config file (optional)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "Server base URL (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose debug logging")
}
