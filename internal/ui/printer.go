package ui

import (
	"fmt"
	"strconv"

	"github.com/flakeprobe/flakeprobe/internal/models"
	"github.com/pterm/pterm"
)

func PrintHealth(health *models.HealthStatus) {
	pterm.Success.Printf("Server is up: %s - %s\n", health.Status, health.Message)
}

// PrintRecords lists every fetched test with its outcome statistics.
func PrintRecords(records []models.TestRecord) {
	if len(records) == 0 {
		pterm.Info.Println("No test statistics reported for this project.")
		return
	}

	pterm.Info.Printf("Found %d tests with recorded history:\n\n", len(records))

	for _, rec := range records {
		marker := pterm.FgRed.Sprint("FLAKY")
		if rec.FailureRate == 0 {
			marker = pterm.FgGreen.Sprint("STABLE")
		}

		pterm.Printf("   %s %s\n", marker, pterm.FgCyan.Sprint(rec.TestName))
		pterm.Printf("      - Pass Rate: %.1f%%\n", rec.PassRate*100)
		pterm.Printf("      - Failure Rate: %.1f%%\n", rec.FailureRate*100)
		pterm.Printf("      - Total Runs: %d\n", rec.RunCount)
		if rec.LastFailure != nil {
			pterm.Printf("      - Last Failure: %s\n", *rec.LastFailure)
		}
		pterm.Println()
	}
}

// PrintStabilityReport renders the bucket counts and the rosters of the
// high-risk and moderate-risk tests. Stable tests appear only in the count.
func PrintStabilityReport(report models.StabilityReport) {
	pterm.DefaultSection.Println("Test Stability Analysis")

	data := [][]string{
		{"Risk", "Threshold", "Tests"},
		{pterm.FgRed.Sprint("HIGH"), "> 30% failure", strconv.Itoa(len(report.High))},
		{pterm.FgYellow.Sprint("MODERATE"), "1-30% failure", strconv.Itoa(len(report.Moderate))},
		{pterm.FgGreen.Sprint("STABLE"), "0% failure", strconv.Itoa(len(report.Stable))},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if len(report.High) > 0 {
		pterm.Println()
		pterm.Error.Println("Immediate attention needed for:")
		for _, rec := range report.High {
			pterm.Printf("   - %s (%s failure rate)\n", rec.TestName, formatRate(rec.FailureRate))
		}
	}

	if len(report.Moderate) > 0 {
		pterm.Println()
		pterm.Warning.Println("Monitor closely:")
		for _, rec := range report.Moderate {
			pterm.Printf("   - %s (%s failure rate)\n", rec.TestName, formatRate(rec.FailureRate))
		}
	}
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func StartSpinner(text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

func StopSpinner(spinner *pterm.SpinnerPrinter) {
	if spinner != nil {
		_ = spinner.Stop()
	}
}

func FailSpinner(spinner *pterm.SpinnerPrinter, text string) {
	if spinner != nil {
		spinner.Fail(text)
	}
}
