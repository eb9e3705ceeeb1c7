package analyzer

import "github.com/flakeprobe/flakeprobe/internal/models"

// Classify partitions records into the three risk buckets. Every record
// lands in exactly one bucket; input order is preserved within each.
func Classify(records []models.TestRecord) models.StabilityReport {
	var report models.StabilityReport

	for _, rec := range records {
		switch models.ClassifyRate(rec.FailureRate) {
		case models.RiskHigh:
			report.High = append(report.High, rec)
		case models.RiskModerate:
			report.Moderate = append(report.Moderate, rec)
		default:
			report.Stable = append(report.Stable, rec)
		}
	}

	return report
}
