package models

type RiskLevel string

const (
	RiskHigh     RiskLevel = "HIGH"     // failure rate above 30%
	RiskModerate RiskLevel = "MODERATE" // some failures, at or below 30%
	RiskStable   RiskLevel = "STABLE"   // no recorded failures
)

// highRiskThreshold is the failure-rate cutoff between moderate and high risk.
const highRiskThreshold = 0.30

// HealthStatus is the body of the server's liveness response.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TestRecord summarizes the historical outcomes of a single test as
// reported by the statistics endpoint. LastFailure is nil for tests
// that have never failed.
type TestRecord struct {
	TestID      string  `json:"testID"`
	TestName    string  `json:"testName"`
	PassRate    float64 `json:"passRate"`
	FailureRate float64 `json:"failureRate"`
	RunCount    int     `json:"runCount"`
	LastFailure *string `json:"lastFailure"`
}

// ClassifyRate maps a failure rate onto a risk level. The three levels
// partition [0, 1]: anything above the threshold is high risk, anything
// above zero is moderate, zero is stable.
func ClassifyRate(failureRate float64) RiskLevel {
	switch {
	case failureRate > highRiskThreshold:
		return RiskHigh
	case failureRate > 0:
		return RiskModerate
	default:
		return RiskStable
	}
}

// StabilityReport holds the classified records, one bucket per risk level.
type StabilityReport struct {
	High     []TestRecord
	Moderate []TestRecord
	Stable   []TestRecord
}

func (r StabilityReport) Total() int {
	return len(r.High) + len(r.Moderate) + len(r.Stable)
}
