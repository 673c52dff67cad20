package models

import "fmt"

// Report mockup types.
const (
	ReportTypeLateNotices       = "late_notices"
	ReportTypeBorrowerStatement = "borrower_statement"
	ReportTypeEscrowAnalysis    = "escrow_analysis"
)

// ValidReportType reports whether t is a known report mockup type.
func ValidReportType(t string) bool {
	switch t {
	case ReportTypeLateNotices, ReportTypeBorrowerStatement, ReportTypeEscrowAnalysis:
		return true
	}
	return false
}

// ReportMockup describes a generated report placeholder. Link is a contract
// with the HTTP layer, which serves /reports/mock/{scenarioId}/{reportType}/{reportId}.
type ReportMockup struct {
	ReportID    string `json:"reportId"`
	ScenarioID  string `json:"scenarioId"`
	ReportType  string `json:"reportType"`
	GeneratedAt string `json:"generatedAt"`
	Link        string `json:"link"`
}

// MockReportLink builds the canonical mock report path.
func MockReportLink(scenarioID, reportType, reportID string) string {
	return fmt.Sprintf("/reports/mock/%s/%s/%s", scenarioID, reportType, reportID)
}
