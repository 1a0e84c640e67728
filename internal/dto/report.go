package dto

import "time"

// ReportFigures is the aggregate revenue/expense pair fed to the report
// analyzer.
type ReportFigures struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// ReportInsight is the qualitative output of the report analyzer.
type ReportInsight struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
	Anomalies       []string `json:"anomalies"`
}

// GenerateReportRequest asks for a financial report over a period.
type GenerateReportRequest struct {
	Type  string    `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GenerateReportResponse returns the persisted report id with its insight.
type GenerateReportResponse struct {
	ReportID uint          `json:"report_id"`
	Insight  ReportInsight `json:"insight"`
}
