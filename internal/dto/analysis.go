package dto

import "github.com/kengni1234/kengni-finance-v2/internal/entity"

// PatternFinding is one behavioral red flag emitted by the pattern detector.
type PatternFinding struct {
	Type           entity.PatternType `json:"type"`
	Severity       entity.Severity    `json:"severity"`
	Description    string             `json:"description"`
	Recommendation string             `json:"recommendation"`
}

// ScoreBreakdown is the composite trader score with its sub-scores.
type ScoreBreakdown struct {
	OverallScore             float64 `json:"overall_score"`
	ProfitabilityScore       float64 `json:"profitability_score"`
	RiskManagementScore      float64 `json:"risk_management_score"`
	DisciplineScore          float64 `json:"discipline_score"`
	StrategyConsistencyScore float64 `json:"strategy_consistency_score"`
	EmotionalControlScore    float64 `json:"emotional_control_score"`
	MonthlyTrades            int     `json:"monthly_trades"`
	WinRate                  float64 `json:"win_rate"`
}
