package entity

import "time"

// TraderScore is an append-only snapshot of the composite trader score and
// its sub-scores. The latest row by date is the current score.
type TraderScore struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	UserID                   uint      `gorm:"not null;index" json:"user_id"`
	Date                     time.Time `gorm:"not null" json:"date"`
	OverallScore             float64   `gorm:"not null" json:"overall_score"`
	ProfitabilityScore       float64   `json:"profitability_score"`
	RiskManagementScore      float64   `json:"risk_management_score"`
	DisciplineScore          float64   `json:"discipline_score"`
	StrategyConsistencyScore float64   `json:"strategy_consistency_score"`
	EmotionalControlScore    float64   `json:"emotional_control_score"`
	MonthlyTrades            int       `json:"monthly_trades"`
	WinRate                  float64   `json:"win_rate"`
	CreatedAt                time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TraderScore) TableName() string {
	return "trader_scores"
}
