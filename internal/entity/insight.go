package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisType tags a persisted insight payload.
type AnalysisType string

const (
	AnalysisFinancial     AnalysisType = "financial"
	AnalysisTrading       AnalysisType = "trading"
	AnalysisPsychological AnalysisType = "psychological"
)

// Insight stores an analysis result as an opaque serialized payload alongside
// its classification tag.
type Insight struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	AnalysisType AnalysisType   `gorm:"not null" json:"analysis_type"`
	Subject      string         `json:"subject"`
	Data         datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Insight) TableName() string {
	return "insights"
}
