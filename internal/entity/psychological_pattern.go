package entity

import "time"

// PatternType identifies a detected adverse trading behavior.
type PatternType string

const (
	PatternFOMO           PatternType = "FOMO"
	PatternRevengeTrading PatternType = "revenge_trading"
	PatternOvertrading    PatternType = "overtrading"
	PatternOverconfidence PatternType = "overconfidence"
	PatternFear           PatternType = "fear"
	PatternGreed          PatternType = "greed"
)

// Severity grades a detected pattern.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// PatternStatus is the lifecycle state of a pattern row. The detector only
// ever writes active rows; resolution is a manual concern.
type PatternStatus string

const (
	PatternStatusActive     PatternStatus = "active"
	PatternStatusResolved   PatternStatus = "resolved"
	PatternStatusMonitoring PatternStatus = "monitoring"
)

// PsychologicalPattern is one detector finding, immutable once written.
type PsychologicalPattern struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	PatternType    PatternType   `gorm:"not null" json:"pattern_type"`
	Severity       Severity      `gorm:"not null" json:"severity"`
	DetectedAt     time.Time     `gorm:"not null" json:"detected_at"`
	Description    string        `json:"description"`
	Recommendation string        `json:"recommendation"`
	Status         PatternStatus `gorm:"not null;default:active" json:"status"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (PsychologicalPattern) TableName() string {
	return "psychological_patterns"
}
