package entity

import "time"

// Report is a generated financial report over a period.
type Report struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	ReportType   string    `gorm:"not null" json:"report_type"`
	PeriodStart  time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd    time.Time `gorm:"not null" json:"period_end"`
	Revenue      float64   `gorm:"not null;default:0" json:"revenue"`
	Expenses     float64   `gorm:"not null;default:0" json:"expenses"`
	Profit       float64   `gorm:"not null;default:0" json:"profit"`
	ProfitMargin float64   `gorm:"not null;default:0" json:"profit_margin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
