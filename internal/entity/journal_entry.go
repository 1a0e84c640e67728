package entity

import "time"

// JournalEntry is a trading journal record. Emotions holds free text that the
// pattern detector mines for emotional keywords.
type JournalEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Symbol          string    `gorm:"not null" json:"symbol"`
	Side            TradeSide `gorm:"not null" json:"side"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	EntryPrice      float64   `gorm:"not null" json:"entry_price"`
	ExitPrice       *float64  `json:"exit_price,omitempty"`
	ProfitLoss      *float64  `json:"profit_loss,omitempty"`
	Strategy        *string   `json:"strategy,omitempty"`
	Emotions        string    `json:"emotions,omitempty"`
	RiskRewardRatio *float64  `json:"risk_reward_ratio,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
