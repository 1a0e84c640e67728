package entity

import "time"

// PositionStatus is the lifecycle state of a position.
type PositionStatus string

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusClosed PositionStatus = "closed"
)

// Position is the net holding of one user in one symbol. At most one open row
// exists per (user, symbol). Quantity may go negative after an oversell; no
// short-position semantics are attached to that state.
type Position struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index:idx_positions_user_symbol" json:"user_id"`
	Symbol       string         `gorm:"not null;index:idx_positions_user_symbol" json:"symbol"`
	Quantity     float64        `gorm:"not null" json:"quantity"`
	AvgPrice     float64        `gorm:"not null" json:"avg_price"`
	CurrentPrice float64        `gorm:"not null" json:"current_price"`
	StopLoss     *float64       `json:"stop_loss,omitempty"`
	Status       PositionStatus `gorm:"not null;default:open" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Position) TableName() string {
	return "positions"
}
