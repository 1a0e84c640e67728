package entity

import "time"

// TradeSide is the direction of a trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is a single executed trade. Amount carries the cash-flow sign
// convention: negative for buys (cost plus fees), positive net of fees for
// sells.
type Trade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Symbol    string    `gorm:"not null" json:"symbol"`
	Side      TradeSide `gorm:"not null" json:"side"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Fees      float64   `gorm:"not null;default:0" json:"fees"`
	Strategy  *string   `json:"strategy,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// IsLosingSell reports whether the trade is a sell that closed at a loss.
func (t Trade) IsLosingSell() bool {
	return t.Side == TradeSideSell && t.Amount < 0
}
