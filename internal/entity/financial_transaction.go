package entity

import "time"

// TransactionType classifies a financial transaction.
type TransactionType string

const (
	TransactionRevenue    TransactionType = "revenue"
	TransactionExpense    TransactionType = "expense"
	TransactionReceivable TransactionType = "receivable"
	TransactionCredit     TransactionType = "credit"
	TransactionDebt       TransactionType = "debt"
	TransactionInvestment TransactionType = "investment"
)

// FinancialTransaction is a personal finance ledger entry.
type FinancialTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	Type      TransactionType `gorm:"not null" json:"type"`
	Category  string          `gorm:"not null" json:"category"`
	Reason    string          `gorm:"not null" json:"reason"`
	Amount    float64         `gorm:"not null" json:"amount"`
	Date      time.Time       `gorm:"not null" json:"date"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}
