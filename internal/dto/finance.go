package dto

import "time"

// AddTransactionRequest is the payload for recording a financial transaction.
// Field validation happens at the HTTP boundary; the engine does not
// re-validate.
type AddTransactionRequest struct {
	UserID   uint      `json:"user_id"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Reason   string    `json:"reason"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// FinanceSummary is the rolling 30-day financial overview.
type FinanceSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	Cashflow      float64 `json:"cashflow"`
	ExpenseRatio  float64 `json:"expense_ratio"`
	SavingsRate   float64 `json:"savings_rate"`
}

// RevenueExpenses is a raw aggregate pair scanned from the store.
type RevenueExpenses struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}
