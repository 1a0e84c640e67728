package dto

// CreateJournalEntryRequest is the payload for adding a trading journal
// entry. Chart image upload is handled by an external collaborator; entries
// here carry data only.
type CreateJournalEntryRequest struct {
	UserID          uint     `json:"user_id"`
	Symbol          string   `json:"symbol"`
	Side            string   `json:"side"`
	Quantity        float64  `json:"quantity"`
	EntryPrice      float64  `json:"entry_price"`
	ExitPrice       *float64 `json:"exit_price,omitempty"`
	ProfitLoss      *float64 `json:"profit_loss,omitempty"`
	Strategy        *string  `json:"strategy,omitempty"`
	Emotions        string   `json:"emotions,omitempty"`
	RiskRewardRatio *float64 `json:"risk_reward_ratio,omitempty"`
}
