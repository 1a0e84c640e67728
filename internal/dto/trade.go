package dto

// ExecuteTradeRequest is the payload for executing a simulated trade.
type ExecuteTradeRequest struct {
	UserID   uint    `json:"user_id"`
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Fees     float64 `json:"fees"`
	Strategy *string `json:"strategy,omitempty"`
}

// StrategyCount is the number of trades tagged with one strategy.
type StrategyCount struct {
	Strategy string `json:"strategy"`
	Count    int64  `json:"count"`
}

// SymbolPnL aggregates signed amounts per symbol.
type SymbolPnL struct {
	Symbol     string  `json:"symbol"`
	TotalSell  float64 `json:"total_sell"`
	TotalBuy   float64 `json:"total_buy"`
	TradeCount int64   `json:"trade_count"`
}

// Net is the signed result for the symbol over the aggregated period.
func (s SymbolPnL) Net() float64 {
	return s.TotalSell + s.TotalBuy
}

// StrategyPerformance aggregates closed-trade results per strategy.
type StrategyPerformance struct {
	Strategy    string  `json:"strategy"`
	TradeCount  int64   `json:"trade_count"`
	TotalProfit float64 `json:"total_profit"`
	AvgProfit   float64 `json:"avg_profit"`
	Wins        int64   `json:"wins"`
	Losses      int64   `json:"losses"`
}

// SellTotals aggregates closed-trade gains and losses for one user.
type SellTotals struct {
	TotalGains  float64 `json:"total_gains"`
	TotalLosses float64 `json:"total_losses"`
	NetProfit   float64 `json:"net_profit"`
}
