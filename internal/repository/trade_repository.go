package repository

import (
	"context"
	"time"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// TradeRepository defines data operations over executed trades, including the
// aggregate queries the analysis engine and the assistant rely on.
type TradeRepository interface {
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Trade, error)
	StrategyCounts(ctx context.Context, userID uint) ([]dto.StrategyCount, error)
	LosingSymbolsSince(ctx context.Context, userID uint, since time.Time) ([]dto.SymbolPnL, error)
	StrategyPerformance(ctx context.Context, userID uint) ([]dto.StrategyPerformance, error)
	SellTotals(ctx context.Context, userID uint) (*dto.SellTotals, error)
	ActiveUserIDs(ctx context.Context) ([]uint, error)
}

// NewTradeRepository creates a new GORM-based trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

type tradeRepository struct {
	db *gorm.DB
}

// FindRecent returns up to limit trades for the user, most recent first.
func (r *tradeRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Trade, error) {
	var trades []entity.Trade
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}

// StrategyCounts returns per-strategy trade counts for strategy-tagged trades.
func (r *tradeRepository) StrategyCounts(ctx context.Context, userID uint) ([]dto.StrategyCount, error) {
	var counts []dto.StrategyCount
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Select("strategy, COUNT(*) AS count").
		Where("user_id = ? AND strategy IS NOT NULL", userID).
		Group("strategy").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// LosingSymbolsSince returns the symbols with a net negative signed amount
// since the given time, worst first.
func (r *tradeRepository) LosingSymbolsSince(ctx context.Context, userID uint, since time.Time) ([]dto.SymbolPnL, error) {
	var rows []dto.SymbolPnL
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Select(`symbol,
			SUM(CASE WHEN side = 'sell' THEN amount ELSE 0 END) AS total_sell,
			SUM(CASE WHEN side = 'buy' THEN amount ELSE 0 END) AS total_buy,
			COUNT(*) AS trade_count`).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("symbol").
		Having("SUM(amount) < 0").
		Order("SUM(amount) ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// StrategyPerformance aggregates closed-trade results per strategy, most
// profitable first.
func (r *tradeRepository) StrategyPerformance(ctx context.Context, userID uint) ([]dto.StrategyPerformance, error) {
	var rows []dto.StrategyPerformance
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Select(`strategy,
			COUNT(*) AS trade_count,
			SUM(amount) AS total_profit,
			AVG(amount) AS avg_profit,
			SUM(CASE WHEN amount > 0 THEN 1 ELSE 0 END) AS wins,
			SUM(CASE WHEN amount < 0 THEN 1 ELSE 0 END) AS losses`).
		Where("user_id = ? AND strategy IS NOT NULL AND side = 'sell'", userID).
		Group("strategy").
		Order("total_profit DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SellTotals aggregates gains, losses and net profit over all sells.
func (r *tradeRepository) SellTotals(ctx context.Context, userID uint) (*dto.SellTotals, error) {
	var totals dto.SellTotals
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Select(`COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_gains,
			COALESCE(SUM(CASE WHEN amount < 0 THEN ABS(amount) ELSE 0 END), 0) AS total_losses,
			COALESCE(SUM(amount), 0) AS net_profit`).
		Where("user_id = ? AND side = 'sell'", userID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}

// ActiveUserIDs lists every user id with at least one trade.
func (r *tradeRepository) ActiveUserIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&entity.Trade{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
