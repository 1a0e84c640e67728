package repository

import (
	"context"
	"errors"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PositionRepository defines data operations over positions.
type PositionRepository interface {
	FindOpen(ctx context.Context, userID uint) ([]entity.Position, error)
	StopLossCoverage(ctx context.Context, userID uint) (withStopLoss, total int64, err error)
	// ApplyTrade inserts the trade row and adjusts the user's open position in
	// one transaction. The position row is locked for the duration so
	// concurrent submissions for the same (user, symbol) serialize. Quantity
	// may go negative on oversell; that state is preserved as-is.
	ApplyTrade(ctx context.Context, trade *entity.Trade) error
}

// NewPositionRepository creates a new GORM-based position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

type positionRepository struct {
	db *gorm.DB
}

// FindOpen returns the user's open positions.
func (r *positionRepository) FindOpen(ctx context.Context, userID uint) ([]entity.Position, error) {
	var positions []entity.Position
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entity.PositionStatusOpen).
		Order("quantity * current_price DESC").
		Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// StopLossCoverage counts the user's positions with and without a stop loss.
func (r *positionRepository) StopLossCoverage(ctx context.Context, userID uint) (int64, int64, error) {
	var withStopLoss, total int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Where("user_id = ? AND stop_loss IS NOT NULL", userID).
		Count(&withStopLoss).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.Position{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	return withStopLoss, total, nil
}

// ApplyTrade records the trade and updates the open position atomically.
func (r *positionRepository) ApplyTrade(ctx context.Context, trade *entity.Trade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trade).Error; err != nil {
			return err
		}

		var pos entity.Position
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND symbol = ? AND status = ?",
				trade.UserID, trade.Symbol, entity.PositionStatusOpen).
			First(&pos).Error

		switch {
		case err == nil:
			if trade.Side == entity.TradeSideBuy {
				newQuantity := pos.Quantity + trade.Quantity
				if newQuantity != 0 {
					pos.AvgPrice = (pos.Quantity*pos.AvgPrice + trade.Quantity*trade.Price) / newQuantity
				}
				pos.Quantity = newQuantity
			} else {
				pos.Quantity -= trade.Quantity
			}
			return tx.Save(&pos).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			if trade.Side != entity.TradeSideBuy {
				// Sell with no open position: nothing to decrement.
				return nil
			}
			return tx.Create(&entity.Position{
				UserID:       trade.UserID,
				Symbol:       trade.Symbol,
				Quantity:     trade.Quantity,
				AvgPrice:     trade.Price,
				CurrentPrice: trade.Price,
				Status:       entity.PositionStatusOpen,
			}).Error

		default:
			return err
		}
	})
}
