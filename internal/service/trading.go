package service

import (
	"context"
	"fmt"
	"math"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/common"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	"github.com/kengni1234/kengni-finance-v2/pkg/telegram"
)

// Trading records trade executions and keeps positions in sync.
type Trading interface {
	Execute(ctx context.Context, req dto.ExecuteTradeRequest) (*entity.Trade, error)
	History(ctx context.Context, userID uint, limit int) ([]entity.Trade, error)
	OpenPositions(ctx context.Context, userID uint) ([]entity.Position, error)
}

// NewTrading creates the trade execution service.
func NewTrading(
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	positionRepo repository.PositionRepository,
	notificationRepo repository.NotificationRepository,
	notifier telegram.Notifier,
) Trading {
	return &trading{
		log:              log,
		tradeRepo:        tradeRepo,
		positionRepo:     positionRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

type trading struct {
	log              *logger.Logger
	tradeRepo        repository.TradeRepository
	positionRepo     repository.PositionRepository
	notificationRepo repository.NotificationRepository
	notifier         telegram.Notifier
}

// Execute validates the request, derives the signed cash-flow amount and
// applies the trade and position update atomically. Buys cost quantity times
// price plus fees; sells net quantity times price minus fees.
func (s *trading) Execute(ctx context.Context, req dto.ExecuteTradeRequest) (*entity.Trade, error) {
	side := entity.TradeSide(req.Side)
	if side != entity.TradeSideBuy && side != entity.TradeSideSell {
		return nil, fmt.Errorf("invalid trade side: %q", req.Side)
	}
	if req.Quantity <= 0 || req.Price <= 0 {
		return nil, fmt.Errorf("quantity and price must be positive")
	}

	var amount float64
	if side == entity.TradeSideBuy {
		amount = -(req.Quantity*req.Price + req.Fees)
	} else {
		amount = req.Quantity*req.Price - req.Fees
	}

	trade := &entity.Trade{
		UserID:   req.UserID,
		Symbol:   req.Symbol,
		Side:     side,
		Quantity: req.Quantity,
		Price:    req.Price,
		Amount:   amount,
		Fees:     req.Fees,
		Strategy: req.Strategy,
	}

	if err := s.positionRepo.ApplyTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to apply trade: %w", err)
	}

	s.log.Info("Trade executed",
		logger.IntField("user_id", int(req.UserID)),
		logger.StringField("symbol", req.Symbol),
		logger.StringField("side", req.Side),
		logger.Float64Field("amount", amount))

	if math.Abs(amount) > common.LargeTransactionThreshold {
		s.notifyLargeTrade(ctx, req, amount)
	}

	return trade, nil
}

// notifyLargeTrade raises an in-app notification and a Telegram alert for
// trades above the large-transaction threshold, both best effort; the trade
// is already committed.
func (s *trading) notifyLargeTrade(ctx context.Context, req dto.ExecuteTradeRequest, amount float64) {
	notification := &entity.Notification{
		UserID:  req.UserID,
		Type:    entity.NotificationAlert,
		Title:   "Trade important",
		Message: fmt.Sprintf("Trade de %.2f€ sur %s enregistré", math.Abs(amount), req.Symbol),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Error("Failed to create large trade notification",
			logger.ErrorField(err), logger.IntField("user_id", int(req.UserID)))
	}
	msg := telegram.FormatTradeAlert(req.UserID, req.Symbol, req.Side, req.Quantity, req.Price)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.log.Warn("Failed to send trade alert",
			logger.ErrorField(err), logger.IntField("user_id", int(req.UserID)))
	}
}

// History returns the user's most recent trades.
func (s *trading) History(ctx context.Context, userID uint, limit int) ([]entity.Trade, error) {
	return s.tradeRepo.FindRecent(ctx, userID, limit)
}

// OpenPositions returns the user's open positions, largest exposure first.
func (s *trading) OpenPositions(ctx context.Context, userID uint) ([]entity.Position, error) {
	return s.positionRepo.FindOpen(ctx, userID)
}
