package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
)

func TestExecuteBuyDerivesNegativeAmount(t *testing.T) {
	positionRepo := &stubPositionRepo{}
	notificationRepo := &stubNotificationRepo{}
	notifier := &capturingNotifier{}
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, positionRepo, notificationRepo, notifier)

	trade, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 2, Price: 100, Fees: 5,
	})
	require.NoError(t, err)

	// Buys cost quantity*price plus fees.
	assert.Equal(t, -205.0, trade.Amount)
	assert.Equal(t, entity.TradeSideBuy, trade.Side)
	require.Len(t, positionRepo.applied, 1)
	// An ordinary trade stays quiet.
	assert.Empty(t, notificationRepo.created)
	assert.Empty(t, notifier.messages)
}

func TestExecuteSellDerivesNetAmount(t *testing.T) {
	positionRepo := &stubPositionRepo{}
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, positionRepo, &stubNotificationRepo{}, &capturingNotifier{})

	trade, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "sell", Quantity: 2, Price: 100, Fees: 5,
	})
	require.NoError(t, err)

	// Sells net quantity*price minus fees.
	assert.Equal(t, 195.0, trade.Amount)
}

func TestExecuteLargeTradeNotifies(t *testing.T) {
	notificationRepo := &stubNotificationRepo{}
	notifier := &capturingNotifier{}
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, &stubPositionRepo{}, notificationRepo, notifier)

	// 20 * 100 + 5 fees = 2005€, above the large-transaction threshold.
	trade, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 20, Price: 100, Fees: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, -2005.0, trade.Amount)

	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "Trade important", notificationRepo.created[0].Title)
	assert.Contains(t, notificationRepo.created[0].Message, "2005.00€")
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "BTC")
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, &stubPositionRepo{}, &stubNotificationRepo{}, &capturingNotifier{})

	_, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "short", Quantity: 1, Price: 100,
	})
	assert.ErrorContains(t, err, "invalid trade side")

	_, err = service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 0, Price: 100,
	})
	assert.ErrorContains(t, err, "must be positive")
}

func TestExecuteSurfacesStoreFailure(t *testing.T) {
	positionRepo := &stubPositionRepo{err: errors.New("deadlock")}
	notifier := &capturingNotifier{}
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, positionRepo, &stubNotificationRepo{}, notifier)

	_, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 20, Price: 100,
	})
	require.Error(t, err)
	// A failed trade must not notify.
	assert.Empty(t, notifier.messages)
}

func TestExecuteNotifyFailureDoesNotFailTrade(t *testing.T) {
	notificationRepo := &stubNotificationRepo{err: errors.New("insert failed")}
	notifier := &capturingNotifier{err: errors.New("telegram down")}
	service := NewTrading(logger.NewNop(), &stubTradeRepo{}, &stubPositionRepo{}, notificationRepo, notifier)

	trade, err := service.Execute(context.Background(), dto.ExecuteTradeRequest{
		UserID: 1, Symbol: "ETH", Side: "sell", Quantity: 1, Price: 3000,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, trade.Amount)
}
