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

func TestJournalCreate(t *testing.T) {
	journalRepo := &stubJournalRepo{}
	service := NewJournal(logger.NewNop(), journalRepo)

	strategy := "breakout"
	entry, err := service.Create(context.Background(), dto.CreateJournalEntryRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 0.5, EntryPrice: 40000,
		Strategy: &strategy, Emotions: "confiant mais un peu nerveux",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TradeSideBuy, entry.Side)
	assert.Equal(t, "confiant mais un peu nerveux", entry.Emotions)
	require.Len(t, journalRepo.entries, 1)
}

func TestJournalCreateSurfacesStoreFailure(t *testing.T) {
	journalRepo := &stubJournalRepo{err: errors.New("db down")}
	service := NewJournal(logger.NewNop(), journalRepo)

	_, err := service.Create(context.Background(), dto.CreateJournalEntryRequest{
		UserID: 1, Symbol: "BTC", Side: "buy", Quantity: 1, EntryPrice: 100,
	})
	assert.Error(t, err)
}
