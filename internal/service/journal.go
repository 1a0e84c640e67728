package service

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
)

// Journal manages trading journal entries.
type Journal interface {
	Create(ctx context.Context, req dto.CreateJournalEntryRequest) (*entity.JournalEntry, error)
	List(ctx context.Context, userID uint, limit int) ([]entity.JournalEntry, error)
}

// NewJournal creates the journal service.
func NewJournal(log *logger.Logger, journalRepo repository.JournalRepository) Journal {
	return &journal{log: log, journalRepo: journalRepo}
}

type journal struct {
	log         *logger.Logger
	journalRepo repository.JournalRepository
}

// Create records a journal entry.
func (s *journal) Create(ctx context.Context, req dto.CreateJournalEntryRequest) (*entity.JournalEntry, error) {
	entry := &entity.JournalEntry{
		UserID:          req.UserID,
		Symbol:          req.Symbol,
		Side:            entity.TradeSide(req.Side),
		Quantity:        req.Quantity,
		EntryPrice:      req.EntryPrice,
		ExitPrice:       req.ExitPrice,
		ProfitLoss:      req.ProfitLoss,
		Strategy:        req.Strategy,
		Emotions:        req.Emotions,
		RiskRewardRatio: req.RiskRewardRatio,
	}
	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Debug("Journal entry created",
		logger.IntField("user_id", int(req.UserID)), logger.StringField("symbol", req.Symbol))
	return entry, nil
}

// List returns the user's most recent entries.
func (s *journal) List(ctx context.Context, userID uint, limit int) ([]entity.JournalEntry, error) {
	return s.journalRepo.FindRecent(ctx, userID, limit)
}
