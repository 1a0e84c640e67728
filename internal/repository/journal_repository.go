package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// JournalRepository defines data operations over trading journal entries.
type JournalRepository interface {
	Create(ctx context.Context, entry *entity.JournalEntry) error
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.JournalEntry, error)
}

// NewJournalRepository creates a new GORM-based journal repository.
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

type journalRepository struct {
	db *gorm.DB
}

// Create inserts a new journal entry.
func (r *journalRepository) Create(ctx context.Context, entry *entity.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindRecent returns up to limit entries for the user, most recent first.
func (r *journalRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.JournalEntry, error) {
	var entries []entity.JournalEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
