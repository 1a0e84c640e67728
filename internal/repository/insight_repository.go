package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// InsightRepository defines data operations over persisted analysis insights.
type InsightRepository interface {
	Create(ctx context.Context, insight *entity.Insight) error
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Insight, error)
}

// NewInsightRepository creates a new GORM-based insight repository.
func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

type insightRepository struct {
	db *gorm.DB
}

// Create persists an insight payload.
func (r *insightRepository) Create(ctx context.Context, insight *entity.Insight) error {
	return r.db.WithContext(ctx).Create(insight).Error
}

// FindRecent returns the user's most recent insights.
func (r *insightRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Insight, error) {
	var insights []entity.Insight
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}
