package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// ScoreRepository defines data operations over trader score snapshots.
type ScoreRepository interface {
	Create(ctx context.Context, score *entity.TraderScore) error
	FindLatest(ctx context.Context, userID uint) (*entity.TraderScore, error)
}

// NewScoreRepository creates a new GORM-based score repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

type scoreRepository struct {
	db *gorm.DB
}

// Create appends a score snapshot.
func (r *scoreRepository) Create(ctx context.Context, score *entity.TraderScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

// FindLatest returns the most recent snapshot for the user.
func (r *scoreRepository) FindLatest(ctx context.Context, userID uint) (*entity.TraderScore, error) {
	var score entity.TraderScore
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}
