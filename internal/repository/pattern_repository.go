package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// PatternRepository defines data operations over detected psychological
// patterns.
type PatternRepository interface {
	CreateBatch(ctx context.Context, patterns []entity.PsychologicalPattern) error
	CountActive(ctx context.Context, userID uint) (int64, error)
	CountActiveByType(ctx context.Context, userID uint, patternType entity.PatternType) (int64, error)
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.PsychologicalPattern, error)
}

// NewPatternRepository creates a new GORM-based pattern repository.
func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

type patternRepository struct {
	db *gorm.DB
}

// CreateBatch inserts every finding of one detection run.
func (r *patternRepository) CreateBatch(ctx context.Context, patterns []entity.PsychologicalPattern) error {
	if len(patterns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&patterns).Error
}

// CountActive counts the user's active pattern rows.
func (r *patternRepository) CountActive(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PsychologicalPattern{}).
		Where("user_id = ? AND status = ?", userID, entity.PatternStatusActive).
		Count(&count).Error
	return count, err
}

// CountActiveByType counts the user's active pattern rows of one type.
func (r *patternRepository) CountActiveByType(ctx context.Context, userID uint, patternType entity.PatternType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PsychologicalPattern{}).
		Where("user_id = ? AND pattern_type = ? AND status = ?", userID, patternType, entity.PatternStatusActive).
		Count(&count).Error
	return count, err
}

// FindRecent returns the user's most recent pattern rows.
func (r *patternRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.PsychologicalPattern, error) {
	var patterns []entity.PsychologicalPattern
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("detected_at DESC").
		Limit(limit).
		Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}
