package repository

import (
	"context"

	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// ReportRepository defines data operations over generated reports.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindAll(ctx context.Context, userID uint) ([]entity.Report, error)
}

// NewReportRepository creates a new GORM-based report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

type reportRepository struct {
	db *gorm.DB
}

// Create persists a report.
func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// FindAll returns the user's reports, most recent first.
func (r *reportRepository) FindAll(ctx context.Context, userID uint) ([]entity.Report, error) {
	var reports []entity.Report
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
