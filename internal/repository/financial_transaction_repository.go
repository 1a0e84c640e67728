package repository

import (
	"context"
	"time"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// FinancialTransactionRepository defines data operations over the personal
// finance ledger.
type FinancialTransactionRepository interface {
	Create(ctx context.Context, transaction *entity.FinancialTransaction) error
	FindRecent(ctx context.Context, userID uint, limit int) ([]entity.FinancialTransaction, error)
	SumRevenueExpenses(ctx context.Context, userID uint, start, end time.Time) (*dto.RevenueExpenses, error)
}

// NewFinancialTransactionRepository creates a new GORM-based ledger repository.
func NewFinancialTransactionRepository(db *gorm.DB) FinancialTransactionRepository {
	return &financialTransactionRepository{db: db}
}

type financialTransactionRepository struct {
	db *gorm.DB
}

// Create inserts a new ledger entry.
func (r *financialTransactionRepository) Create(ctx context.Context, transaction *entity.FinancialTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindRecent returns up to limit ledger entries, most recent first.
func (r *financialTransactionRepository) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.FinancialTransaction, error) {
	var transactions []entity.FinancialTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// SumRevenueExpenses aggregates revenue and expense amounts over a period.
func (r *financialTransactionRepository) SumRevenueExpenses(ctx context.Context, userID uint, start, end time.Time) (*dto.RevenueExpenses, error) {
	var totals dto.RevenueExpenses
	if err := r.db.WithContext(ctx).
		Model(&entity.FinancialTransaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = 'revenue' THEN amount ELSE 0 END), 0) AS revenue,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses`).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}
