package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/datatypes"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/common"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	"github.com/kengni1234/kengni-finance-v2/pkg/telegram"
	"github.com/kengni1234/kengni-finance-v2/pkg/utils"
)

// Finance manages the personal ledger, the rolling summary and financial
// report generation.
type Finance interface {
	AddTransaction(ctx context.Context, req dto.AddTransactionRequest) (*entity.FinancialTransaction, error)
	Summary(ctx context.Context, userID uint) (*dto.FinanceSummary, error)
	GenerateReport(ctx context.Context, userID uint, req dto.GenerateReportRequest) (*dto.GenerateReportResponse, error)
	Reports(ctx context.Context, userID uint) ([]entity.Report, error)
	Insights(ctx context.Context, userID uint, limit int) ([]entity.Insight, error)
}

// NewFinance creates the finance service. The summary cache keeps hot
// aggregates in process for five minutes; writes invalidate the owner's entry.
func NewFinance(
	log *logger.Logger,
	transactionRepo repository.FinancialTransactionRepository,
	reportRepo repository.ReportRepository,
	insightRepo repository.InsightRepository,
	notificationRepo repository.NotificationRepository,
	analyzer *ReportAnalyzer,
	notifier telegram.Notifier,
) Finance {
	return &finance{
		log:              log,
		transactionRepo:  transactionRepo,
		reportRepo:       reportRepo,
		insightRepo:      insightRepo,
		notificationRepo: notificationRepo,
		analyzer:         analyzer,
		notifier:         notifier,
		summaryCache:     gocache.New(5*time.Minute, 10*time.Minute),
	}
}

type finance struct {
	log              *logger.Logger
	transactionRepo  repository.FinancialTransactionRepository
	reportRepo       repository.ReportRepository
	insightRepo      repository.InsightRepository
	notificationRepo repository.NotificationRepository
	analyzer         *ReportAnalyzer
	notifier         telegram.Notifier
	summaryCache     *gocache.Cache
}

// AddTransaction records a ledger entry. Amounts above the large-transaction
// threshold additionally raise an in-app notification and a Telegram alert,
// both best effort.
func (s *finance) AddTransaction(ctx context.Context, req dto.AddTransactionRequest) (*entity.FinancialTransaction, error) {
	transaction := &entity.FinancialTransaction{
		UserID:   req.UserID,
		Type:     entity.TransactionType(req.Type),
		Category: req.Category,
		Reason:   req.Reason,
		Amount:   req.Amount,
		Date:     req.Date,
	}
	if transaction.Date.IsZero() {
		transaction.Date = utils.TimeNowParis()
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.summaryCache.Delete(fmt.Sprintf(common.CacheKeyFinanceSummary, req.UserID))

	if req.Amount > common.LargeTransactionThreshold {
		s.notifyLargeTransaction(ctx, req)
	}

	return transaction, nil
}

func (s *finance) notifyLargeTransaction(ctx context.Context, req dto.AddTransactionRequest) {
	notification := &entity.Notification{
		UserID:  req.UserID,
		Type:    entity.NotificationAlert,
		Title:   "Transaction importante",
		Message: fmt.Sprintf("Transaction de %.2f€ enregistrée", req.Amount),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Error("Failed to create large transaction notification",
			logger.ErrorField(err), logger.IntField("user_id", int(req.UserID)))
	}
	msg := telegram.FormatLargeTransactionAlert(req.UserID, req.Amount, req.Reason)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.log.Warn("Failed to send large transaction alert",
			logger.ErrorField(err), logger.IntField("user_id", int(req.UserID)))
	}
}

// Summary computes the rolling 30-day revenue/expense overview, served from
// the in-process cache when fresh.
func (s *finance) Summary(ctx context.Context, userID uint) (*dto.FinanceSummary, error) {
	key := fmt.Sprintf(common.CacheKeyFinanceSummary, userID)
	if cached, found := s.summaryCache.Get(key); found {
		if summary, ok := cached.(*dto.FinanceSummary); ok {
			return summary, nil
		}
	}

	end := utils.TimeNowParis()
	start := end.AddDate(0, 0, -30)
	totals, err := s.transactionRepo.SumRevenueExpenses(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	summary := &dto.FinanceSummary{
		TotalRevenue:  totals.Revenue,
		TotalExpenses: totals.Expenses,
		Cashflow:      totals.Revenue - totals.Expenses,
	}
	if totals.Revenue > 0 {
		summary.ExpenseRatio = totals.Expenses / totals.Revenue * 100
		summary.SavingsRate = (totals.Revenue - totals.Expenses) / totals.Revenue * 100
	}

	s.summaryCache.Set(key, summary, gocache.DefaultExpiration)
	return summary, nil
}

// GenerateReport aggregates the period, persists the report row and stores the
// analyzer's insight as a tagged payload. Insight persistence is best effort;
// the report itself is authoritative.
func (s *finance) GenerateReport(ctx context.Context, userID uint, req dto.GenerateReportRequest) (*dto.GenerateReportResponse, error) {
	totals, err := s.transactionRepo.SumRevenueExpenses(ctx, userID, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate report period: %w", err)
	}

	figures := dto.ReportFigures{Revenue: totals.Revenue, Expenses: totals.Expenses}
	insight := s.analyzer.Analyze(figures)

	report := &entity.Report{
		UserID:       userID,
		Title:        fmt.Sprintf("Rapport %s du %s au %s", req.Type, req.Start.Format("02/01/2006"), req.End.Format("02/01/2006")),
		ReportType:   req.Type,
		PeriodStart:  req.Start,
		PeriodEnd:    req.End,
		Revenue:      totals.Revenue,
		Expenses:     totals.Expenses,
		Profit:       totals.Revenue - totals.Expenses,
		ProfitMargin: ProfitMargin(totals.Revenue, totals.Expenses),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	if payload, err := json.Marshal(insight); err == nil {
		row := &entity.Insight{
			UserID:       userID,
			AnalysisType: entity.AnalysisFinancial,
			Subject:      report.Title,
			Data:         datatypes.JSON(payload),
		}
		if err := s.insightRepo.Create(ctx, row); err != nil {
			s.log.Error("Failed to persist report insight",
				logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		}
	}

	return &dto.GenerateReportResponse{ReportID: report.ID, Insight: insight}, nil
}

// Reports lists the user's generated reports.
func (s *finance) Reports(ctx context.Context, userID uint) ([]entity.Report, error) {
	return s.reportRepo.FindAll(ctx, userID)
}

// Insights lists the user's most recent persisted analysis payloads.
func (s *finance) Insights(ctx context.Context, userID uint, limit int) ([]entity.Insight, error) {
	return s.insightRepo.FindRecent(ctx, userID, limit)
}
