package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
)

type financeFixture struct {
	transactionRepo  *stubTransactionRepo
	reportRepo       *stubReportRepo
	insightRepo      *stubInsightRepo
	notificationRepo *stubNotificationRepo
	notifier         *capturingNotifier
	service          Finance
}

func newFinanceFixture() *financeFixture {
	f := &financeFixture{
		transactionRepo:  &stubTransactionRepo{},
		reportRepo:       &stubReportRepo{},
		insightRepo:      &stubInsightRepo{},
		notificationRepo: &stubNotificationRepo{},
		notifier:         &capturingNotifier{},
	}
	f.service = NewFinance(logger.NewNop(), f.transactionRepo, f.reportRepo,
		f.insightRepo, f.notificationRepo, NewReportAnalyzer(), f.notifier)
	return f
}

func TestAddTransaction(t *testing.T) {
	f := newFinanceFixture()

	transaction, err := f.service.AddTransaction(context.Background(), dto.AddTransactionRequest{
		UserID: 1, Type: "expense", Category: "logement", Reason: "Loyer", Amount: 800,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionExpense, transaction.Type)
	assert.False(t, transaction.Date.IsZero())
	require.Len(t, f.transactionRepo.created, 1)
	// 800 is under the large-transaction threshold.
	assert.Empty(t, f.notificationRepo.created)
	assert.Empty(t, f.notifier.messages)
}

func TestAddTransactionLargeAmountNotifies(t *testing.T) {
	f := newFinanceFixture()

	_, err := f.service.AddTransaction(context.Background(), dto.AddTransactionRequest{
		UserID: 1, Type: "revenue", Category: "salaire", Reason: "Salaire", Amount: 2500,
	})
	require.NoError(t, err)

	require.Len(t, f.notificationRepo.created, 1)
	notification := f.notificationRepo.created[0]
	assert.Equal(t, "Transaction importante", notification.Title)
	assert.Equal(t, "Transaction de 2500.00€ enregistrée", notification.Message)
	assert.Equal(t, entity.NotificationAlert, notification.Type)

	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "2500.00€")
}

func TestAddTransactionNotificationFailureIsBestEffort(t *testing.T) {
	f := newFinanceFixture()
	f.notificationRepo.err = errors.New("insert failed")
	f.notifier.err = errors.New("telegram down")

	_, err := f.service.AddTransaction(context.Background(), dto.AddTransactionRequest{
		UserID: 1, Type: "expense", Category: "divers", Reason: "Achat", Amount: 5000,
	})
	require.NoError(t, err)
	require.Len(t, f.transactionRepo.created, 1)
}

func TestSummary(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 3000, Expenses: 1800}

	summary, err := f.service.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3000.0, summary.TotalRevenue)
	assert.Equal(t, 1200.0, summary.Cashflow)
	assert.Equal(t, 60.0, summary.ExpenseRatio)
	assert.Equal(t, 40.0, summary.SavingsRate)
}

func TestSummaryZeroRevenue(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 0, Expenses: 900}

	summary, err := f.service.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, -900.0, summary.Cashflow)
	// Ratios stay at zero rather than dividing by zero.
	assert.Equal(t, 0.0, summary.ExpenseRatio)
	assert.Equal(t, 0.0, summary.SavingsRate)
}

func TestSummaryServedFromCacheUntilWrite(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 1000, Expenses: 400}

	first, err := f.service.Summary(context.Background(), 1)
	require.NoError(t, err)

	// Aggregates changed in the store, but the cache entry is still fresh.
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 9999, Expenses: 0}
	cached, err := f.service.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	// A write invalidates the owner's entry.
	_, err = f.service.AddTransaction(context.Background(), dto.AddTransactionRequest{
		UserID: 1, Type: "revenue", Category: "autre", Reason: "Vente", Amount: 10,
	})
	require.NoError(t, err)

	fresh, err := f.service.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, fresh.TotalRevenue)
}

func TestGenerateReport(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 1000, Expenses: 1600}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	resp, err := f.service.GenerateReport(context.Background(), 1, dto.GenerateReportRequest{
		Type: "monthly", Start: start, End: end,
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ReportID)
	assert.Contains(t, resp.Insight.Risks, "🚨 Dépenses supérieures aux revenus - attention critique!")

	require.Len(t, f.reportRepo.created, 1)
	report := f.reportRepo.created[0]
	assert.Equal(t, "monthly", report.ReportType)
	assert.Equal(t, -600.0, report.Profit)
	assert.Equal(t, -60.0, report.ProfitMargin)
	assert.Contains(t, report.Title, "01/01/2025")

	// The insight lands in the analysis store tagged as financial.
	require.Len(t, f.insightRepo.created, 1)
	assert.Equal(t, entity.AnalysisFinancial, f.insightRepo.created[0].AnalysisType)
	assert.Contains(t, string(f.insightRepo.created[0].Data), "réduire les dépenses de 37.50%")
}

func TestGenerateReportInsightFailureIsBestEffort(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.totals = dto.RevenueExpenses{Revenue: 2000, Expenses: 500}
	f.insightRepo.err = errors.New("insert failed")

	resp, err := f.service.GenerateReport(context.Background(), 1, dto.GenerateReportRequest{
		Type: "monthly", Start: time.Now().AddDate(0, -1, 0), End: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ReportID)
}

func TestGenerateReportSurfacesAggregateFailure(t *testing.T) {
	f := newFinanceFixture()
	f.transactionRepo.sumErr = errors.New("db down")

	_, err := f.service.GenerateReport(context.Background(), 1, dto.GenerateReportRequest{
		Type: "monthly", Start: time.Now().AddDate(0, -1, 0), End: time.Now(),
	})
	assert.Error(t, err)
}
