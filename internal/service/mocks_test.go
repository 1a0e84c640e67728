package service

import (
	"context"
	"time"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"

	"gorm.io/gorm"
)

// In-memory stubs for the repository interfaces. Each stub serves the subset
// of queries the services under test actually issue and lets a test force an
// error on any of them.

type stubTradeRepo struct {
	trades      []entity.Trade
	counts      []dto.StrategyCount
	losing      []dto.SymbolPnL
	performance []dto.StrategyPerformance
	sellTotals  *dto.SellTotals
	userIDs     []uint
	err         error
}

func (m *stubTradeRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Trade, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.trades) > limit {
		return m.trades[:limit], nil
	}
	return m.trades, nil
}

func (m *stubTradeRepo) StrategyCounts(ctx context.Context, userID uint) ([]dto.StrategyCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.counts, nil
}

func (m *stubTradeRepo) LosingSymbolsSince(ctx context.Context, userID uint, since time.Time) ([]dto.SymbolPnL, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.losing, nil
}

func (m *stubTradeRepo) StrategyPerformance(ctx context.Context, userID uint) ([]dto.StrategyPerformance, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.performance, nil
}

func (m *stubTradeRepo) SellTotals(ctx context.Context, userID uint) (*dto.SellTotals, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.sellTotals == nil {
		return &dto.SellTotals{}, nil
	}
	return m.sellTotals, nil
}

func (m *stubTradeRepo) ActiveUserIDs(ctx context.Context) ([]uint, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.userIDs, nil
}

type stubJournalRepo struct {
	entries []entity.JournalEntry
	err     error
}

func (m *stubJournalRepo) Create(ctx context.Context, entry *entity.JournalEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *stubJournalRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.JournalEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

type stubPatternRepo struct {
	created      []entity.PsychologicalPattern
	activeCount  int64
	countsByType map[entity.PatternType]int64
	createErr    error
	countErr     error
}

func (m *stubPatternRepo) CreateBatch(ctx context.Context, patterns []entity.PsychologicalPattern) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, patterns...)
	return nil
}

func (m *stubPatternRepo) CountActive(ctx context.Context, userID uint) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.activeCount, nil
}

func (m *stubPatternRepo) CountActiveByType(ctx context.Context, userID uint, patternType entity.PatternType) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.countsByType[patternType], nil
}

func (m *stubPatternRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.PsychologicalPattern, error) {
	return m.created, nil
}

type stubPositionRepo struct {
	positions    []entity.Position
	withStopLoss int64
	total        int64
	applied      []entity.Trade
	err          error
}

func (m *stubPositionRepo) FindOpen(ctx context.Context, userID uint) ([]entity.Position, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.positions, nil
}

func (m *stubPositionRepo) StopLossCoverage(ctx context.Context, userID uint) (int64, int64, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.withStopLoss, m.total, nil
}

func (m *stubPositionRepo) ApplyTrade(ctx context.Context, trade *entity.Trade) error {
	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, *trade)
	return nil
}

type stubScoreRepo struct {
	created []entity.TraderScore
	latest  *entity.TraderScore
	err     error
}

func (m *stubScoreRepo) Create(ctx context.Context, score *entity.TraderScore) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *score)
	return nil
}

func (m *stubScoreRepo) FindLatest(ctx context.Context, userID uint) (*entity.TraderScore, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.latest, nil
}

type stubTransactionRepo struct {
	created []entity.FinancialTransaction
	totals  dto.RevenueExpenses
	err     error
	sumErr  error
}

func (m *stubTransactionRepo) Create(ctx context.Context, transaction *entity.FinancialTransaction) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *transaction)
	return nil
}

func (m *stubTransactionRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.FinancialTransaction, error) {
	return m.created, nil
}

func (m *stubTransactionRepo) SumRevenueExpenses(ctx context.Context, userID uint, start, end time.Time) (*dto.RevenueExpenses, error) {
	if m.sumErr != nil {
		return nil, m.sumErr
	}
	totals := m.totals
	return &totals, nil
}

type stubReportRepo struct {
	created []entity.Report
	err     error
}

func (m *stubReportRepo) Create(ctx context.Context, report *entity.Report) error {
	if m.err != nil {
		return m.err
	}
	report.ID = uint(len(m.created) + 1)
	m.created = append(m.created, *report)
	return nil
}

func (m *stubReportRepo) FindAll(ctx context.Context, userID uint) ([]entity.Report, error) {
	return m.created, nil
}

type stubInsightRepo struct {
	created []entity.Insight
	err     error
}

func (m *stubInsightRepo) Create(ctx context.Context, insight *entity.Insight) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *insight)
	return nil
}

func (m *stubInsightRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Insight, error) {
	return m.created, nil
}

type stubNotificationRepo struct {
	created []entity.Notification
	err     error
}

func (m *stubNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *notification)
	return nil
}

func (m *stubNotificationRepo) FindRecent(ctx context.Context, userID uint, limit int) ([]entity.Notification, error) {
	return m.created, nil
}

func (m *stubNotificationRepo) MarkRead(ctx context.Context, id, userID uint) error {
	for i := range m.created {
		if m.created[i].ID == id {
			m.created[i].IsRead = true
		}
	}
	return nil
}

func (m *stubNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range m.created {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// capturingNotifier records every message instead of sending it.
type capturingNotifier struct {
	messages []string
	err      error
}

func (m *capturingNotifier) SendMessage(text string) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, text)
	return nil
}
