package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kengni1234/kengni-finance-v2/internal/config"
	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
)

type assistantFixture struct {
	tradeRepo   *stubTradeRepo
	journalRepo *stubJournalRepo
	patternRepo *stubPatternRepo
	service     Assistant
}

func newAssistantFixture() *assistantFixture {
	f := &assistantFixture{
		tradeRepo:   &stubTradeRepo{},
		journalRepo: &stubJournalRepo{},
		patternRepo: &stubPatternRepo{},
	}
	scores := NewTraderScore(config.DefaultScoring(), logger.NewNop(),
		f.tradeRepo, &stubPositionRepo{}, f.patternRepo, &stubScoreRepo{}, nil, 10*time.Minute)
	detector := NewPatternDetector(config.DefaultDetector(), logger.NewNop(),
		f.tradeRepo, f.journalRepo, f.patternRepo, &capturingNotifier{})
	f.service = NewAssistant(logger.NewNop(), f.tradeRepo, scores, detector)
	return f
}

func TestAskLosses(t *testing.T) {
	f := newAssistantFixture()
	f.tradeRepo.losing = []dto.SymbolPnL{
		{Symbol: "DOGE", TotalSell: 100, TotalBuy: -400, TradeCount: 4},
		{Symbol: "SHIB", TotalSell: 50, TotalBuy: -150, TradeCount: 2},
	}

	resp, err := f.service.Ask(context.Background(), 1, "Pourquoi j'ai perdu ce mois-ci?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Vous avez perdu 400.00€ ce mois-ci")
	assert.Contains(t, resp.Answer, "DOGE (-300.00€)")
	assert.Contains(t, resp.Answer, "SHIB (-100.00€)")
	assert.NotNil(t, resp.Data)
}

func TestAskLossesWithoutLosses(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "pourquoi cette perte?")
	require.NoError(t, err)
	assert.Equal(t, "Vous n'avez pas enregistré de pertes ce mois-ci. Bravo!", resp.Answer)
}

func TestAskBestStrategy(t *testing.T) {
	f := newAssistantFixture()
	f.tradeRepo.performance = []dto.StrategyPerformance{
		{Strategy: "momentum", TradeCount: 10, TotalProfit: 850, AvgProfit: 85, Wins: 7, Losses: 3},
		{Strategy: "swing", TradeCount: 5, TotalProfit: 120, AvgProfit: 24, Wins: 3, Losses: 2},
	}

	resp, err := f.service.Ask(context.Background(), 1, "Quelle est ma stratégie la plus rentable?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Votre meilleure stratégie est 'momentum'")
	assert.Contains(t, resp.Answer, "Profit total: 850.00€")
	assert.Contains(t, resp.Answer, "Taux de réussite: 70.0%")
}

func TestAskScore(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "Quel est mon score?")
	require.NoError(t, err)
	// No trade history: neutral baseline everywhere.
	assert.Contains(t, resp.Answer, "Votre score de trader est: 50.0/100")
	assert.Contains(t, resp.Answer, "Rentabilité: 50.0/100")

	breakdown, ok := resp.Data.(*dto.ScoreBreakdown)
	require.True(t, ok)
	assert.Equal(t, 50.0, breakdown.OverallScore)
}

func TestAskScoreWinsOverAdvice(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "Quel est mon score? Un conseil?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Votre score de trader est")
	assert.NotContains(t, resp.Answer, "Recommandations personnalisées")
}

func TestAskGains(t *testing.T) {
	f := newAssistantFixture()
	f.tradeRepo.sellTotals = &dto.SellTotals{TotalGains: 500, TotalLosses: 200, NetProfit: 300}

	resp, err := f.service.Ask(context.Background(), 1, "Combien j'ai gagné?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Gains totaux: 500.00€")
	assert.Contains(t, resp.Answer, "Profit net: 300.00€")
	assert.Contains(t, resp.Answer, "Vous êtes profitable!")
}

func TestAskGainsWithoutHistory(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "Combien j'ai gagné?")
	require.NoError(t, err)
	assert.Equal(t, "Vous n'avez pas encore de trades fermés.", resp.Answer)
}

func TestAskProblems(t *testing.T) {
	f := newAssistantFixture()
	f.tradeRepo.trades = recentTrades(3, entity.TradeSideSell, -75)
	for i := range f.tradeRepo.trades {
		f.tradeRepo.trades[i].CreatedAt = f.tradeRepo.trades[i].CreatedAt.Add(-72 * time.Hour)
	}

	resp, err := f.service.Ask(context.Background(), 1, "Quels sont mes problèmes?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "J'ai détecté 1 problèmes")
	assert.Contains(t, resp.Answer, "REVENGE_TRADING")
}

func TestAskProblemsNoneFound(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "une erreur quelque part?")
	require.NoError(t, err)
	assert.Equal(t, "Aucun problème majeur détecté. Continuez votre bon travail!", resp.Answer)
}

func TestAskAdvice(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "Donne-moi des conseils")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Recommandations personnalisées")
	// Baseline sub-scores of 50 are all under 60.
	assert.Contains(t, resp.Answer, "Discipline: Créez un plan de trading")
	assert.Contains(t, resp.Answer, "Conseil du jour")
}

func TestAskFallsBackToHelp(t *testing.T) {
	f := newAssistantFixture()

	resp, err := f.service.Ask(context.Background(), 1, "Bonjour!")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Je peux vous aider avec:")
	assert.Nil(t, resp.Data)
}

func TestAskLossesPrecedesGains(t *testing.T) {
	f := newAssistantFixture()

	// Holds both "pourquoi"+"perdu" and "combien"+"perdu"; the losses intent
	// is checked first.
	resp, err := f.service.Ask(context.Background(), 1, "Pourquoi et combien j'ai perdu?")
	require.NoError(t, err)
	assert.Equal(t, "Vous n'avez pas enregistré de pertes ce mois-ci. Bravo!", resp.Answer)
}
