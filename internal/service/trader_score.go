package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kengni1234/kengni-finance-v2/internal/config"
	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/common"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	redisPkg "github.com/kengni1234/kengni-finance-v2/pkg/redis"
	"github.com/kengni1234/kengni-finance-v2/pkg/utils"

	"gorm.io/gorm"
)

// TraderScore computes the composite 0-100 behavioral/performance score.
type TraderScore interface {
	// Calculate recomputes the score from the store and persists a snapshot,
	// except when the user has no trades at all.
	Calculate(ctx context.Context, userID uint) (*dto.ScoreBreakdown, error)
	// Latest returns the current score: cache first, then the latest
	// persisted snapshot, then the neutral baseline.
	Latest(ctx context.Context, userID uint) (*dto.ScoreBreakdown, error)
	// SnapshotAll recomputes the score of every user with trade history.
	SnapshotAll(ctx context.Context)
}

// NewTraderScore creates a new trader score calculator.
func NewTraderScore(
	cfg config.ScoringConfig,
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	positionRepo repository.PositionRepository,
	patternRepo repository.PatternRepository,
	scoreRepo repository.ScoreRepository,
	redisClient *redisPkg.Client,
	cacheTTL time.Duration,
) TraderScore {
	return &traderScore{
		cfg:          cfg,
		log:          log,
		tradeRepo:    tradeRepo,
		positionRepo: positionRepo,
		patternRepo:  patternRepo,
		scoreRepo:    scoreRepo,
		redisClient:  redisClient,
		cacheTTL:     cacheTTL,
	}
}

type traderScore struct {
	cfg          config.ScoringConfig
	log          *logger.Logger
	tradeRepo    repository.TradeRepository
	positionRepo repository.PositionRepository
	patternRepo  repository.PatternRepository
	scoreRepo    repository.ScoreRepository
	redisClient  *redisPkg.Client
	cacheTTL     time.Duration
}

func (s *traderScore) Calculate(ctx context.Context, userID uint) (*dto.ScoreBreakdown, error) {
	trades, err := s.tradeRepo.FindRecent(ctx, userID, s.cfg.TradeLimit)
	if err != nil {
		s.log.Error("Failed to load trades for scoring, returning neutral baseline",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		trades = nil
	}
	if len(trades) == 0 {
		return s.baseline(), nil
	}

	profitability, winRate := s.profitabilityScore(trades)
	riskManagement := s.riskManagementScore(ctx, userID, trades)
	discipline := s.disciplineScore(ctx, userID, trades)
	strategyConsistency := s.strategyConsistencyScore(ctx, userID)
	emotionalControl := s.emotionalControlScore(ctx, userID)

	w := s.cfg.Weights
	overall := round2(profitability*w.Profitability +
		riskManagement*w.RiskManagement +
		discipline*w.Discipline +
		strategyConsistency*w.StrategyConsistency +
		emotionalControl*w.EmotionalControl)

	breakdown := &dto.ScoreBreakdown{
		OverallScore:             overall,
		ProfitabilityScore:       profitability,
		RiskManagementScore:      riskManagement,
		DisciplineScore:          discipline,
		StrategyConsistencyScore: strategyConsistency,
		EmotionalControlScore:    emotionalControl,
		MonthlyTrades:            len(trades),
		WinRate:                  round2(winRate),
	}

	s.snapshot(ctx, userID, breakdown)
	s.cache(ctx, userID, breakdown)

	return breakdown, nil
}

func (s *traderScore) Latest(ctx context.Context, userID uint) (*dto.ScoreBreakdown, error) {
	if s.redisClient != nil {
		key := fmt.Sprintf(common.RedisKeyTraderScore, userID)
		if raw, err := s.redisClient.Get(ctx, key).Result(); err == nil {
			var breakdown dto.ScoreBreakdown
			if err := json.Unmarshal([]byte(raw), &breakdown); err == nil {
				return &breakdown, nil
			}
		}
	}

	score, err := s.scoreRepo.FindLatest(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("Failed to load latest score snapshot, returning neutral baseline",
				logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		}
		return s.baseline(), nil
	}

	return &dto.ScoreBreakdown{
		OverallScore:             score.OverallScore,
		ProfitabilityScore:       score.ProfitabilityScore,
		RiskManagementScore:      score.RiskManagementScore,
		DisciplineScore:          score.DisciplineScore,
		StrategyConsistencyScore: score.StrategyConsistencyScore,
		EmotionalControlScore:    score.EmotionalControlScore,
		MonthlyTrades:            score.MonthlyTrades,
		WinRate:                  score.WinRate,
	}, nil
}

func (s *traderScore) SnapshotAll(ctx context.Context) {
	userIDs, err := s.tradeRepo.ActiveUserIDs(ctx)
	if err != nil {
		s.log.Error("Failed to list users for score snapshot", logger.ErrorField(err))
		return
	}
	for _, userID := range userIDs {
		if _, err := s.Calculate(ctx, userID); err != nil {
			s.log.Error("Failed to snapshot trader score",
				logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		}
	}
	s.log.Info("Trader score snapshot completed", logger.IntField("users", len(userIDs)))
}

func (s *traderScore) baseline() *dto.ScoreBreakdown {
	base := s.cfg.Base
	return &dto.ScoreBreakdown{
		OverallScore:             base,
		ProfitabilityScore:       base,
		RiskManagementScore:      base,
		DisciplineScore:          base,
		StrategyConsistencyScore: base,
		EmotionalControlScore:    base,
	}
}

// profitabilityScore maps the ROI over total invested capital onto the score
// scale, plus the win rate across sells.
func (s *traderScore) profitabilityScore(trades []entity.Trade) (float64, float64) {
	var proceeds, invested float64
	var wins, sells int
	for _, t := range trades {
		switch t.Side {
		case entity.TradeSideSell:
			proceeds += t.Amount
			sells++
			if t.Amount > 0 {
				wins++
			}
		case entity.TradeSideBuy:
			invested += math.Abs(t.Amount)
		}
	}

	score := s.cfg.Base
	if invested > 0 {
		roi := (proceeds - invested) / invested * 100
		score = clamp(s.cfg.Base + roi)
	}

	winRate := 0.0
	if sells > 0 {
		winRate = float64(wins) / float64(sells) * 100
	}
	return score, winRate
}

// riskManagementScore rewards stop-loss coverage and consistent position
// sizing.
func (s *traderScore) riskManagementScore(ctx context.Context, userID uint, trades []entity.Trade) float64 {
	score := s.cfg.Base

	withStopLoss, total, err := s.positionRepo.StopLossCoverage(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load stop-loss coverage, skipping adjustment",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
	} else if total > 0 {
		coverage := float64(withStopLoss) / float64(total) * 100
		score += (coverage - 50) * s.cfg.StopLossFactor
	}

	var buySizes []float64
	for _, t := range trades {
		if t.Side == entity.TradeSideBuy {
			buySizes = append(buySizes, math.Abs(t.Amount))
		}
	}
	if len(buySizes) >= s.cfg.SizingMinSamples {
		cv := coefficientOfVariation(buySizes)
		for _, rule := range s.cfg.Sizing {
			if rule.Matches(cv) {
				score += rule.Delta
			}
		}
	}

	return clamp(score)
}

// disciplineScore applies the trade-frequency rule table and the revenge
// trading penalty.
func (s *traderScore) disciplineScore(ctx context.Context, userID uint, trades []entity.Trade) float64 {
	score := s.cfg.Base

	cutoff := utils.TimeNowParis().Add(-24 * time.Hour)
	recent := 0
	for _, t := range trades {
		if t.CreatedAt.After(cutoff) {
			recent++
		}
	}
	for _, rule := range s.cfg.Discipline {
		if rule.Matches(recent) {
			score += rule.Delta
		}
	}

	revengeCount, err := s.patternRepo.CountActiveByType(ctx, userID, entity.PatternRevengeTrading)
	if err != nil {
		s.log.Error("Failed to count revenge trading patterns, skipping penalty",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		revengeCount = 0
	}
	if revengeCount > 0 {
		score -= s.cfg.RevengePenalty
	}

	return clamp(score)
}

// strategyConsistencyScore rewards concentrating trades on one strategy.
func (s *traderScore) strategyConsistencyScore(ctx context.Context, userID uint) float64 {
	counts, err := s.tradeRepo.StrategyCounts(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load strategy counts, returning neutral score",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		counts = nil
	}
	if len(counts) == 0 {
		return s.cfg.Base
	}

	var most, total int64
	for _, c := range counts {
		total += c.Count
		if c.Count > most {
			most = c.Count
		}
	}
	if total == 0 {
		return s.cfg.Base
	}
	return clamp(float64(most) / float64(total) * 100)
}

// emotionalControlScore decays from 100 with each active pattern.
func (s *traderScore) emotionalControlScore(ctx context.Context, userID uint) float64 {
	active, err := s.patternRepo.CountActive(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count active patterns, skipping penalty",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		active = 0
	}
	return clamp(100 - s.cfg.PatternPenalty*float64(active))
}

func (s *traderScore) snapshot(ctx context.Context, userID uint, b *dto.ScoreBreakdown) {
	snapshot := &entity.TraderScore{
		UserID:                   userID,
		Date:                     utils.TimeNowParis(),
		OverallScore:             b.OverallScore,
		ProfitabilityScore:       b.ProfitabilityScore,
		RiskManagementScore:      b.RiskManagementScore,
		DisciplineScore:          b.DisciplineScore,
		StrategyConsistencyScore: b.StrategyConsistencyScore,
		EmotionalControlScore:    b.EmotionalControlScore,
		MonthlyTrades:            b.MonthlyTrades,
		WinRate:                  b.WinRate,
	}
	if err := s.scoreRepo.Create(ctx, snapshot); err != nil {
		s.log.Error("Failed to persist score snapshot",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
	}
}

func (s *traderScore) cache(ctx context.Context, userID uint, b *dto.ScoreBreakdown) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(b)
	if err != nil {
		return
	}
	key := fmt.Sprintf(common.RedisKeyTraderScore, userID)
	if err := s.redisClient.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.log.Warn("Failed to cache score snapshot",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
	}
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// coefficientOfVariation is the population standard deviation over the mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
