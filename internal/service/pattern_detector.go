package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kengni1234/kengni-finance-v2/internal/config"
	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/entity"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	"github.com/kengni1234/kengni-finance-v2/pkg/telegram"
	"github.com/kengni1234/kengni-finance-v2/pkg/utils"
)

// PatternDetector scans a user's recent trades and journal entries for
// behavioral red flags.
type PatternDetector interface {
	Detect(ctx context.Context, userID uint) ([]dto.PatternFinding, error)
}

// NewPatternDetector creates a new pattern detector driven by the given rule
// configuration.
func NewPatternDetector(
	cfg config.DetectorConfig,
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	journalRepo repository.JournalRepository,
	patternRepo repository.PatternRepository,
	notifier telegram.Notifier,
) PatternDetector {
	return &patternDetector{
		cfg:         cfg,
		log:         log,
		tradeRepo:   tradeRepo,
		journalRepo: journalRepo,
		patternRepo: patternRepo,
		notifier:    notifier,
	}
}

type patternDetector struct {
	cfg         config.DetectorConfig
	log         *logger.Logger
	tradeRepo   repository.TradeRepository
	journalRepo repository.JournalRepository
	patternRepo repository.PatternRepository
	notifier    telegram.Notifier
}

// Detect evaluates every rule independently and emits all applicable
// findings. Each finding is persisted as a new pattern row; repeated runs
// accumulate rows on purpose. Store failures degrade to empty history
// rather than failing the request.
func (d *patternDetector) Detect(ctx context.Context, userID uint) ([]dto.PatternFinding, error) {
	trades, err := d.tradeRepo.FindRecent(ctx, userID, d.cfg.TradeLimit)
	if err != nil {
		d.log.Error("Failed to load trades for pattern detection, continuing with empty history",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		trades = nil
	}
	entries, err := d.journalRepo.FindRecent(ctx, userID, d.cfg.JournalLimit)
	if err != nil {
		d.log.Error("Failed to load journal entries for pattern detection, continuing with empty history",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		entries = nil
	}

	now := utils.TimeNowParis()
	findings := []dto.PatternFinding{}
	findings = append(findings, d.detectOvertrading(trades, now)...)
	findings = append(findings, d.detectFOMO(trades)...)
	findings = append(findings, d.detectRevengeTrading(trades)...)
	findings = append(findings, d.detectEmotions(entries)...)

	d.persist(ctx, userID, findings, now)
	d.alertCritical(userID, findings)

	return findings, nil
}

// detectOvertrading counts trades inside the rolling window.
func (d *patternDetector) detectOvertrading(trades []entity.Trade, now time.Time) []dto.PatternFinding {
	cutoff := now.Add(-time.Duration(d.cfg.Overtrading.WindowHours) * time.Hour)
	recent := 0
	for _, t := range trades {
		if t.CreatedAt.After(cutoff) {
			recent++
		}
	}
	if recent <= d.cfg.Overtrading.Threshold {
		return nil
	}

	severity := entity.SeverityMedium
	if recent > d.cfg.Overtrading.HighThreshold {
		severity = entity.SeverityHigh
	}
	return []dto.PatternFinding{{
		Type:           entity.PatternOvertrading,
		Severity:       severity,
		Description:    fmt.Sprintf("Vous avez effectué %d transactions en 24h", recent),
		Recommendation: "Prenez du recul. Le overtrading augmente les frais et diminue la qualité des décisions.",
	}}
}

// detectFOMO counts buy/losing-sell adjacencies inside the most recent
// trades. The list arrives most recent first.
func (d *patternDetector) detectFOMO(trades []entity.Trade) []dto.PatternFinding {
	buyAroundLoss := 0
	for i := 1; i < len(trades) && i < d.cfg.FOMO.Window; i++ {
		if trades[i].Side == entity.TradeSideBuy && trades[i-1].IsLosingSell() {
			buyAroundLoss++
		}
	}
	if buyAroundLoss < d.cfg.FOMO.Threshold {
		return nil
	}
	return []dto.PatternFinding{{
		Type:           entity.PatternFOMO,
		Severity:       entity.SeverityHigh,
		Description:    "Tendance à acheter immédiatement après des pertes",
		Recommendation: "Attendez 30 minutes avant toute nouvelle transaction après une perte.",
	}}
}

// detectRevengeTrading finds the longest run of consecutive losing sells.
func (d *patternDetector) detectRevengeTrading(trades []entity.Trade) []dto.PatternFinding {
	run, longest := 0, 0
	for _, t := range trades {
		if t.IsLosingSell() {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < d.cfg.Revenge.RunLength {
		return nil
	}
	return []dto.PatternFinding{{
		Type:           entity.PatternRevengeTrading,
		Severity:       entity.SeverityCritical,
		Description:    fmt.Sprintf("%d pertes consécutives détectées", longest),
		Recommendation: "Arrêtez de trader après 2 pertes consécutives. Analysez vos erreurs.",
	}}
}

// detectEmotions mines journal emotion notes against the configured keyword
// sets. One entry can yield several findings.
func (d *patternDetector) detectEmotions(entries []entity.JournalEntry) []dto.PatternFinding {
	emotions := make([]string, 0, len(d.cfg.EmotionKeywords))
	for emotion := range d.cfg.EmotionKeywords {
		emotions = append(emotions, emotion)
	}
	sort.Strings(emotions)

	var findings []dto.PatternFinding
	for _, entry := range entries {
		if entry.Emotions == "" {
			continue
		}
		text := strings.ToLower(entry.Emotions)
		for _, emotion := range emotions {
			for _, keyword := range d.cfg.EmotionKeywords[emotion] {
				if strings.Contains(text, keyword) {
					findings = append(findings, dto.PatternFinding{
						Type:           entity.PatternType(emotion),
						Severity:       entity.SeverityMedium,
						Description:    fmt.Sprintf("Émotion détectée: %s", emotion),
						Recommendation: "Identifiée dans votre journal. Restez objectif.",
					})
					break
				}
			}
		}
	}
	return findings
}

func (d *patternDetector) persist(ctx context.Context, userID uint, findings []dto.PatternFinding, now time.Time) {
	if len(findings) == 0 {
		return
	}
	rows := make([]entity.PsychologicalPattern, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, entity.PsychologicalPattern{
			UserID:         userID,
			PatternType:    f.Type,
			Severity:       f.Severity,
			DetectedAt:     now,
			Description:    f.Description,
			Recommendation: f.Recommendation,
			Status:         entity.PatternStatusActive,
		})
	}
	if err := d.patternRepo.CreateBatch(ctx, rows); err != nil {
		d.log.Error("Failed to persist pattern findings",
			logger.ErrorField(err), logger.IntField("user_id", int(userID)))
	}
}

// alertCritical pushes a Telegram alert for critical findings, best effort.
func (d *patternDetector) alertCritical(userID uint, findings []dto.PatternFinding) {
	for _, f := range findings {
		if f.Severity != entity.SeverityCritical {
			continue
		}
		msg := telegram.FormatPatternAlert(userID, string(f.Type), string(f.Severity), f.Description, f.Recommendation)
		if err := d.notifier.SendMessage(msg); err != nil {
			d.log.Warn("Failed to send pattern alert",
				logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		}
	}
}
