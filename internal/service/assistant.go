package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
	"github.com/kengni1234/kengni-finance-v2/internal/repository"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"
	"github.com/kengni1234/kengni-finance-v2/pkg/utils"
)

// Assistant answers free-text questions about a user's trading and finances
// by routing them to the analysis components. Calls are independent; no
// conversation state is kept.
type Assistant interface {
	Ask(ctx context.Context, userID uint, question string) (*dto.ChatResponse, error)
}

// NewAssistant creates the conversational query router.
func NewAssistant(
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	scores TraderScore,
	detector PatternDetector,
) Assistant {
	a := &assistant{
		log:       log,
		tradeRepo: tradeRepo,
		scores:    scores,
		detector:  detector,
	}
	// Ordered intent table, first match wins. The order is part of the
	// contract: a question holding both "score" and "conseil" resolves to the
	// score intent. Do not reorder.
	a.intents = []intent{
		{name: "losses", groups: [][]string{{"pourquoi"}, {"perdu", "perte"}}, handle: a.answerLosses},
		{name: "best_strategy", groups: [][]string{{"stratégie"}, {"rentable", "meilleur"}}, handle: a.answerBestStrategy},
		{name: "score", groups: [][]string{{"score", "performance"}}, handle: a.answerScore},
		{name: "gains", groups: [][]string{{"combien"}, {"gagn", "perdu"}}, handle: a.answerGains},
		{name: "problems", groups: [][]string{{"problème", "erreur"}}, handle: a.answerProblems},
		{name: "advice", groups: [][]string{{"conseil", "recommandation"}}, handle: a.answerAdvice},
	}
	return a
}

// intent matches when every group has at least one phrase present in the
// question.
type intent struct {
	name   string
	groups [][]string
	handle func(ctx context.Context, userID uint) (*dto.ChatResponse, error)
}

func (i intent) matches(question string) bool {
	for _, group := range i.groups {
		found := false
		for _, phrase := range group {
			if strings.Contains(question, phrase) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type assistant struct {
	log       *logger.Logger
	tradeRepo repository.TradeRepository
	scores    TraderScore
	detector  PatternDetector
	intents   []intent
}

func (a *assistant) Ask(ctx context.Context, userID uint, question string) (*dto.ChatResponse, error) {
	q := strings.ToLower(question)
	for _, it := range a.intents {
		if it.matches(q) {
			a.log.Debug("Routing assistant question",
				logger.StringField("intent", it.name), logger.IntField("user_id", int(userID)))
			return it.handle(ctx, userID)
		}
	}
	return a.help(), nil
}

func (a *assistant) answerLosses(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	since := utils.TimeNowParis().AddDate(0, 0, -30)
	rows, err := a.tradeRepo.LosingSymbolsSince(ctx, userID, since)
	if err != nil {
		a.log.Error("Failed to load losing symbols", logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		rows = nil
	}
	if len(rows) == 0 {
		return &dto.ChatResponse{Answer: "Vous n'avez pas enregistré de pertes ce mois-ci. Bravo!"}, nil
	}

	var totalLoss float64
	for _, r := range rows {
		totalLoss += r.Net()
	}

	var parts []string
	for i, r := range rows {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%.2f€)", r.Symbol, r.Net()))
	}

	answer := fmt.Sprintf("Vous avez perdu %.2f€ ce mois-ci. Les principales pertes proviennent de: %s",
		-totalLoss, strings.Join(parts, ", "))
	return &dto.ChatResponse{Answer: answer, Data: rows}, nil
}

func (a *assistant) answerBestStrategy(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	rows, err := a.tradeRepo.StrategyPerformance(ctx, userID)
	if err != nil {
		a.log.Error("Failed to load strategy performance", logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		rows = nil
	}
	if len(rows) == 0 {
		return &dto.ChatResponse{Answer: "Vous n'avez pas encore de données de stratégie enregistrées."}, nil
	}

	best := rows[0]
	winRate := 0.0
	if best.TradeCount > 0 {
		winRate = float64(best.Wins) / float64(best.TradeCount) * 100
	}

	answer := fmt.Sprintf("Votre meilleure stratégie est '%s' avec:\n"+
		"• Profit total: %.2f€\n"+
		"• %d trades\n"+
		"• Taux de réussite: %.1f%%\n"+
		"• Profit moyen: %.2f€",
		best.Strategy, best.TotalProfit, best.TradeCount, winRate, best.AvgProfit)
	return &dto.ChatResponse{Answer: answer, Data: rows}, nil
}

func (a *assistant) answerScore(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	breakdown, err := a.scores.Calculate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Votre score de trader est: %.1f/100\n\nDétails:\n", breakdown.OverallScore)
	fmt.Fprintf(&b, "• Rentabilité: %.1f/100\n", breakdown.ProfitabilityScore)
	fmt.Fprintf(&b, "• Gestion du risque: %.1f/100\n", breakdown.RiskManagementScore)
	fmt.Fprintf(&b, "• Discipline: %.1f/100\n", breakdown.DisciplineScore)
	fmt.Fprintf(&b, "• Cohérence stratégique: %.1f/100\n", breakdown.StrategyConsistencyScore)
	fmt.Fprintf(&b, "• Contrôle émotionnel: %.1f/100", breakdown.EmotionalControlScore)

	switch {
	case breakdown.OverallScore < 50:
		b.WriteString("\n\n⚠️ Votre score est faible. Concentrez-vous sur la discipline et la gestion du risque.")
	case breakdown.OverallScore < 70:
		b.WriteString("\n\n📈 Bon début ! Travaillez sur la cohérence de vos stratégies.")
	default:
		b.WriteString("\n\n✅ Excellent score ! Continuez ainsi!")
	}

	return &dto.ChatResponse{Answer: b.String(), Data: breakdown}, nil
}

func (a *assistant) answerGains(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	totals, err := a.tradeRepo.SellTotals(ctx, userID)
	if err != nil {
		a.log.Error("Failed to load sell totals", logger.ErrorField(err), logger.IntField("user_id", int(userID)))
		totals = nil
	}
	if totals == nil || totals.TotalGains == 0 {
		return &dto.ChatResponse{Answer: "Vous n'avez pas encore de trades fermés."}, nil
	}

	answer := fmt.Sprintf("Résultats de trading:\n"+
		"• Gains totaux: %.2f€\n"+
		"• Pertes totales: %.2f€\n"+
		"• Profit net: %.2f€",
		totals.TotalGains, totals.TotalLosses, totals.NetProfit)
	if totals.NetProfit > 0 {
		answer += "\n\n✅ Vous êtes profitable!"
	} else {
		answer += "\n\n⚠️ Vous êtes en perte. Analysez vos trades."
	}
	return &dto.ChatResponse{Answer: answer, Data: totals}, nil
}

func (a *assistant) answerProblems(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	findings, err := a.detector.Detect(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		return &dto.ChatResponse{Answer: "Aucun problème majeur détecté. Continuez votre bon travail!"}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "J'ai détecté %d problèmes:\n\n", len(findings))
	for i, f := range findings {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, strings.ToUpper(string(f.Type)), f.Severity)
		fmt.Fprintf(&b, "   %s\n", f.Description)
		fmt.Fprintf(&b, "   💡 %s\n\n", f.Recommendation)
	}
	return &dto.ChatResponse{Answer: b.String(), Data: findings}, nil
}

func (a *assistant) answerAdvice(ctx context.Context, userID uint) (*dto.ChatResponse, error) {
	findings, err := a.detector.Detect(ctx, userID)
	if err != nil {
		return nil, err
	}
	breakdown, err := a.scores.Calculate(ctx, userID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Recommandations personnalisées:\n\n")
	if breakdown.DisciplineScore < 60 {
		b.WriteString("1. 📋 Discipline: Créez un plan de trading et suivez-le strictement\n")
	}
	if breakdown.RiskManagementScore < 60 {
		b.WriteString("2. 🛡️ Risque: Utilisez toujours des stop-loss (max 2% par trade)\n")
	}
	if breakdown.EmotionalControlScore < 60 {
		b.WriteString("3. 🧘 Émotions: Prenez une pause après 2 pertes consécutives\n")
	}
	if len(findings) > 0 {
		fmt.Fprintf(&b, "4. ⚠️ Attention: Vous montrez des signes de %s\n", findings[0].Type)
	}
	b.WriteString("\n💡 Conseil du jour: Tenez un journal de trading détaillé pour identifier vos patterns.")

	return &dto.ChatResponse{Answer: b.String(), Data: breakdown}, nil
}

func (a *assistant) help() *dto.ChatResponse {
	return &dto.ChatResponse{Answer: "Je peux vous aider avec:\n" +
		"• 'Pourquoi j'ai perdu ce mois-ci?'\n" +
		"• 'Quelle est ma meilleure stratégie?'\n" +
		"• 'Quel est mon score?'\n" +
		"• 'Quels sont mes problèmes?'\n" +
		"• 'Donne-moi des conseils'\n" +
		"• 'Combien j'ai gagné/perdu?'"}
}
