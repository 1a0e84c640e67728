package service

import (
	"fmt"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
)

// ReportAnalyzer turns aggregate revenue/expense figures into qualitative
// insights, risk flags and anomaly flags. Analyze is a pure function: the
// same figures always yield the same insight.
type ReportAnalyzer struct {
	// GrowthMarginPct is the profit margin above which growth is recommended.
	GrowthMarginPct float64
	// WarningMarginPct is the profit margin below which optimization is urged.
	WarningMarginPct float64
	// AnomalyExpenseRatio flags expenses above this multiple of revenue.
	AnomalyExpenseRatio float64
}

// NewReportAnalyzer creates an analyzer with the stock thresholds.
func NewReportAnalyzer() *ReportAnalyzer {
	return &ReportAnalyzer{
		GrowthMarginPct:     20,
		WarningMarginPct:    10,
		AnomalyExpenseRatio: 1.5,
	}
}

// Analyze evaluates every condition independently; only the margin tiers are
// mutually exclusive.
func (a *ReportAnalyzer) Analyze(figures dto.ReportFigures) dto.ReportInsight {
	insight := dto.ReportInsight{
		Summary:         "Analyse automatique du rapport financier",
		Recommendations: []string{},
		Risks:           []string{},
		Opportunities:   []string{},
		Anomalies:       []string{},
	}

	margin := ProfitMargin(figures.Revenue, figures.Expenses)

	switch {
	case margin > a.GrowthMarginPct:
		insight.Recommendations = append(insight.Recommendations,
			"✅ Excellente marge bénéficiaire. Envisagez d'investir dans la croissance.")
		insight.Opportunities = append(insight.Opportunities,
			"Capacité d'investissement disponible")
	case margin < a.WarningMarginPct:
		insight.Recommendations = append(insight.Recommendations,
			"⚠️ Marge bénéficiaire faible. Optimisez vos dépenses.")
		insight.Risks = append(insight.Risks, "Risque de rentabilité")
	}

	if figures.Expenses > figures.Revenue {
		insight.Risks = append(insight.Risks,
			"🚨 Dépenses supérieures aux revenus - attention critique!")
		if figures.Expenses > 0 {
			reduction := (figures.Expenses - figures.Revenue) / figures.Expenses * 100
			insight.Recommendations = append(insight.Recommendations,
				fmt.Sprintf("Action immédiate requise: réduire les dépenses de %.2f%%", reduction))
		}
	}

	if figures.Expenses > figures.Revenue*a.AnomalyExpenseRatio {
		insight.Anomalies = append(insight.Anomalies,
			"Dépenses anormalement élevées détectées")
	}

	return insight
}

// ProfitMargin is the profit share of revenue in percent, 0 when there is no
// revenue to divide by.
func ProfitMargin(revenue, expenses float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (revenue - expenses) / revenue * 100
}
