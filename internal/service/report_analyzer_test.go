package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kengni1234/kengni-finance-v2/internal/dto"
)

func TestAnalyzeHealthyMargin(t *testing.T) {
	analyzer := NewReportAnalyzer()

	insight := analyzer.Analyze(dto.ReportFigures{Revenue: 10000, Expenses: 7000})

	// 30% margin: growth recommendation, no risks, no anomalies.
	require.Len(t, insight.Recommendations, 1)
	assert.Contains(t, insight.Recommendations[0], "Excellente marge")
	assert.Contains(t, insight.Opportunities, "Capacité d'investissement disponible")
	assert.Empty(t, insight.Risks)
	assert.Empty(t, insight.Anomalies)
}

func TestAnalyzeThinMargin(t *testing.T) {
	analyzer := NewReportAnalyzer()

	insight := analyzer.Analyze(dto.ReportFigures{Revenue: 10000, Expenses: 9500})

	// 5% margin is under the warning bound.
	require.Len(t, insight.Recommendations, 1)
	assert.Contains(t, insight.Recommendations[0], "Marge bénéficiaire faible")
	assert.Contains(t, insight.Risks, "Risque de rentabilité")
	assert.Empty(t, insight.Anomalies)
}

func TestAnalyzeMiddleMarginStaysQuiet(t *testing.T) {
	analyzer := NewReportAnalyzer()

	insight := analyzer.Analyze(dto.ReportFigures{Revenue: 10000, Expenses: 8500})

	// 15% margin sits between the bounds: neither tier fires.
	assert.Empty(t, insight.Recommendations)
	assert.Empty(t, insight.Risks)
	assert.Empty(t, insight.Opportunities)
	assert.Empty(t, insight.Anomalies)
}

func TestAnalyzeExpensesExceedRevenue(t *testing.T) {
	analyzer := NewReportAnalyzer()

	insight := analyzer.Analyze(dto.ReportFigures{Revenue: 1000, Expenses: 1600})

	assert.Contains(t, insight.Risks, "🚨 Dépenses supérieures aux revenus - attention critique!")
	// Reduction needed to break even: (1600-1000)/1600 = 37.5%.
	assert.Contains(t, insight.Recommendations, "Action immédiate requise: réduire les dépenses de 37.50%")
	// 1600 > 1000*1.5 also trips the anomaly flag.
	assert.Contains(t, insight.Anomalies, "Dépenses anormalement élevées détectées")
}

func TestAnalyzeZeroRevenue(t *testing.T) {
	analyzer := NewReportAnalyzer()

	insight := analyzer.Analyze(dto.ReportFigures{Revenue: 0, Expenses: 500})

	// Margin defaults to 0 rather than dividing by zero.
	assert.Contains(t, insight.Recommendations[0], "Marge bénéficiaire faible")
	assert.Contains(t, insight.Risks, "🚨 Dépenses supérieures aux revenus - attention critique!")
	assert.Contains(t, insight.Anomalies, "Dépenses anormalement élevées détectées")
}

func TestAnalyzeIsPure(t *testing.T) {
	analyzer := NewReportAnalyzer()
	figures := dto.ReportFigures{Revenue: 1000, Expenses: 1600}

	first := analyzer.Analyze(figures)
	second := analyzer.Analyze(figures)
	assert.Equal(t, first, second)
}

func TestProfitMargin(t *testing.T) {
	assert.Equal(t, 30.0, ProfitMargin(10000, 7000))
	assert.Equal(t, 0.0, ProfitMargin(0, 500))
	assert.Equal(t, -60.0, ProfitMargin(1000, 1600))
}
