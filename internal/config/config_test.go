package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesAnalysisDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: kengni-finance
  env: test
logger:
  level: debug
  encoding: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "kengni-finance", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// Analysis sections absent from the file fall back to the built-ins.
	assert.Equal(t, 50, cfg.Analysis.Detector.TradeLimit)
	assert.Equal(t, 10, cfg.Analysis.Detector.Overtrading.Threshold)
	assert.Contains(t, cfg.Analysis.Detector.EmotionKeywords["fear"], "peur")

	assert.Equal(t, 0.30, cfg.Analysis.Scoring.Weights.Profitability)
	assert.Equal(t, 0.10, cfg.Analysis.Scoring.Weights.EmotionalControl)
	assert.Equal(t, "@daily", cfg.Analysis.SnapshotSchedule)
	assert.Equal(t, "10m", cfg.Analysis.ScoreCacheTTL)
}

func TestLoadKeepsExplicitAnalysisConfig(t *testing.T) {
	path := writeConfig(t, `
analysis:
  snapshot_schedule: "0 3 * * *"
  score_cache_ttl: 5m
  detector:
    trade_limit: 25
    journal_limit: 10
    overtrading:
      window_hours: 12
      threshold: 5
      high_threshold: 8
    fomo:
      window: 6
      threshold: 2
    revenge:
      run_length: 2
    emotion_keywords:
      fear: ["peur"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0 3 * * *", cfg.Analysis.SnapshotSchedule)
	assert.Equal(t, 25, cfg.Analysis.Detector.TradeLimit)
	assert.Equal(t, 5, cfg.Analysis.Detector.Overtrading.Threshold)
	assert.Equal(t, 2, cfg.Analysis.Detector.Revenge.RunLength)
	// Scoring stays at the defaults because the file omits it.
	assert.Equal(t, 50.0, cfg.Analysis.Scoring.Base)
}

func TestTradeCountRule(t *testing.T) {
	moreThan := TradeCountRule{MoreThan: 15, Delta: -30}
	assert.True(t, moreThan.Matches(16))
	assert.False(t, moreThan.Matches(15))

	lessThan := TradeCountRule{LessThan: 5, Delta: 20}
	assert.True(t, lessThan.Matches(4))
	assert.False(t, lessThan.Matches(5))
}

func TestVariationRule(t *testing.T) {
	below := VariationRule{Below: 0.3, Delta: 20}
	assert.True(t, below.Matches(0.1))
	assert.False(t, below.Matches(0.3))

	above := VariationRule{Above: 0.8, Delta: -20}
	assert.True(t, above.Matches(0.9))
	assert.False(t, above.Matches(0.8))
}
