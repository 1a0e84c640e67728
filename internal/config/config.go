package config

import (
	"github.com/kengni1234/kengni-finance-v2/pkg/config"
)

// Config holds the full configuration for the API service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Telegram config.Telegram `mapstructure:"telegram"`
	Analysis Analysis        `mapstructure:"analysis"`
}

// Analysis groups the analysis engine configuration.
type Analysis struct {
	Detector DetectorConfig `mapstructure:"detector"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	// SnapshotSchedule is the cron expression for the daily score snapshot job.
	SnapshotSchedule string `mapstructure:"snapshot_schedule"`
	// ScoreCacheTTL is how long the latest score snapshot stays in Redis, e.g. "10m".
	ScoreCacheTTL string `mapstructure:"score_cache_ttl"`
}

// Load loads the API configuration from the given path. Analysis sections
// omitted from the file fall back to the built-in rule tables.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Analysis.Detector.IsZero() {
		cfg.Analysis.Detector = DefaultDetector()
	}
	if cfg.Analysis.Scoring.IsZero() {
		cfg.Analysis.Scoring = DefaultScoring()
	}
	if cfg.Analysis.SnapshotSchedule == "" {
		cfg.Analysis.SnapshotSchedule = "@daily"
	}
	if cfg.Analysis.ScoreCacheTTL == "" {
		cfg.Analysis.ScoreCacheTTL = "10m"
	}

	return &cfg, nil
}
