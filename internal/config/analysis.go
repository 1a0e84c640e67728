package config

// DetectorConfig drives the psychological pattern detector. All thresholds
// are explicit so tests and deployments can tune them without code changes.
type DetectorConfig struct {
	// TradeLimit and JournalLimit bound how much history a detection run reads.
	TradeLimit   int `mapstructure:"trade_limit"`
	JournalLimit int `mapstructure:"journal_limit"`

	Overtrading OvertradingRule `mapstructure:"overtrading"`
	FOMO        FOMORule        `mapstructure:"fomo"`
	Revenge     RevengeRule     `mapstructure:"revenge"`

	// EmotionKeywords maps a pattern type (fear, greed, overconfidence) to the
	// lowercase keywords mined from journal emotion notes.
	EmotionKeywords map[string][]string `mapstructure:"emotion_keywords"`
}

// OvertradingRule flags users trading too often inside a rolling window.
type OvertradingRule struct {
	WindowHours   int `mapstructure:"window_hours"`
	Threshold     int `mapstructure:"threshold"`      // finding emitted when count > Threshold
	HighThreshold int `mapstructure:"high_threshold"` // severity escalates to high when count > HighThreshold
}

// FOMORule flags buys placed right around losing sells.
type FOMORule struct {
	Window    int `mapstructure:"window"`    // most-recent trades inspected
	Threshold int `mapstructure:"threshold"` // occurrences required for a finding
}

// RevengeRule flags runs of consecutive losing sells.
type RevengeRule struct {
	RunLength int `mapstructure:"run_length"`
}

// IsZero reports whether the config was absent from the file.
func (c DetectorConfig) IsZero() bool {
	return c.TradeLimit == 0 && c.JournalLimit == 0 && len(c.EmotionKeywords) == 0
}

// DefaultDetector returns the stock detector rule tables.
func DefaultDetector() DetectorConfig {
	return DetectorConfig{
		TradeLimit:   50,
		JournalLimit: 20,
		Overtrading:  OvertradingRule{WindowHours: 24, Threshold: 10, HighThreshold: 20},
		FOMO:         FOMORule{Window: 10, Threshold: 3},
		Revenge:      RevengeRule{RunLength: 3},
		EmotionKeywords: map[string][]string{
			"fear":           {"peur", "anxieux", "stressé", "inquiet", "nerveux"},
			"greed":          {"avidité", "cupide", "trop confiant", "sûr de moi"},
			"overconfidence": {"facile", "certain", "évident", "garanti"},
		},
	}
}

// ScoringConfig drives the trader score calculator. Threshold effects are
// declarative rules rather than inline branching.
type ScoringConfig struct {
	TradeLimit int     `mapstructure:"trade_limit"`
	Base       float64 `mapstructure:"base"` // neutral baseline for every sub-score

	Weights Weights `mapstructure:"weights"`

	// StopLossFactor scales (stop-loss coverage % − 50) into the risk score.
	StopLossFactor float64 `mapstructure:"stop_loss_factor"`
	// SizingMinSamples is the minimum number of buys before position sizing
	// variation is judged at all.
	SizingMinSamples int             `mapstructure:"sizing_min_samples"`
	Sizing           []VariationRule `mapstructure:"sizing"`

	Discipline     []TradeCountRule `mapstructure:"discipline"`
	RevengePenalty float64          `mapstructure:"revenge_penalty"`

	// PatternPenalty is subtracted from 100 per active pattern for the
	// emotional control sub-score.
	PatternPenalty float64 `mapstructure:"pattern_penalty"`
}

// Weights holds the sub-score weights of the composite trader score. They are
// expected to sum to 1.
type Weights struct {
	Profitability       float64 `mapstructure:"profitability"`
	RiskManagement      float64 `mapstructure:"risk_management"`
	Discipline          float64 `mapstructure:"discipline"`
	StrategyConsistency float64 `mapstructure:"strategy_consistency"`
	EmotionalControl    float64 `mapstructure:"emotional_control"`
}

// TradeCountRule adjusts a score by Delta based on the trade count in the
// last 24 hours. A zero bound is ignored.
type TradeCountRule struct {
	MoreThan int     `mapstructure:"more_than"`
	LessThan int     `mapstructure:"less_than"`
	Delta    float64 `mapstructure:"delta"`
}

// Matches reports whether the rule applies to the given trade count.
func (r TradeCountRule) Matches(count int) bool {
	if r.MoreThan > 0 && count > r.MoreThan {
		return true
	}
	if r.LessThan > 0 && count < r.LessThan {
		return true
	}
	return false
}

// VariationRule adjusts a score by Delta based on the coefficient of
// variation of buy sizes. A zero bound is ignored.
type VariationRule struct {
	Below float64 `mapstructure:"below"`
	Above float64 `mapstructure:"above"`
	Delta float64 `mapstructure:"delta"`
}

// Matches reports whether the rule applies to the given coefficient of
// variation.
func (r VariationRule) Matches(cv float64) bool {
	if r.Below > 0 && cv < r.Below {
		return true
	}
	if r.Above > 0 && cv > r.Above {
		return true
	}
	return false
}

// IsZero reports whether the config was absent from the file.
func (c ScoringConfig) IsZero() bool {
	w := c.Weights
	return w.Profitability == 0 && w.RiskManagement == 0 && w.Discipline == 0 &&
		w.StrategyConsistency == 0 && w.EmotionalControl == 0
}

// DefaultScoring returns the stock scoring weights and rule tables.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		TradeLimit: 100,
		Base:       50,
		Weights: Weights{
			Profitability:       0.30,
			RiskManagement:      0.25,
			Discipline:          0.20,
			StrategyConsistency: 0.15,
			EmotionalControl:    0.10,
		},
		StopLossFactor:   0.5,
		SizingMinSamples: 6,
		Sizing: []VariationRule{
			{Below: 0.3, Delta: 20},
			{Above: 0.8, Delta: -20},
		},
		Discipline: []TradeCountRule{
			{MoreThan: 15, Delta: -30},
			{LessThan: 5, Delta: 20},
		},
		RevengePenalty: 20,
		PatternPenalty: 15,
	}
}
