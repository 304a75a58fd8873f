package domain

import "math"

// RiskCategory is the discrete classification of an adjusted score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// Rank returns an integer rank for comparison (Low=1, High=3).
func (c RiskCategory) Rank() int {
	switch c {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

func (c RiskCategory) String() string { return string(c) }

// Weights are the per-indicator shares of the penalty cap. They must sum to
// 1.0 so that MaxPenalty alone bounds the total adjustment.
type Weights struct {
	Flood    float64
	Drought  float64
	Heat     float64
	Cyclone  float64
	Rainfall float64
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Flood + w.Drought + w.Heat + w.Cyclone + w.Rainfall
}

// ScoringConfig carries every tunable of the scoring model. Institutions
// adjust thresholds and weights through configuration; nothing here is
// hard-coded into the arithmetic.
type ScoringConfig struct {
	MinScore float64
	MaxScore float64

	// MaxPenalty is the largest possible climate deduction, reached only
	// when every indicator is at full severity.
	MaxPenalty float64

	Weights Weights

	// Category thresholds on the adjusted score, inclusive lower bounds.
	LowThreshold    float64
	MediumThreshold float64
}

// DefaultScoringConfig returns the documented defaults: the 300–900 score
// range, a 120-point penalty cap (20% of the range), flood-dominant weights,
// and the 700/500 category bands.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MinScore:   300,
		MaxScore:   900,
		MaxPenalty: 120,
		Weights: Weights{
			Flood:    0.30,
			Drought:  0.20,
			Heat:     0.15,
			Cyclone:  0.20,
			Rainfall: 0.15,
		},
		LowThreshold:    700,
		MediumThreshold: 500,
	}
}

// ScoreResult is the outcome of combining a financial profile with climate
// indicators.
type ScoreResult struct {
	BaseScore     float64      `json:"base_score"`
	Penalty       float64      `json:"penalty"`
	AdjustedScore float64      `json:"adjusted_score"`
	Category      RiskCategory `json:"category"`
}

// Combine computes the climate-adjusted score. It is a pure function: the
// same inputs always produce the same result, and nothing is mutated.
func Combine(profile FinancialProfile, ind Indicators, cfg ScoringConfig) (ScoreResult, error) {
	if profile.BaseScore < cfg.MinScore || profile.BaseScore > cfg.MaxScore {
		return ScoreResult{}, Errorf(KindValidation, "base score %g outside [%g, %g]",
			profile.BaseScore, cfg.MinScore, cfg.MaxScore)
	}
	if err := ind.Validate(); err != nil {
		return ScoreResult{}, err
	}

	penalty := cfg.MaxPenalty * (cfg.Weights.Flood*ind.Flood +
		cfg.Weights.Drought*ind.Drought +
		cfg.Weights.Heat*ind.Heat +
		cfg.Weights.Cyclone*ind.Cyclone +
		cfg.Weights.Rainfall*ind.Rainfall)

	// Round before categorizing so the reported score and category can never
	// disagree at a threshold boundary.
	adjusted := round2(clamp(profile.BaseScore-penalty, cfg.MinScore, cfg.MaxScore))

	return ScoreResult{
		BaseScore:     profile.BaseScore,
		Penalty:       round2(penalty),
		AdjustedScore: adjusted,
		Category:      Categorize(adjusted, cfg),
	}, nil
}

// Categorize maps an adjusted score to its risk category. Thresholds are
// inclusive lower bounds: a score exactly at LowThreshold is Low.
func Categorize(adjusted float64, cfg ScoringConfig) RiskCategory {
	switch {
	case adjusted >= cfg.LowThreshold:
		return RiskLow
	case adjusted >= cfg.MediumThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// PenaltyRatio returns how much of the penalty cap was consumed, in [0, 1].
func (r ScoreResult) PenaltyRatio(cfg ScoringConfig) float64 {
	if cfg.MaxPenalty == 0 {
		return 0
	}
	return r.Penalty / cfg.MaxPenalty
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
