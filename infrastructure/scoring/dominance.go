package scoring

import (
	"fmt"
	"sort"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// Weights holds the non-negative multipliers applied to each normalized
// metric when computing the dominance score. Weights need not sum to one;
// their relative magnitudes are what matter.
type Weights struct {
	// Win weights the normalized win percentage.
	Win float64 `yaml:"win_weight" json:"win_weight" validate:"min=0"`

	// Margin weights the normalized average point margin.
	Margin float64 `yaml:"margin_weight" json:"margin_weight" validate:"min=0"`

	// Defense weights the inverted normalized average points conceded,
	// so stronger defenses contribute more.
	Defense float64 `yaml:"defense_weight" json:"defense_weight" validate:"min=0"`

	// Titles weights the normalized World Cup title count.
	Titles float64 `yaml:"title_weight" json:"title_weight" validate:"min=0"`
}

// DefaultWeights returns the standard metric weighting: winning matters
// most, sustained scoring dominance next, then silverware, then defense.
func DefaultWeights() Weights {
	return Weights{Win: 0.40, Margin: 0.25, Defense: 0.15, Titles: 0.20}
}

// Config controls dominance scoring behavior. Configuration is immutable
// after scorer creation and validated for consistency.
type Config struct {
	// Weights are the per-metric multipliers.
	Weights Weights `yaml:"weights" json:"weights"`

	// Strategy selects the normalization applied to raw metrics before
	// weighting: "minmax" or "zscore".
	Strategy string `yaml:"strategy" json:"strategy" validate:"required,oneof=minmax zscore"`

	// MinMatches is the minimum match count for a team's score to be
	// considered statistically meaningful. Zero disables the threshold.
	MinMatches int `yaml:"min_matches" json:"min_matches" validate:"min=0"`

	// Policy decides whether sub-threshold teams are excluded from the
	// ranking or kept and flagged low-confidence.
	Policy ThresholdPolicy `yaml:"policy" json:"policy" validate:"required,oneof=exclude flag"`
}

// DefaultConfig returns a Config with min-max normalization, a ten-match
// confidence threshold, and the flag policy.
func DefaultConfig() Config {
	return Config{
		Weights:    DefaultWeights(),
		Strategy:   StrategyMinMax,
		MinMatches: 10,
		Policy:     PolicyFlag,
	}
}

// Ranking is the outcome of dominance scoring: teams ordered by rank, plus
// any teams the exclude policy removed.
type Ranking struct {
	// Ranked holds scored teams in rank order, Rank set from 1.
	Ranked []domain.TeamStats

	// Excluded holds teams dropped by the exclude policy, sorted by name,
	// with zero Rank and DominanceScore.
	Excluded []domain.TeamStats
}

// DominanceScorer combines the four team metrics into a single weighted
// score and produces a strict total ordering.
//
// Each metric is normalized across the eligible teams before weighting.
// The defensive metric (average points conceded) is negated before
// normalization, which inverts it under both supported strategies: for
// min-max scaling this is exactly 1 − normalized(value), and for z-scores
// the sign flips. Lower conceded points therefore contribute more.
//
// Ranking order is dominance score descending, with ties broken by raw win
// percentage descending, then title count descending, then team name
// ascending. The chain ends on a unique key, so the order is total and
// reproducible.
//
// The scorer is stateless after construction and safe for concurrent use.
type DominanceScorer struct {
	// config contains the validated configuration parameters.
	config Config
	// normalizer implements the configured strategy.
	normalizer Normalizer
}

// NewDominanceScorer creates a DominanceScorer with validated
// configuration. Returns ErrZeroWeights when every weight is zero.
func NewDominanceScorer(config Config) (*DominanceScorer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	w := config.Weights
	if w.Win == 0 && w.Margin == 0 && w.Defense == 0 && w.Titles == 0 {
		return nil, ErrZeroWeights
	}
	normalizer, err := NormalizerFor(config.Strategy)
	if err != nil {
		return nil, err
	}
	return &DominanceScorer{config: config, normalizer: normalizer}, nil
}

// Score computes dominance scores and the ranking for the given teams.
// The input map is not mutated; results are value copies with
// DominanceScore, Rank, and LowConfidence populated.
func (ds *DominanceScorer) Score(teams map[string]*domain.TeamStats) (*Ranking, error) {
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	// Deterministic processing order regardless of map iteration.
	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	ranking := &Ranking{}
	var eligible []domain.TeamStats
	for _, name := range names {
		ts := *teams[name]
		if ds.config.MinMatches > 0 && ts.MatchesPlayed < ds.config.MinMatches {
			switch ds.config.Policy {
			case PolicyExclude:
				ts.Rank = 0
				ts.DominanceScore = 0
				ranking.Excluded = append(ranking.Excluded, ts)
				continue
			case PolicyFlag:
				ts.LowConfidence = true
			}
		}
		eligible = append(eligible, ts)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: all %d teams below %d-match threshold",
			ErrNoTeams, len(teams), ds.config.MinMatches)
	}

	// Excluded teams do not participate in normalization: their sparse
	// records would otherwise distort the scale for everyone else.
	winPct := make([]float64, len(eligible))
	margin := make([]float64, len(eligible))
	defense := make([]float64, len(eligible))
	titles := make([]float64, len(eligible))
	for i, ts := range eligible {
		winPct[i] = ts.WinPercentage()
		margin[i] = ts.AvgMargin
		// Negated so normalization inverts the metric.
		defense[i] = -ts.AvgPointsConceded
		titles[i] = float64(ts.WorldCupTitles)
	}

	normWin, err := ds.normalizer.Normalize(winPct)
	if err != nil {
		return nil, fmt.Errorf("normalize win percentage: %w", err)
	}
	normMargin, err := ds.normalizer.Normalize(margin)
	if err != nil {
		return nil, fmt.Errorf("normalize margin: %w", err)
	}
	normDefense, err := ds.normalizer.Normalize(defense)
	if err != nil {
		return nil, fmt.Errorf("normalize defense: %w", err)
	}
	normTitles, err := ds.normalizer.Normalize(titles)
	if err != nil {
		return nil, fmt.Errorf("normalize titles: %w", err)
	}

	w := ds.config.Weights
	for i := range eligible {
		eligible[i].DominanceScore = w.Win*normWin[i] +
			w.Margin*normMargin[i] +
			w.Defense*normDefense[i] +
			w.Titles*normTitles[i]
	}

	sort.SliceStable(eligible, func(i, j int) bool { return less(eligible[i], eligible[j]) })
	for i := range eligible {
		eligible[i].Rank = i + 1
	}
	ranking.Ranked = eligible

	return ranking, nil
}

// less implements the ranking comparison: dominance descending, then win
// percentage descending, then titles descending, then name ascending.
func less(a, b domain.TeamStats) bool {
	if a.DominanceScore != b.DominanceScore {
		return a.DominanceScore > b.DominanceScore
	}
	if a.WinPercentage() != b.WinPercentage() {
		return a.WinPercentage() > b.WinPercentage()
	}
	if a.WorldCupTitles != b.WorldCupTitles {
		return a.WorldCupTitles > b.WorldCupTitles
	}
	return a.Team < b.Team
}
