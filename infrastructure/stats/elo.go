package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// BaseRating is the rating assigned to a team before its first match.
const BaseRating = 1500

// eloScale is the logistic scale constant: a rating gap of eloScale points
// corresponds to ten-to-one expected odds.
const eloScale = 400

// KFactors selects the rating update magnitude by fixture class. World Cup
// matches move ratings most; matches between two tier-two sides move them
// least.
type KFactors struct {
	// WorldCup applies to World Cup fixtures regardless of tier.
	WorldCup float64 `yaml:"world_cup" validate:"gt=0"`

	// TierOne applies when both sides are tier-one nations.
	TierOne float64 `yaml:"tier_one" validate:"gt=0"`

	// Mixed applies when the sides come from different tiers, or when a
	// side's tier is unknown.
	Mixed float64 `yaml:"mixed" validate:"gt=0"`

	// TierTwo applies when both sides are tier-two nations.
	TierTwo float64 `yaml:"tier_two" validate:"gt=0"`
}

// DefaultKFactors returns the standard update magnitudes.
func DefaultKFactors() KFactors {
	return KFactors{WorldCup: 40, TierOne: 30, Mixed: 25, TierTwo: 20}
}

// MatchRating captures both sides' rating movement for one match,
// in the same order matches were processed.
type MatchRating struct {
	// Home is the home side's rating trajectory.
	Home domain.EloRating `json:"home"`

	// Away is the away side's rating trajectory.
	Away domain.EloRating `json:"away"`
}

// EloRater computes Elo ratings over a match history.
//
// Matches are processed in date order regardless of input order, so ratings
// are reproducible for a given record set. Every update is zero-sum: the
// winner gains exactly what the loser loses, and a draw moves points from
// the higher-rated side to the lower.
type EloRater struct {
	// base is the starting rating for unseen teams.
	base float64
	// k holds the per-fixture-class update magnitudes.
	k KFactors
	// tiers classifies teams for K-factor selection.
	tiers map[string]domain.Tier
}

// NewEloRater creates an EloRater. A zero base uses BaseRating. The tiers
// map may be nil, in which case every non-World-Cup fixture takes the
// mixed K factor.
func NewEloRater(base float64, k KFactors, tiers map[string]domain.Tier) (*EloRater, error) {
	if err := validate.Struct(k); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if base == 0 {
		base = BaseRating
	}
	if base < 0 {
		return nil, fmt.Errorf("%w: negative base rating %.1f", domain.ErrInvalidConfiguration, base)
	}
	return &EloRater{base: base, k: k, tiers: tiers}, nil
}

// Rate replays records in date order and returns the final rating per team
// along with the per-match rating history. The input is not mutated.
func (r *EloRater) Rate(records []domain.MatchRecord) (map[string]float64, []MatchRating) {
	ordered := make([]domain.MatchRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].HomeTeam < ordered[j].HomeTeam
	})

	ratings := make(map[string]float64)
	get := func(team string) float64 {
		if v, ok := ratings[team]; ok {
			return v
		}
		return r.base
	}

	history := make([]MatchRating, 0, len(ordered))
	for _, rec := range ordered {
		rHome := get(rec.HomeTeam)
		rAway := get(rec.AwayTeam)

		eHome := expectedScore(rHome, rAway)
		eAway := 1 - eHome

		var sHome, sAway float64
		switch rec.HomeResult() {
		case domain.ResultWin:
			sHome, sAway = 1, 0
		case domain.ResultLoss:
			sHome, sAway = 0, 1
		case domain.ResultDraw:
			sHome, sAway = 0.5, 0.5
		}

		k := r.factorFor(rec)
		newHome := rHome + k*(sHome-eHome)
		newAway := rAway + k*(sAway-eAway)

		history = append(history, MatchRating{
			Home: domain.EloRating{Team: rec.HomeTeam, Pre: rHome, Post: newHome},
			Away: domain.EloRating{Team: rec.AwayTeam, Pre: rAway, Post: newAway},
		})

		ratings[rec.HomeTeam] = newHome
		ratings[rec.AwayTeam] = newAway
	}

	return ratings, history
}

// factorFor selects the K factor for a fixture.
func (r *EloRater) factorFor(rec domain.MatchRecord) float64 {
	if strings.EqualFold(strings.TrimSpace(rec.Tournament), "World Cup") {
		return r.k.WorldCup
	}
	home := r.tiers[rec.HomeTeam]
	away := r.tiers[rec.AwayTeam]
	switch {
	case home == domain.TierOne && away == domain.TierOne:
		return r.k.TierOne
	case home == domain.TierTwo && away == domain.TierTwo:
		return r.k.TierTwo
	default:
		return r.k.Mixed
	}
}

// expectedScore returns the probability-like expected score for a team
// rated ra against an opponent rated rb.
func expectedScore(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(10, (rb-ra)/eloScale))
}
