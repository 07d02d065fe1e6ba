// Package scoring combines normalized team metrics into weighted dominance
// scores and produces a deterministic ranking.
package scoring

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ThresholdPolicy decides what happens to teams below the minimum-matches
// threshold.
type ThresholdPolicy string

// Supported threshold policies.
const (
	// PolicyExclude removes sub-threshold teams from scoring entirely.
	// They appear in the result's Excluded list without a rank.
	PolicyExclude ThresholdPolicy = "exclude"

	// PolicyFlag keeps sub-threshold teams in the ranking but marks them
	// LowConfidence.
	PolicyFlag ThresholdPolicy = "flag"
)

// Common errors returned by the scorer and normalizers.
var (
	// ErrNoTeams is returned when scoring receives no teams, or when the
	// exclude policy removes every team.
	ErrNoTeams = errors.New("no teams eligible for scoring")

	// ErrInvalidMetric is returned when a metric value is NaN or infinite.
	ErrInvalidMetric = errors.New("metric value is not finite")

	// ErrZeroWeights is returned when every scoring weight is zero,
	// which would make every dominance score identically zero.
	ErrZeroWeights = errors.New("at least one scoring weight must be positive")

	// ErrUnknownStrategy is returned for an unrecognized normalization
	// strategy name.
	ErrUnknownStrategy = errors.New("unknown normalization strategy")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
