package scoring

import (
	"fmt"
	"math"
)

// Normalizer rescales a metric series to a comparable range so metrics with
// different raw units (percentages, points, title counts) can be weighted
// against each other.
//
// Implementations must be pure: same input, same output, no mutation of the
// input slice. NaN and infinite inputs are rejected rather than propagated.
type Normalizer interface {
	// Name returns the strategy identifier used in configuration.
	Name() string

	// Normalize returns the rescaled series, same length and order as
	// values.
	Normalize(values []float64) ([]float64, error)
}

// Strategy names accepted in configuration.
const (
	StrategyMinMax = "minmax"
	StrategyZScore = "zscore"
)

// NormalizerFor returns the Normalizer for a strategy name.
func NormalizerFor(strategy string) (Normalizer, error) {
	switch strategy {
	case StrategyMinMax:
		return MinMaxNormalizer{}, nil
	case StrategyZScore:
		return ZScoreNormalizer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// MinMaxNormalizer rescales values linearly into [0, 1].
// A degenerate series where every value is equal normalizes to 0.5 for all
// entries: with no spread there is no information, so every team sits at
// the neutral midpoint rather than at an arbitrary extreme.
type MinMaxNormalizer struct{}

// Name returns the configuration identifier for min-max scaling.
func (MinMaxNormalizer) Name() string { return StrategyMinMax }

// Normalize maps each value to (v − min) / (max − min).
func (MinMaxNormalizer) Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoTeams
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if min == max {
		for i := range out {
			out[i] = 0.5
		}
		return out, nil
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out, nil
}

// ZScoreNormalizer standardizes values to zero mean and unit variance using
// the population standard deviation. A zero-spread series normalizes to all
// zeros, the distribution's own mean.
type ZScoreNormalizer struct{}

// Name returns the configuration identifier for z-score standardization.
func (ZScoreNormalizer) Name() string { return StrategyZScore }

// Normalize maps each value to (v − mean) / stddev.
func (ZScoreNormalizer) Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoTeams
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	out := make([]float64, len(values))
	if variance == 0 {
		return out, nil
	}
	stddev := math.Sqrt(variance)
	for i, v := range values {
		out[i] = (v - mean) / stddev
	}
	return out, nil
}

// checkFinite rejects NaN and infinite inputs with the offending index.
func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d value %f", ErrInvalidMetric, i, v)
		}
	}
	return nil
}
