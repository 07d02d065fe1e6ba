package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizerFor(t *testing.T) {
	minmax, err := NormalizerFor(StrategyMinMax)
	require.NoError(t, err)
	assert.Equal(t, StrategyMinMax, minmax.Name())

	zscore, err := NormalizerFor(StrategyZScore)
	require.NoError(t, err)
	assert.Equal(t, StrategyZScore, zscore.Name())

	_, err = NormalizerFor("quantile")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMinMaxNormalizer(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    []float64
		wantErr error
	}{
		{
			name:   "rescales into unit interval",
			values: []float64{10, 20, 30},
			want:   []float64{0, 0.5, 1},
		},
		{
			name:   "handles negative values",
			values: []float64{-5, 0, 5},
			want:   []float64{0, 0.5, 1},
		},
		{
			name:   "degenerate series maps to neutral midpoint",
			values: []float64{7, 7, 7},
			want:   []float64{0.5, 0.5, 0.5},
		},
		{
			name:   "single value is neutral",
			values: []float64{42},
			want:   []float64{0.5},
		},
		{
			name:    "empty input",
			values:  nil,
			wantErr: ErrNoTeams,
		},
		{
			name:    "rejects NaN",
			values:  []float64{1, math.NaN()},
			wantErr: ErrInvalidMetric,
		},
		{
			name:    "rejects infinity",
			values:  []float64{1, math.Inf(1)},
			wantErr: ErrInvalidMetric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinMaxNormalizer{}.Normalize(tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "index %d", i)
			}
		})
	}
}

func TestMinMaxNormalizer_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_, err := MinMaxNormalizer{}.Normalize(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestZScoreNormalizer(t *testing.T) {
	t.Run("standardizes to zero mean and unit variance", func(t *testing.T) {
		got, err := ZScoreNormalizer{}.Normalize([]float64{10, 20, 30})
		require.NoError(t, err)

		var mean float64
		for _, v := range got {
			mean += v
		}
		mean /= float64(len(got))
		assert.InDelta(t, 0, mean, 1e-9)

		var variance float64
		for _, v := range got {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(got))
		assert.InDelta(t, 1, variance, 1e-9)

		// Order is preserved.
		assert.Less(t, got[0], got[1])
		assert.Less(t, got[1], got[2])
	})

	t.Run("zero spread maps to all zeros", func(t *testing.T) {
		got, err := ZScoreNormalizer{}.Normalize([]float64{4, 4, 4})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, got)
	})

	t.Run("rejects non-finite values", func(t *testing.T) {
		_, err := ZScoreNormalizer{}.Normalize([]float64{math.Inf(-1)})
		assert.ErrorIs(t, err, ErrInvalidMetric)
	})
}

// TestNormalization_InversionByNegation documents the defense inversion
// trick: normalizing negated values inverts the metric under both
// strategies.
func TestNormalization_InversionByNegation(t *testing.T) {
	values := []float64{10, 25, 40}
	negated := []float64{-10, -25, -40}

	direct, err := MinMaxNormalizer{}.Normalize(values)
	require.NoError(t, err)
	inverted, err := MinMaxNormalizer{}.Normalize(negated)
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, 1-direct[i], inverted[i], 1e-9)
	}

	directZ, err := ZScoreNormalizer{}.Normalize(values)
	require.NoError(t, err)
	invertedZ, err := ZScoreNormalizer{}.Normalize(negated)
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, -directZ[i], invertedZ[i], 1e-9)
	}
}
