package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruckstats/ruckstats/internal/domain"
)

func matchInYear(year int, home, away string, hs, as int) domain.MatchRecord {
	d := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.MatchRecord{
		Date: d, Year: year,
		HomeTeam: home, AwayTeam: away,
		HomeScore: hs, AwayScore: as,
	}
}

func TestSeasonAggregator_PerYearBuckets(t *testing.T) {
	records := []domain.MatchRecord{
		matchInYear(2022, "Ireland", "Wales", 29, 7),
		matchInYear(2022, "Wales", "Ireland", 10, 20),
		matchInYear(2023, "Ireland", "Wales", 13, 27),
	}

	rows := NewSeasonAggregator().Aggregate(records)
	require.Len(t, rows, 4) // two teams, two years each

	// Sorted by team then year.
	assert.Equal(t, "Ireland", rows[0].Team)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Equal(t, "Ireland", rows[1].Team)
	assert.Equal(t, 2023, rows[1].Year)
	assert.Equal(t, "Wales", rows[2].Team)
	assert.Equal(t, 2022, rows[2].Year)

	ireland2022 := rows[0]
	assert.Equal(t, 2, ireland2022.MatchesPlayed)
	assert.Equal(t, 2, ireland2022.Wins)
	assert.InDelta(t, 1.0, ireland2022.WinPercentage, 1e-9)
	// Margins: +22 and +10 over two matches.
	assert.InDelta(t, 16, ireland2022.AvgMargin, 1e-9)

	ireland2023 := rows[1]
	assert.Equal(t, 1, ireland2023.MatchesPlayed)
	assert.Equal(t, 0, ireland2023.Wins)
	assert.InDelta(t, -14, ireland2023.AvgMargin, 1e-9)
}

func TestSeasonAggregator_Empty(t *testing.T) {
	rows := NewSeasonAggregator().Aggregate(nil)
	assert.Empty(t, rows)
}
