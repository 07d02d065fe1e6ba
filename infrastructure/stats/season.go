package stats

import (
	"sort"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// SeasonAggregator computes per-team, per-calendar-year trend rows.
// The same symmetric counting rules as TeamAggregator apply within each
// year bucket.
type SeasonAggregator struct{}

// NewSeasonAggregator creates a SeasonAggregator.
func NewSeasonAggregator() *SeasonAggregator { return &SeasonAggregator{} }

// seasonKey identifies one (team, year) bucket.
type seasonKey struct {
	team string
	year int
}

// Aggregate builds one SeasonStats row per (team, year) pair present in
// records, sorted by team then year. An empty input yields an empty slice.
func (a *SeasonAggregator) Aggregate(records []domain.MatchRecord) []domain.SeasonStats {
	type bucket struct {
		played int
		wins   int
		margin int
	}
	buckets := make(map[seasonKey]*bucket)
	get := func(team string, year int) *bucket {
		k := seasonKey{team: team, year: year}
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
		}
		return b
	}

	for _, rec := range records {
		home := get(rec.HomeTeam, rec.Year)
		away := get(rec.AwayTeam, rec.Year)

		home.played++
		away.played++
		home.margin += rec.Margin()
		away.margin -= rec.Margin()

		switch rec.HomeResult() {
		case domain.ResultWin:
			home.wins++
		case domain.ResultLoss:
			away.wins++
		}
	}

	rows := make([]domain.SeasonStats, 0, len(buckets))
	for k, b := range buckets {
		row := domain.SeasonStats{
			Team:          k.team,
			Year:          k.year,
			MatchesPlayed: b.played,
			Wins:          b.wins,
		}
		if b.played > 0 {
			row.AvgMargin = float64(b.margin) / float64(b.played)
			row.WinPercentage = float64(b.wins) / float64(b.played)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].Year < rows[j].Year
	})

	return rows
}
