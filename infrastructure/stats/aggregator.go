// Package stats computes per-team descriptive statistics from validated
// match records: career aggregates, per-season trends, and Elo ratings.
package stats

import (
	"github.com/ruckstats/ruckstats/internal/domain"
)

// TeamAggregator groups match records by team and computes the raw
// performance aggregates that feed dominance scoring.
//
// For every match, both participating teams receive one played-match
// increment; the higher-scoring side records a win, the other a loss, and
// equal scores record a draw on both sides symmetrically. Margins are
// signed (own score minus opponent score) and points conceded accumulate
// the opponent's score.
//
// Averages for a team with zero matches are the zero value, never NaN;
// callers needing to distinguish absence of data check MatchesPlayed.
//
// The aggregator is stateless and safe for concurrent use; results are
// deterministic for a given record slice.
type TeamAggregator struct{}

// NewTeamAggregator creates a TeamAggregator.
func NewTeamAggregator() *TeamAggregator { return &TeamAggregator{} }

// Aggregate builds one TeamStats per team appearing in records.
// It returns domain.ErrNoMatches when records is empty and never mutates
// its input.
func (a *TeamAggregator) Aggregate(records []domain.MatchRecord) (map[string]*domain.TeamStats, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoMatches
	}

	teams := make(map[string]*domain.TeamStats)
	get := func(name string) *domain.TeamStats {
		ts, ok := teams[name]
		if !ok {
			ts = &domain.TeamStats{Team: name}
			teams[name] = ts
		}
		return ts
	}

	for _, rec := range records {
		home := get(rec.HomeTeam)
		away := get(rec.AwayTeam)

		home.MatchesPlayed++
		away.MatchesPlayed++
		home.PointsFor += rec.HomeScore
		home.PointsAgainst += rec.AwayScore
		away.PointsFor += rec.AwayScore
		away.PointsAgainst += rec.HomeScore

		switch rec.HomeResult() {
		case domain.ResultWin:
			home.Wins++
			away.Losses++
		case domain.ResultLoss:
			home.Losses++
			away.Wins++
		case domain.ResultDraw:
			home.Draws++
			away.Draws++
		}
	}

	for _, ts := range teams {
		if ts.MatchesPlayed == 0 {
			continue
		}
		played := float64(ts.MatchesPlayed)
		ts.AvgMargin = float64(ts.PointsFor-ts.PointsAgainst) / played
		ts.AvgPointsConceded = float64(ts.PointsAgainst) / played
	}

	return teams, nil
}
