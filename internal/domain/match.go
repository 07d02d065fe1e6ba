// Package domain contains pure, dependency-free domain models and types
// for the rugby analytics pipeline.
package domain

import (
	"time"
)

// Result classifies the outcome of a match from one team's perspective.
type Result string

// Match outcomes from a single team's perspective.
const (
	// ResultWin indicates the team scored more points than its opponent.
	ResultWin Result = "Win"

	// ResultLoss indicates the team scored fewer points than its opponent.
	ResultLoss Result = "Loss"

	// ResultDraw indicates both teams scored the same number of points.
	ResultDraw Result = "Draw"
)

// Tier classifies a nation's competitive strata. Tier one nations are the
// traditional powers; tier two nations are emerging sides. The tier feeds
// Elo K-factor selection and optional dataset filtering.
type Tier int

// Recognized competitive tiers. TierUnknown marks nations absent from the
// configured tier tables.
const (
	TierUnknown Tier = 0
	TierOne     Tier = 1
	TierTwo     Tier = 2
)

// MatchRecord represents a single validated international match.
// Records are immutable once produced by a loader; every downstream stage
// treats them as read-only values.
type MatchRecord struct {
	// Date is when the match was played.
	Date time.Time `json:"date"`

	// Year is the calendar year of Date, retained separately because the
	// era filter and seasonal aggregation both key on it.
	Year int `json:"year"`

	// HomeTeam is the canonical name of the first listed side.
	HomeTeam string `json:"home_team"`

	// AwayTeam is the canonical name of the opposing side.
	AwayTeam string `json:"away_team"`

	// HomeScore is the points scored by HomeTeam.
	HomeScore int `json:"home_score"`

	// AwayScore is the points scored by AwayTeam.
	AwayScore int `json:"away_score"`

	// Tournament names the competition the match belonged to
	// (e.g. "World Cup", "Six Nations"). May be empty for friendlies.
	Tournament string `json:"tournament,omitempty"`
}

// Margin returns the signed point difference from the home side's
// perspective (home score minus away score).
func (m MatchRecord) Margin() int { return m.HomeScore - m.AwayScore }

// HomeResult returns the match outcome from the home side's perspective.
func (m MatchRecord) HomeResult() Result {
	switch {
	case m.HomeScore > m.AwayScore:
		return ResultWin
	case m.HomeScore < m.AwayScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Decisive reports whether the match produced a winner.
func (m MatchRecord) Decisive() bool { return m.HomeScore != m.AwayScore }
