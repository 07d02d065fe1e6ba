package domain

// TeamStats holds the aggregate performance figures for one national team.
// A TeamStats value is constructed fresh from match aggregation on every
// run; it is never mutated incrementally and never persisted.
type TeamStats struct {
	// Team is the canonical team name used as the aggregation key.
	Team string `json:"team"`

	// MatchesPlayed is the number of matches the team appeared in.
	// Invariant: MatchesPlayed == Wins + Losses + Draws.
	MatchesPlayed int `json:"matches_played"`

	// Wins counts matches where the team outscored its opponent.
	Wins int `json:"wins"`

	// Losses counts matches where the opponent outscored the team.
	Losses int `json:"losses"`

	// Draws counts matches with equal scores. A draw is recorded
	// symmetrically on both participating teams.
	Draws int `json:"draws"`

	// PointsFor is the cumulative points scored by the team.
	PointsFor int `json:"points_for"`

	// PointsAgainst is the cumulative points conceded by the team.
	PointsAgainst int `json:"points_against"`

	// AvgMargin is the mean signed point margin (own − opponent) per match.
	// Zero when MatchesPlayed is zero.
	AvgMargin float64 `json:"avg_margin"`

	// AvgPointsConceded is the mean points conceded per match; the
	// defensive figure, lower is better. Zero when MatchesPlayed is zero.
	AvgPointsConceded float64 `json:"avg_points_conceded"`

	// WorldCupTitles is the number of World Cup championships, joined from
	// the title reference table. Zero for teams absent from the table.
	WorldCupTitles int `json:"world_cup_titles"`

	// DominanceScore is the weighted composite score assigned by the
	// scorer. Zero until scoring runs.
	DominanceScore float64 `json:"dominance_score"`

	// Rank is the 1-based position in the dominance ordering.
	// Zero for teams excluded from ranking.
	Rank int `json:"rank"`

	// LowConfidence marks teams below the minimum-matches threshold when
	// the flag policy is in effect. Such teams keep a rank but their score
	// should be read with caution.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// WinPercentage returns the fraction of matches won, in [0, 1].
// A team with zero matches yields 0 rather than NaN; callers that need to
// distinguish "no data" from "never won" should check MatchesPlayed.
func (ts TeamStats) WinPercentage() float64 {
	if ts.MatchesPlayed == 0 {
		return 0
	}
	return float64(ts.Wins) / float64(ts.MatchesPlayed)
}

// SeasonStats holds one team's figures for a single calendar year.
// These rows back the per-season trend view.
type SeasonStats struct {
	// Team is the canonical team name.
	Team string `json:"team"`

	// Year is the calendar year the row covers.
	Year int `json:"year"`

	// MatchesPlayed is the number of matches in that year.
	MatchesPlayed int `json:"matches_played"`

	// Wins is the number of wins in that year.
	Wins int `json:"wins"`

	// AvgMargin is the mean signed margin per match for the year.
	AvgMargin float64 `json:"avg_margin"`

	// WinPercentage is Wins / MatchesPlayed for the year, 0 when empty.
	WinPercentage float64 `json:"win_percentage"`
}

// EloRating captures a team's rating trajectory across one match.
type EloRating struct {
	// Team is the canonical team name.
	Team string `json:"team"`

	// Pre is the rating going into the match.
	Pre float64 `json:"pre"`

	// Post is the rating after applying the match result.
	Post float64 `json:"post"`
}

// Delta returns the rating change produced by the match.
func (e EloRating) Delta() float64 { return e.Post - e.Pre }
