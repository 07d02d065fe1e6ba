package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruckstats/ruckstats/infrastructure/titles"
	"github.com/ruckstats/ruckstats/internal/domain"
	"github.com/ruckstats/ruckstats/internal/ports"
)

const fixtureCSV = `date,team,opponent,team_score,opponent_score,tournament
2015-10-31,All Blacks,Australia,34,17,World Cup
2016-06-11,New Zealand,Wales,39,21,June Series
2016-06-25,Australia,England,40,44,June Series
2017-03-18,Ireland,England,13,9,Six Nations
2017-11-18,Wales,Georgia,13,6,Autumn Series
1905-12-16,Wales,New Zealand,3,0,Tour Match
bad-date,Wales,England,10,20,Six Nations
2018-06-09,Austrlia,Ireland,18,9,June Series
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func TestPipeline_Run(t *testing.T) {
	cfg := DefaultPipelineConfig(writeFixture(t))
	cfg.Scoring.MinMatches = 0

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	// Quality: one pre-era row filtered, one bad date skipped.
	q := report.Quality
	require.NotNil(t, q)
	assert.Equal(t, 8, q.RowsRead)
	assert.Equal(t, 1, q.RowsSkipped)
	assert.Equal(t, 1, q.RowsFiltered)
	require.Len(t, q.UnknownTeams, 1)
	assert.Equal(t, "Australia", q.UnknownTeams[0].Suggestion)

	// Ranking covers every team seen in the kept rows, ranked 1..n.
	require.NotNil(t, report.Ranking)
	ranked := report.Ranking.Ranked
	require.NotEmpty(t, ranked)
	for i, ts := range ranked {
		assert.Equal(t, i+1, ts.Rank)
	}

	byTeam := make(map[string]domain.TeamStats, len(ranked))
	for _, ts := range ranked {
		byTeam[ts.Team] = ts
	}
	// The alias row counts toward New Zealand.
	nz, ok := byTeam["New Zealand"]
	require.True(t, ok)
	assert.Equal(t, 2, nz.MatchesPlayed)
	assert.Equal(t, 2, nz.Wins)
	// Titles joined from the built-in reference.
	assert.Equal(t, 3, nz.WorldCupTitles)

	// Season trends and Elo outputs are present.
	assert.NotEmpty(t, report.Seasons)
	require.NotNil(t, report.EloRatings)
	assert.Greater(t, report.EloRatings["New Zealand"], report.EloRatings["Wales"])
	assert.Len(t, report.EloHistory, 6)
}

// TestPipeline_DefaultWhitelistDropsOutsideFixtures verifies the default
// cleaning behavior: fixtures with no tier nation on either side are
// filtered out and their teams never reach the ranking.
func TestPipeline_DefaultWhitelistDropsOutsideFixtures(t *testing.T) {
	const csvData = `date,team,opponent,team_score,opponent_score,tournament
2019-02-09,Portugal,Spain,10,5,Championship
2019-02-23,Wales,England,21,13,Six Nations
2019-03-16,Wales,Ireland,7,25,Six Nations
`
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	cfg := DefaultPipelineConfig(path)
	cfg.Scoring.MinMatches = 0

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Quality.RowsFiltered)
	require.Len(t, report.Ranking.Ranked, 3)
	for _, ts := range report.Ranking.Ranked {
		assert.NotEqual(t, "Portugal", ts.Team)
		assert.NotEqual(t, "Spain", ts.Team)
	}
}

func TestPipeline_EloDisabled(t *testing.T) {
	cfg := DefaultPipelineConfig(writeFixture(t))
	cfg.Scoring.MinMatches = 0
	cfg.Elo.Enabled = false

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report.EloRatings)
	assert.Nil(t, report.EloHistory)
}

func TestPipeline_InjectedSources(t *testing.T) {
	cfg := DefaultPipelineConfig("unused.csv")
	cfg.Scoring.MinMatches = 0

	source := &stubSource{
		records: []domain.MatchRecord{
			{Year: 2020, HomeTeam: "France", AwayTeam: "Italy", HomeScore: 35, AwayScore: 22},
			{Year: 2020, HomeTeam: "Italy", AwayTeam: "France", HomeScore: 10, AwayScore: 50},
		},
		report: &ports.LoadReport{RowsRead: 2},
	}
	titleSrc := titles.NewStaticSource([]titles.Winner{{Year: 1998, Team: "France"}})

	p, err := NewPipeline(cfg, WithMatchSource(source), WithTitleSource(titleSrc))
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Ranking.Ranked, 2)
	assert.Equal(t, "France", report.Ranking.Ranked[0].Team)
	assert.Equal(t, 1, report.Ranking.Ranked[0].WorldCupTitles)
	assert.Equal(t, 0, report.Ranking.Ranked[1].WorldCupTitles)
}

func TestPipeline_TitleJoinNormalizesNames(t *testing.T) {
	cfg := DefaultPipelineConfig("unused.csv")
	cfg.Scoring.MinMatches = 0

	source := &stubSource{
		records: []domain.MatchRecord{
			{Year: 2021, HomeTeam: "New Zealand", AwayTeam: "Argentina", HomeScore: 39, AwayScore: 0},
		},
		report: &ports.LoadReport{RowsRead: 1},
	}
	// Reference data keyed by a nickname still joins.
	titleSrc := titles.NewStaticSource([]titles.Winner{{Year: 2015, Team: "All Blacks"}})

	p, err := NewPipeline(cfg, WithMatchSource(source), WithTitleSource(titleSrc))
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	for _, ts := range report.Ranking.Ranked {
		if ts.Team == "New Zealand" {
			assert.Equal(t, 1, ts.WorldCupTitles)
		}
	}
}

func TestPipeline_FailsOnMissingTitleReference(t *testing.T) {
	cfg := DefaultPipelineConfig(writeFixture(t))
	cfg.TitlesPath = filepath.Join(t.TempDir(), "absent.yaml")

	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrMissingReferenceData)
	assert.ErrorContains(t, err, "stage titles")
}

func TestPipeline_FailsOnEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,team,opponent,team_score,opponent_score\n"), 0o644))

	p, err := NewPipeline(DefaultPipelineConfig(path))
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, ports.ErrEmptyDataset)
}

func TestNewPipeline_ConfigErrorsSurfaceEarly(t *testing.T) {
	cfg := DefaultPipelineConfig("matches.csv")
	cfg.Scoring.Strategy = "rank"
	_, err := NewPipeline(cfg)
	assert.ErrorContains(t, err, "build scorer")

	cfg = DefaultPipelineConfig("matches.csv")
	cfg.Elo.Base = -1
	_, err = NewPipeline(cfg)
	assert.ErrorContains(t, err, "build elo rater")
}

// stubSource serves fixed records without touching the filesystem.
type stubSource struct {
	records []domain.MatchRecord
	report  *ports.LoadReport
	err     error
}

func (s *stubSource) Load(context.Context) ([]domain.MatchRecord, *ports.LoadReport, error) {
	return s.records, s.report, s.err
}

var _ ports.MatchSource = (*stubSource)(nil)
