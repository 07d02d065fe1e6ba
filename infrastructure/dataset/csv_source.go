package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ruckstats/ruckstats/internal/domain"
	"github.com/ruckstats/ruckstats/internal/ports"
)

var _ ports.MatchSource = (*CSVSource)(nil)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// maxSkipReasons caps how many per-row rejection details are retained in a
// LoadReport. The skip counter is always exact; only the detail list is
// bounded, so a badly corrupted file cannot balloon memory.
const maxSkipReasons = 100

// Columns declares which dataset header names carry each required field.
// Column names are matched case-insensitively after trimming.
type Columns struct {
	// Date is the header of the match date column.
	Date string `yaml:"date" validate:"required"`

	// HomeTeam is the header of the first team column.
	HomeTeam string `yaml:"home_team" validate:"required"`

	// AwayTeam is the header of the opponent column.
	AwayTeam string `yaml:"away_team" validate:"required"`

	// HomeScore is the header of the first team's score column.
	HomeScore string `yaml:"home_score" validate:"required"`

	// AwayScore is the header of the opponent's score column.
	AwayScore string `yaml:"away_score" validate:"required"`

	// Tournament is the header of the competition column. Optional; when
	// the named column is absent the loader also accepts "competition",
	// a known naming difference between public datasets.
	Tournament string `yaml:"tournament"`
}

// DefaultColumns returns the column names used by the public rugby results
// dataset this pipeline was built around.
func DefaultColumns() Columns {
	return Columns{
		Date:       "date",
		HomeTeam:   "team",
		AwayTeam:   "opponent",
		HomeScore:  "team_score",
		AwayScore:  "opponent_score",
		Tournament: "tournament",
	}
}

// CSVConfig controls how a CSVSource reads and cleans a match dataset.
// Configuration is immutable after source creation.
type CSVConfig struct {
	// Path is the location of the CSV file.
	Path string `yaml:"path" validate:"required"`

	// Columns maps dataset headers to record fields.
	Columns Columns `yaml:"columns" validate:"required"`

	// MinYear drops matches played before this year. Zero disables the
	// era filter. The modern World Cup era starts in 1987.
	MinYear int `yaml:"min_year" validate:"min=0"`

	// TierWhitelist restricts the dataset to matches involving the listed
	// canonical team names. Empty disables the filter.
	TierWhitelist []string `yaml:"tier_whitelist"`

	// DateLayouts are the Go time layouts tried in order when parsing the
	// date column. Empty uses DefaultDateLayouts.
	DateLayouts []string `yaml:"date_layouts"`
}

// DefaultDateLayouts returns the date formats accepted by the loader, most
// common first.
func DefaultDateLayouts() []string {
	return []string{"2006-01-02", time.RFC3339, "02/01/2006", "Jan 2, 2006"}
}

// CSVSource implements ports.MatchSource over a flat CSV file.
//
// Cleaning policy: rows with missing or non-numeric scores, unparseable
// dates, or blank team names are skipped and counted, never fatal. Team
// names are canonicalized through the Normalizer; names that resolve to
// nothing are kept under their cleaned spelling and reported with a nearest
// canonical suggestion. Only a missing file or a missing required column
// aborts the load.
//
// The source does not mutate its inputs and returns freshly built records
// on every Load, sorted by date then home team for determinism.
type CSVSource struct {
	// config contains the validated configuration parameters.
	config CSVConfig
	// normalizer reconciles raw team names to canonical entries.
	normalizer *Normalizer
	// whitelist is the prepared TierWhitelist lookup set.
	whitelist map[string]struct{}
}

// NewCSVSource creates a CSVSource with validated configuration.
// Returns an error if required configuration is missing.
func NewCSVSource(config CSVConfig, normalizer *Normalizer) (*CSVSource, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if normalizer == nil {
		normalizer = NewNormalizer(DefaultAliases(), DefaultTeamNames())
	}
	if len(config.DateLayouts) == 0 {
		config.DateLayouts = DefaultDateLayouts()
	}

	whitelist := make(map[string]struct{}, len(config.TierWhitelist))
	for _, team := range config.TierWhitelist {
		if canonical, ok := normalizer.Normalize(team); ok {
			whitelist[canonical] = struct{}{}
		} else {
			return nil, fmt.Errorf("%w: tier whitelist entry %q", domain.ErrUnknownTeam, team)
		}
	}

	return &CSVSource{
		config:     config,
		normalizer: normalizer,
		whitelist:  whitelist,
	}, nil
}

// Load reads the configured file and returns cleaned match records plus a
// report of skipped and filtered rows.
func (s *CSVSource) Load(ctx context.Context) ([]domain.MatchRecord, *ports.LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(s.config.Path)
	if err != nil {
		return nil, nil, ports.NewSourceError(s.config.Path, "open", err)
	}
	defer f.Close()

	records, report, err := s.parse(f)
	if err != nil {
		return nil, nil, ports.NewSourceError(s.config.Path, "parse", err)
	}
	return records, report, nil
}

// parse reads CSV data from r and applies the full cleaning policy.
func (s *CSVSource) parse(r io.Reader) ([]domain.MatchRecord, *ports.LoadReport, error) {
	reader := csv.NewReader(r)
	// Ragged rows are handled per-row as malformed records rather than
	// aborting the whole load.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := s.columnIndex(header)
	if err != nil {
		return nil, nil, err
	}

	report := &ports.LoadReport{}
	seenUnknown := make(map[string]struct{})
	var records []domain.MatchRecord

	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.skip(report, rowNum, "unreadable row", err)
			continue
		}
		report.RowsRead++

		rec, recErr := s.parseRow(rowNum, row, idx)
		if recErr != nil {
			s.skip(report, recErr.Row, recErr.Reason, recErr.Err)
			continue
		}

		s.noteUnknownTeams(report, seenUnknown, row, idx)

		if s.config.MinYear > 0 && rec.Year < s.config.MinYear {
			report.RowsFiltered++
			continue
		}
		if !s.passesWhitelist(rec) {
			report.RowsFiltered++
			continue
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, nil, ports.ErrEmptyDataset
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].HomeTeam < records[j].HomeTeam
	})

	return records, report, nil
}

// columnIndex resolves configured column names against the header,
// case-insensitively. A missing required column is fatal.
func (s *CSVSource) columnIndex(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	lookup := func(name string) (int, bool) {
		i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		return i, ok
	}

	cols := s.config.Columns
	idx := make(map[string]int, 6)
	var missing []string
	for field, name := range map[string]string{
		"date":       cols.Date,
		"home_team":  cols.HomeTeam,
		"away_team":  cols.AwayTeam,
		"home_score": cols.HomeScore,
		"away_score": cols.AwayScore,
	} {
		i, ok := lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[field] = i
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ports.ErrMissingColumn, strings.Join(missing, ", "))
	}

	if cols.Tournament != "" {
		if i, ok := lookup(cols.Tournament); ok {
			idx["tournament"] = i
		} else if i, ok := lookup("competition"); ok {
			// Known dataset naming difference.
			idx["tournament"] = i
		}
	}

	return idx, nil
}

// parseRow converts one CSV row into a MatchRecord, or a RecordError
// describing why the row was rejected.
func (s *CSVSource) parseRow(rowNum int, row []string, idx map[string]int) (domain.MatchRecord, *domain.RecordError) {
	max := 0
	for _, i := range idx {
		if i > max {
			max = i
		}
	}
	if len(row) <= max {
		return domain.MatchRecord{}, domain.NewRecordError(rowNum, "too few fields", nil)
	}

	date, err := s.parseDate(row[idx["date"]])
	if err != nil {
		return domain.MatchRecord{}, domain.NewRecordError(rowNum, "unparseable date", err)
	}

	homeScore, err := parseScore(row[idx["home_score"]])
	if err != nil {
		return domain.MatchRecord{}, domain.NewRecordError(rowNum, "invalid home score", err)
	}
	awayScore, err := parseScore(row[idx["away_score"]])
	if err != nil {
		return domain.MatchRecord{}, domain.NewRecordError(rowNum, "invalid away score", err)
	}

	home, _ := s.normalizer.Normalize(row[idx["home_team"]])
	away, _ := s.normalizer.Normalize(row[idx["away_team"]])
	if home == "" || away == "" {
		return domain.MatchRecord{}, domain.NewRecordError(rowNum, "blank team name", nil)
	}

	rec := domain.MatchRecord{
		Date:      date,
		Year:      date.Year(),
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if i, ok := idx["tournament"]; ok && i < len(row) {
		rec.Tournament = strings.TrimSpace(row[i])
	}
	return rec, nil
}

// noteUnknownTeams records unresolved team names once each, with a nearest
// canonical suggestion for the report.
func (s *CSVSource) noteUnknownTeams(report *ports.LoadReport, seen map[string]struct{}, row []string, idx map[string]int) {
	for _, field := range []string{"home_team", "away_team"} {
		raw := strings.TrimSpace(row[idx[field]])
		if _, ok := s.normalizer.Normalize(raw); ok || raw == "" {
			continue
		}
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		report.UnknownTeams = append(report.UnknownTeams, ports.TeamSuggestion{
			Raw:        raw,
			Suggestion: s.normalizer.Suggest(raw),
		})
	}
}

// passesWhitelist reports whether the record survives the tier filter.
// A match is kept when either side is whitelisted, so fixtures between a
// listed and an unlisted nation still contribute to the listed side.
func (s *CSVSource) passesWhitelist(rec domain.MatchRecord) bool {
	if len(s.whitelist) == 0 {
		return true
	}
	if _, ok := s.whitelist[rec.HomeTeam]; ok {
		return true
	}
	_, ok := s.whitelist[rec.AwayTeam]
	return ok
}

// skip records one rejected row, bounding the retained detail list.
func (s *CSVSource) skip(report *ports.LoadReport, row int, reason string, err error) {
	report.RowsSkipped++
	if len(report.SkipReasons) < maxSkipReasons {
		report.SkipReasons = append(report.SkipReasons, domain.NewRecordError(row, reason, err))
	}
}

// parseDate tries each configured layout in order.
func (s *CSVSource) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	var lastErr error
	for _, layout := range s.config.DateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseScore parses a score cell, rejecting blanks and negatives.
func parseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty score")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative score %d", n)
	}
	return n, nil
}
