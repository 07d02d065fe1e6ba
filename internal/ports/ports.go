// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the pipeline testable.
package ports

import (
	"context"
	"time"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// LoadReport summarizes the data-quality outcome of a dataset load.
// It is carried through to the final report so skipped rows are never
// silently lost.
type LoadReport struct {
	// RowsRead is the number of data rows encountered, valid or not.
	RowsRead int

	// RowsSkipped is the number of rows rejected during cleaning.
	RowsSkipped int

	// RowsFiltered is the number of valid rows dropped by the era or tier
	// filters. Filtered rows are expected losses, not data-quality issues.
	RowsFiltered int

	// SkipReasons holds one entry per rejected row, capped by the source
	// implementation to bound memory on badly corrupted inputs.
	SkipReasons []*domain.RecordError

	// UnknownTeams lists raw team names that could not be resolved to a
	// canonical entry, with an optional nearest-match suggestion.
	UnknownTeams []TeamSuggestion
}

// TeamSuggestion pairs an unresolved raw team name with the closest
// canonical name, when one is close enough to be worth reporting.
type TeamSuggestion struct {
	// Raw is the team name as it appeared in the source data.
	Raw string

	// Suggestion is the nearest canonical name, or empty when nothing
	// plausible was found.
	Suggestion string
}

// MatchSource loads validated match records from an external dataset.
// Implementations own parsing and cleaning; records they return are
// canonical and immutable.
type MatchSource interface {
	// Load reads the full dataset, returning cleaned records and a report
	// of everything that was dropped or reconciled along the way.
	// Load must not mutate any shared state; repeated calls re-read the
	// underlying source.
	Load(ctx context.Context) ([]domain.MatchRecord, *LoadReport, error)
}

// TitleSource provides championship title counts keyed by canonical team
// name. A missing reference dataset is fatal; a missing team is not.
type TitleSource interface {
	// Titles returns the title count per canonical team name.
	Titles(ctx context.Context) (map[string]int, error)
}

// MetricsCollector abstracts metrics collection for pipeline observability.
// Implementations must be thread-safe.
type MetricsCollector interface {
	// RecordLatency records the execution time of a pipeline stage.
	RecordLatency(stage string, duration time.Duration)

	// IncCounter increments a named counter by the given value.
	IncCounter(name string, value float64, labels map[string]string)

	// SetGauge sets a named gauge to the given value.
	SetGauge(name string, value float64, labels map[string]string)
}

// Renderer emits a computed report to some output surface (terminal table,
// templated text, chart). Rendering failures are reported, not panicked.
type Renderer interface {
	// Render writes the report. The ranking slice is ordered by rank.
	Render(ranking []domain.TeamStats, quality *LoadReport) error
}
