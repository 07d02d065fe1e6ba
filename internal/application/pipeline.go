package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ruckstats/ruckstats/infrastructure/dataset"
	"github.com/ruckstats/ruckstats/infrastructure/scoring"
	"github.com/ruckstats/ruckstats/infrastructure/stats"
	"github.com/ruckstats/ruckstats/infrastructure/titles"
	"github.com/ruckstats/ruckstats/internal/domain"
	"github.com/ruckstats/ruckstats/internal/ports"
)

// Report is the complete output of one pipeline run.
type Report struct {
	// Ranking holds the dominance-ordered teams and any exclusions.
	Ranking *scoring.Ranking

	// Seasons holds the per-team, per-year trend rows.
	Seasons []domain.SeasonStats

	// EloRatings holds each team's final Elo rating. Nil when the Elo
	// stage is disabled.
	EloRatings map[string]float64

	// EloHistory holds the per-match rating movements, in date order.
	// Nil when the Elo stage is disabled.
	EloHistory []stats.MatchRating

	// Quality carries the loader's data-quality report so skipped rows
	// and unresolved team names surface in rendered output.
	Quality *ports.LoadReport
}

// Pipeline executes the batch computation: load and clean the dataset,
// aggregate per-team statistics, join title counts, score, and rank.
// Control flow is strictly linear and single-threaded; all data stays in
// memory for the duration of the run.
//
// A Pipeline is safe to Run repeatedly; every run re-reads the sources and
// rebuilds all statistics from scratch.
type Pipeline struct {
	config     PipelineConfig
	source     ports.MatchSource
	titles     ports.TitleSource
	aggregator *stats.TeamAggregator
	seasons    *stats.SeasonAggregator
	elo        *stats.EloRater
	scorer     *scoring.DominanceScorer
	normalizer *dataset.Normalizer
	metrics    ports.MetricsCollector
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithMatchSource replaces the CSV source built from configuration.
func WithMatchSource(s ports.MatchSource) Option {
	return func(p *Pipeline) { p.source = s }
}

// WithTitleSource replaces the title source built from configuration.
func WithTitleSource(t ports.TitleSource) Option {
	return func(p *Pipeline) { p.titles = t }
}

// WithMetrics sets the metrics collector. The default discards metrics.
func WithMetrics(mc ports.MetricsCollector) Option {
	return func(p *Pipeline) { p.metrics = mc }
}

// WithLogger sets the structured logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// noopMetrics discards all metrics; the default when none are injected.
type noopMetrics struct{}

func (noopMetrics) RecordLatency(string, time.Duration) {}

func (noopMetrics) IncCounter(string, float64, map[string]string) {}

func (noopMetrics) SetGauge(string, float64, map[string]string) {}

// NewPipeline builds a Pipeline from configuration. Configuration errors
// (bad weights, unknown whitelist teams, invalid strategies) surface here,
// before any data is read.
func NewPipeline(cfg PipelineConfig, opts ...Option) (*Pipeline, error) {
	aliases := dataset.DefaultAliases()
	for raw, canonical := range cfg.Aliases {
		aliases[raw] = canonical
	}
	teams := cfg.Teams
	if len(teams) == 0 {
		teams = dataset.DefaultTeamNames()
	}
	normalizer := dataset.NewNormalizer(aliases, teams)

	scorer, err := scoring.NewDominanceScorer(cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}

	p := &Pipeline{
		config:     cfg,
		aggregator: stats.NewTeamAggregator(),
		seasons:    stats.NewSeasonAggregator(),
		scorer:     scorer,
		normalizer: normalizer,
		metrics:    noopMetrics{},
		logger:     slog.Default(),
		tracer:     otel.Tracer("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.source == nil {
		source, err := dataset.NewCSVSource(cfg.Dataset, normalizer)
		if err != nil {
			return nil, fmt.Errorf("build match source: %w", err)
		}
		p.source = source
	}
	if p.titles == nil {
		if cfg.TitlesPath != "" {
			p.titles = titles.NewYAMLSource(cfg.TitlesPath)
		} else {
			p.titles = titles.NewStaticSource(nil)
		}
	}
	if cfg.Elo.Enabled {
		rater, err := stats.NewEloRater(cfg.Elo.Base, cfg.Elo.K, dataset.DefaultTiers())
		if err != nil {
			return nil, fmt.Errorf("build elo rater: %w", err)
		}
		p.elo = rater
	}

	return p, nil
}

// Run executes the pipeline once. Data-quality problems (skipped rows,
// unknown team names) never abort the run; they are collected into the
// returned Report. Only missing inputs and missing reference data fail.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	ctx, span := p.tracer.Start(ctx, "Pipeline.Run")
	defer span.End()

	report := &Report{}

	var records []domain.MatchRecord
	err := p.stage(ctx, "load", func(ctx context.Context) error {
		var err error
		records, report.Quality, err = p.source.Load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	q := report.Quality
	p.metrics.IncCounter("rows_read", float64(q.RowsRead), map[string]string{"source": "matches"})
	p.metrics.IncCounter("rows_skipped", float64(q.RowsSkipped), map[string]string{"source": "matches"})
	p.metrics.IncCounter("rows_filtered", float64(q.RowsFiltered), map[string]string{"source": "matches"})
	p.logger.Info("dataset loaded",
		"records", len(records),
		"skipped", q.RowsSkipped,
		"filtered", q.RowsFiltered,
		"unknown_teams", len(q.UnknownTeams))
	span.SetAttributes(
		attribute.Int("pipeline.records", len(records)),
		attribute.Int("pipeline.rows_skipped", q.RowsSkipped),
	)

	var teams map[string]*domain.TeamStats
	err = p.stage(ctx, "aggregate", func(context.Context) error {
		var err error
		teams, err = p.aggregator.Aggregate(records)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := p.stage(ctx, "seasons", func(context.Context) error {
		report.Seasons = p.seasons.Aggregate(records)
		return nil
	}); err != nil {
		return nil, err
	}

	if p.elo != nil {
		if err := p.stage(ctx, "elo", func(context.Context) error {
			report.EloRatings, report.EloHistory = p.elo.Rate(records)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	err = p.stage(ctx, "titles", func(ctx context.Context) error {
		counts, err := p.titles.Titles(ctx)
		if err != nil {
			return err
		}
		p.joinTitles(teams, counts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, "score", func(context.Context) error {
		var err error
		report.Ranking, err = p.scorer.Score(teams)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.metrics.SetGauge("teams_ranked", float64(len(report.Ranking.Ranked)), nil)
	p.logger.Info("pipeline complete",
		"ranked", len(report.Ranking.Ranked),
		"excluded", len(report.Ranking.Excluded))
	return report, nil
}

// joinTitles augments team statistics with title counts keyed by canonical
// name. Teams absent from the reference table keep zero titles; this is a
// deliberate silent default, not an error.
func (p *Pipeline) joinTitles(teams map[string]*domain.TeamStats, counts map[string]int) {
	canonical := make(map[string]int, len(counts))
	for raw, n := range counts {
		name, _ := p.normalizer.Normalize(raw)
		canonical[name] += n
	}
	for name, ts := range teams {
		ts.WorldCupTitles = canonical[name]
	}
}

// stage runs one pipeline stage with a span and a latency observation.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, "Pipeline."+name,
		trace.WithAttributes(attribute.String("pipeline.stage", name)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	p.metrics.RecordLatency(name, time.Since(start))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}
