// Command ruckstats computes dominance rankings over a historical rugby
// match dataset and prints a report to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ruckstats/ruckstats/infrastructure/report"
	"github.com/ruckstats/ruckstats/infrastructure/scoring"
	"github.com/ruckstats/ruckstats/internal/application"
)

func main() {
	var (
		configPath = flag.String("config", "", "Pipeline configuration YAML (overrides other flags except -top)")
		matches    = flag.String("matches", "data/rugby_matches.csv", "Match results CSV path")
		titlesPath = flag.String("titles", "", "Title reference YAML path (default: built-in World Cup winners)")
		strategy   = flag.String("strategy", "", "Normalization strategy: minmax or zscore")
		minMatches = flag.Int("min-matches", -1, "Minimum matches for full-confidence ranking")
		policy     = flag.String("policy", "", "Sub-threshold policy: exclude or flag")
		topN       = flag.Int("top", 10, "Teams shown in charts and summaries")
		verbose    = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := buildConfig(*configPath, *matches, *titlesPath, *strategy, *policy, *minMatches)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	pipeline, err := application.NewPipeline(cfg, application.WithLogger(logger))
	if err != nil {
		logger.Error("pipeline construction failed", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(context.Background())
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	renderer := report.NewConsoleRenderer(os.Stdout, *topN)
	if err := renderer.Render(result.Ranking.Ranked, result.Quality); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}

	for _, ts := range result.Ranking.Excluded {
		fmt.Printf("excluded (below threshold): %s, %d matches\n", ts.Team, ts.MatchesPlayed)
	}
}

// buildConfig assembles the pipeline configuration from a YAML file when
// given, or from flags and defaults otherwise. Flag overrides apply on top
// of either base.
func buildConfig(configPath, matches, titlesPath, strategy, policy string, minMatches int) (application.PipelineConfig, error) {
	var cfg application.PipelineConfig
	if configPath != "" {
		loaded, err := application.NewConfigLoader().LoadFromFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	} else {
		cfg = application.DefaultPipelineConfig(matches)
	}

	if titlesPath != "" {
		cfg.TitlesPath = titlesPath
	}
	if strategy != "" {
		cfg.Scoring.Strategy = strategy
	}
	if policy != "" {
		// Validated by the scorer during pipeline construction.
		cfg.Scoring.Policy = scoring.ThresholdPolicy(policy)
	}
	if minMatches >= 0 {
		cfg.Scoring.MinMatches = minMatches
	}
	return cfg, nil
}
