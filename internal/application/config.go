// Package application wires configuration, orchestration, and reporting
// for the rugby dominance pipeline.
package application

import (
	"github.com/ruckstats/ruckstats/infrastructure/dataset"
	"github.com/ruckstats/ruckstats/infrastructure/scoring"
	"github.com/ruckstats/ruckstats/infrastructure/stats"
)

// PipelineConfig is the complete run configuration for one pipeline
// invocation: where the data lives, how to interpret it, and how to score
// it. It is immutable once passed to NewPipeline, which makes reruns with
// different weight sets reproducible and side-effect free.
type PipelineConfig struct {
	// Dataset configures the match CSV loader.
	Dataset dataset.CSVConfig `yaml:"dataset" validate:"required"`

	// Aliases extends the built-in team-name alias table. Keys are raw
	// spellings, values canonical names.
	Aliases map[string]string `yaml:"aliases"`

	// Teams overrides the canonical team list. Empty uses the built-in
	// sixteen-nation list.
	Teams []string `yaml:"teams"`

	// TitlesPath points at an external YAML title reference table.
	// Empty uses the built-in World Cup winners list.
	TitlesPath string `yaml:"titles_path"`

	// Scoring configures normalization, weights, and the minimum-matches
	// policy.
	Scoring scoring.Config `yaml:"scoring" validate:"required"`

	// Elo configures the supplementary Elo rating pass.
	Elo EloSettings `yaml:"elo"`

	// Report configures output rendering.
	Report ReportSettings `yaml:"report"`
}

// EloSettings controls the Elo rating stage.
type EloSettings struct {
	// Enabled toggles the Elo pass. Disabled skips it entirely.
	Enabled bool `yaml:"enabled"`

	// Base is the starting rating for unseen teams. Zero uses the
	// standard 1500.
	Base float64 `yaml:"base" validate:"min=0"`

	// K holds the per-fixture-class update magnitudes.
	K stats.KFactors `yaml:"k_factors"`
}

// ReportSettings controls report rendering.
type ReportSettings struct {
	// TopN bounds charts and summary sentences.
	TopN int `yaml:"top_n" validate:"min=0,max=100"`
}

// DefaultPipelineConfig returns a PipelineConfig covering the modern World
// Cup era with the built-in teams, aliases, weights, and reference data.
// Only the dataset path must be supplied.
func DefaultPipelineConfig(matchesPath string) PipelineConfig {
	return PipelineConfig{
		Dataset: dataset.CSVConfig{
			Path:          matchesPath,
			Columns:       dataset.DefaultColumns(),
			MinYear:       1987,
			TierWhitelist: dataset.DefaultTeamNames(),
		},
		Scoring: scoring.DefaultConfig(),
		Elo: EloSettings{
			Enabled: true,
			Base:    stats.BaseRating,
			K:       stats.DefaultKFactors(),
		},
		Report: ReportSettings{TopN: 10},
	}
}

// applyDefaults fills zero-valued sections of a YAML-loaded config so a
// minimal file with just a dataset path still runs.
func (c *PipelineConfig) applyDefaults() {
	if c.Dataset.Columns == (dataset.Columns{}) {
		c.Dataset.Columns = dataset.DefaultColumns()
	}
	// A nil whitelist takes the built-in sixteen nations so the default
	// run keeps only tier fixtures; an explicit empty list opts out.
	if c.Dataset.TierWhitelist == nil {
		c.Dataset.TierWhitelist = dataset.DefaultTeamNames()
	}
	if c.Scoring.Strategy == "" {
		c.Scoring.Strategy = scoring.StrategyMinMax
	}
	if c.Scoring.Policy == "" {
		c.Scoring.Policy = scoring.PolicyFlag
	}
	if c.Scoring.Weights == (scoring.Weights{}) {
		c.Scoring.Weights = scoring.DefaultWeights()
	}
	// K factors are filled even when the Elo pass is disabled: the gt=0
	// tags on KFactors would otherwise reject any config omitting the elo
	// section.
	if c.Elo.K == (stats.KFactors{}) {
		c.Elo.K = stats.DefaultKFactors()
	}
	if c.Report.TopN == 0 {
		c.Report.TopN = 10
	}
}
