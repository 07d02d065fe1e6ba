// Package report renders computed rankings as aligned text tables,
// templated summary sentences, and top-N bar charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ruckstats/ruckstats/internal/domain"
	"github.com/ruckstats/ruckstats/internal/ports"
)

var _ ports.Renderer = (*ConsoleRenderer)(nil)

// ConsoleRenderer writes the full report to a single writer: the ranking
// table, a top-N dominance chart, per-team summary sentences, and a
// data-quality footer. It is the default output surface for the CLI.
type ConsoleRenderer struct {
	// w receives all rendered output.
	w io.Writer
	// topN bounds the chart and the summary section.
	topN int
}

// NewConsoleRenderer creates a ConsoleRenderer. A non-positive topN
// defaults to 10.
func NewConsoleRenderer(w io.Writer, topN int) *ConsoleRenderer {
	if topN <= 0 {
		topN = 10
	}
	return &ConsoleRenderer{w: w, topN: topN}
}

// Render writes the complete report. The ranking slice must already be in
// rank order.
func (r *ConsoleRenderer) Render(ranking []domain.TeamStats, quality *ports.LoadReport) error {
	if err := r.renderTable(ranking); err != nil {
		return err
	}
	if err := r.renderChart(ranking); err != nil {
		return err
	}
	if err := renderSummaries(r.w, ranking, r.topN); err != nil {
		return err
	}
	return r.renderQuality(quality)
}

// renderTable writes the aligned ranking table.
func (r *ConsoleRenderer) renderTable(ranking []domain.TeamStats) error {
	if _, err := fmt.Fprintf(r.w, "%-4s | %-14s | %-7s | %-6s | %-7s | %-8s | %-6s | %-9s | %-4s\n",
		"Rank", "Team", "Matches", "Win%", "Margin", "Conceded", "Titles", "Dominance", "Note"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "%s\n", strings.Repeat("-", 84)); err != nil {
		return err
	}
	for _, ts := range ranking {
		note := ""
		if ts.LowConfidence {
			note = "low"
		}
		if _, err := fmt.Fprintf(r.w, "%-4d | %-14s | %7d | %5.1f%% | %+7.2f | %8.2f | %6d | %9.4f | %-4s\n",
			ts.Rank, ts.Team, ts.MatchesPlayed, ts.WinPercentage()*100,
			ts.AvgMargin, ts.AvgPointsConceded, ts.WorldCupTitles, ts.DominanceScore, note); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// renderChart writes the top-N dominance bar chart.
func (r *ConsoleRenderer) renderChart(ranking []domain.TeamStats) error {
	n := r.topN
	if n > len(ranking) {
		n = len(ranking)
	}
	entries := make([]BarEntry, 0, n)
	for _, ts := range ranking[:n] {
		entries = append(entries, BarEntry{Label: ts.Team, Value: ts.DominanceScore})
	}
	return RenderBarChart(r.w, fmt.Sprintf("Top %d by Dominance Score", n), entries, 40)
}

// renderQuality writes the data-quality footer: skipped and filtered row
// counts plus any unresolved team names.
func (r *ConsoleRenderer) renderQuality(quality *ports.LoadReport) error {
	if quality == nil {
		return nil
	}
	if _, err := fmt.Fprintf(r.w, "Data quality: %d rows read, %d skipped, %d filtered\n",
		quality.RowsRead, quality.RowsSkipped, quality.RowsFiltered); err != nil {
		return err
	}
	for _, u := range quality.UnknownTeams {
		line := fmt.Sprintf("  unknown team %q", u.Raw)
		if u.Suggestion != "" {
			line += fmt.Sprintf(" (did you mean %q?)", u.Suggestion)
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}
