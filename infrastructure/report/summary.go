package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// summaryText is the per-team sentence template. It reads from
// domain.TeamStats plus the computed win percentage.
const summaryText = `{{.Rank}}. {{.Team}} played {{.MatchesPlayed}} matches, winning {{pct .WinPercentage}} with an average margin of {{printf "%+.1f" .AvgMargin}} points while conceding {{printf "%.1f" .AvgPointsConceded}} per match{{if gt .WorldCupTitles 0}}, and lifted the World Cup {{times .WorldCupTitles}}{{end}}.{{if .LowConfidence}} (Low confidence: small sample.){{end}}
`

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"times": func(n int) string {
		switch n {
		case 1:
			return "once"
		case 2:
			return "twice"
		default:
			return fmt.Sprintf("%d times", n)
		}
	},
}).Parse(summaryText))

// summaryData adapts TeamStats for the template, exposing the win
// percentage as a field.
type summaryData struct {
	domain.TeamStats
	WinPercentage float64
}

// renderSummaries writes one templated sentence for each of the top n
// ranked teams.
func renderSummaries(w io.Writer, ranking []domain.TeamStats, n int) error {
	if n > len(ranking) {
		n = len(ranking)
	}
	for _, ts := range ranking[:n] {
		data := summaryData{TeamStats: ts, WinPercentage: ts.WinPercentage()}
		if err := summaryTmpl.Execute(w, data); err != nil {
			return fmt.Errorf("render summary for %s: %w", ts.Team, err)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
