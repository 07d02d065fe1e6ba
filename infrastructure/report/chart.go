package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// barGlyph is the character used to draw chart bars.
const barGlyph = "█"

// BarEntry is one labeled value in a bar chart.
type BarEntry struct {
	// Label names the bar.
	Label string

	// Value determines the bar length relative to the largest magnitude
	// in the chart.
	Value float64
}

// RenderBarChart writes a horizontal text bar chart. Bars scale against
// the largest absolute value so the chart also works for z-scored series;
// negative values render with an empty bar and their printed value.
func RenderBarChart(w io.Writer, title string, entries []BarEntry, width int) error {
	if width <= 0 {
		width = 40
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}

	var max float64
	labelWidth := 0
	for _, e := range entries {
		if v := math.Abs(e.Value); v > max {
			max = v
		}
		if len(e.Label) > labelWidth {
			labelWidth = len(e.Label)
		}
	}

	for _, e := range entries {
		bar := ""
		if max > 0 && e.Value > 0 {
			n := int(math.Round(e.Value / max * float64(width)))
			bar = strings.Repeat(barGlyph, n)
		}
		if _, err := fmt.Fprintf(w, "%-*s | %s %.4f\n", labelWidth, e.Label, bar, e.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
