// Package dataset provides loaders that turn raw tabular match data into
// validated, canonical domain records.
package dataset

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each string preparation.
var foldCaser = cases.Fold()

// suggestionMaxDistance is the largest Levenshtein distance at which a
// canonical name is still offered as a "did you mean" suggestion for an
// unresolved team name. Beyond this the names are considered unrelated.
const suggestionMaxDistance = 3

// Normalizer reconciles raw team-name strings into canonical team names so
// the same nation is never split across two aggregation keys.
//
// Resolution is exact after preparation (trim, whitespace collapse, Unicode
// case folding): first against the alias table, then against the canonical
// set. Names that resolve to nothing are returned cleaned-but-unresolved;
// the caller decides whether to keep or drop them. Suggest offers a nearest
// canonical name for reporting, using Levenshtein distance. Suggestions are
// informational only and never applied silently.
//
// The Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	// aliases maps prepared alias strings to canonical names.
	aliases map[string]string
	// canonical maps prepared canonical names to their display form.
	canonical map[string]string
	// names holds the canonical display names sorted for deterministic
	// suggestion scanning.
	names []string
}

// DefaultAliases returns the built-in alias table covering the spelling
// variants and nicknames that appear in public rugby results datasets.
func DefaultAliases() map[string]string {
	return map[string]string{
		"All Blacks":               "New Zealand",
		"NZ":                       "New Zealand",
		"Springboks":               "South Africa",
		"RSA":                      "South Africa",
		"Wallabies":                "Australia",
		"AUS":                      "Australia",
		"ENG":                      "England",
		"United States":            "USA",
		"United States of America": "USA",
		"Eire":                     "Ireland",
	}
}

// NewNormalizer builds a Normalizer from an alias table and the set of
// canonical team names. Alias keys and canonical names are both matched
// case-insensitively. A nil alias map is valid and disables alias lookup.
func NewNormalizer(aliases map[string]string, canonical []string) *Normalizer {
	n := &Normalizer{
		aliases:   make(map[string]string, len(aliases)),
		canonical: make(map[string]string, len(canonical)),
	}
	for _, name := range canonical {
		display := collapseSpaces(strings.TrimSpace(name))
		n.canonical[prepare(display)] = display
	}
	for alias, target := range aliases {
		n.aliases[prepare(alias)] = collapseSpaces(strings.TrimSpace(target))
	}
	n.names = make([]string, 0, len(n.canonical))
	for _, display := range n.canonical {
		n.names = append(n.names, display)
	}
	sort.Strings(n.names)
	return n
}

// Normalize resolves a raw team name to its canonical form. The boolean
// result reports whether the name resolved; when false, the returned string
// is the cleaned input, suitable as a stable-but-unverified key.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	cleaned := collapseSpaces(strings.TrimSpace(raw))
	if cleaned == "" {
		return "", false
	}
	key := prepare(cleaned)
	if target, ok := n.aliases[key]; ok {
		// Alias targets may themselves be canonical entries with a
		// different display casing.
		if display, ok := n.canonical[prepare(target)]; ok {
			return display, true
		}
		return target, true
	}
	if display, ok := n.canonical[key]; ok {
		return display, true
	}
	return cleaned, false
}

// Suggest returns the canonical name closest to raw by Levenshtein
// distance, or an empty string when nothing is within the suggestion
// threshold. Ties resolve to the lexicographically smallest name because
// the canonical list is scanned in sorted order.
func (n *Normalizer) Suggest(raw string) string {
	prepared := prepare(collapseSpaces(strings.TrimSpace(raw)))
	if prepared == "" {
		return ""
	}
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, name := range n.names {
		d := levenshtein.ComputeDistance(prepared, prepare(name))
		if d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// prepare applies Unicode case folding so comparisons are
// case-insensitive across scripts, not just ASCII.
func prepare(s string) string { return foldCaser.String(s) }

// collapseSpaces rewrites runs of internal whitespace to single spaces.
func collapseSpaces(s string) string { return strings.Join(strings.Fields(s), " ") }
