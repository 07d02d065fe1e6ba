package dataset

import (
	"sort"

	"github.com/ruckstats/ruckstats/internal/domain"
)

// DefaultTiers returns the built-in tier classification for the sixteen
// nations the dataset covers: the seven traditional tier-one powers and the
// nine established tier-two sides.
func DefaultTiers() map[string]domain.Tier {
	return map[string]domain.Tier{
		// Tier 1.
		"New Zealand":  domain.TierOne,
		"South Africa": domain.TierOne,
		"England":      domain.TierOne,
		"Wales":        domain.TierOne,
		"Ireland":      domain.TierOne,
		"France":       domain.TierOne,
		"Australia":    domain.TierOne,
		// Tier 2.
		"Argentina": domain.TierTwo,
		"Fiji":      domain.TierTwo,
		"Samoa":     domain.TierTwo,
		"Tonga":     domain.TierTwo,
		"Japan":     domain.TierTwo,
		"Georgia":   domain.TierTwo,
		"Italy":     domain.TierTwo,
		"USA":       domain.TierTwo,
		"Canada":    domain.TierTwo,
	}
}

// DefaultTeamNames returns the canonical names from DefaultTiers, sorted.
func DefaultTeamNames() []string {
	tiers := DefaultTiers()
	names := make([]string, 0, len(tiers))
	for name := range tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
