package domain

import (
	"fmt"
	"strings"
)

// Tier is the complexity / pricing level quoted in the pre-report.
type Tier int

const (
	TierUnset Tier = 0
	Tier1     Tier = 1
	Tier2     Tier = 2
	Tier3     Tier = 3
)

const (
	tier2Marker = "NÍVEL 2"
	tier3Marker = "NÍVEL 3"
)

// ClassifyTier scans generated prose for the literal tier markers, tier 3 first.
// A marker mentioned in unrelated prose still counts.
func ClassifyTier(text string) Tier {
	switch {
	case strings.Contains(text, tier3Marker):
		return Tier3
	case strings.Contains(text, tier2Marker):
		return Tier2
	default:
		return Tier1
	}
}

// Label renders the tier the way the templates spell it.
func (t Tier) Label() string {
	if t == TierUnset {
		return ""
	}
	return fmt.Sprintf("NÍVEL %d", int(t))
}

func (t Tier) Valid() bool {
	return t >= TierUnset && t <= Tier3
}
