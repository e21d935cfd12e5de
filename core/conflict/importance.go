package conflict

import "strings"

// Tier is a coarse classification of a busy interval's disruption cost,
// derived from its subject text.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String returns the wire token for the tier.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "medium"
	}
}

// Keyword tables checked in order: high, medium, low. The first matching
// tier wins; subjects matching nothing default to medium.
var tierKeywords = []struct {
	tier     Tier
	keywords []string
}{
	{TierHigh, []string{"client", "customer", "urgent", "critical", "ceo", "board", "emergency"}},
	{TierMedium, []string{"team", "project", "review", "planning", "discussion"}},
	{TierLow, []string{"lunch", "coffee", "break", "personal", "training"}},
}

// ClassifyImportance tags a meeting subject with an importance tier using
// case-insensitive substring matching.
func ClassifyImportance(subject string) Tier {
	lower := strings.ToLower(subject)
	for _, entry := range tierKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.tier
			}
		}
	}
	return TierMedium
}
