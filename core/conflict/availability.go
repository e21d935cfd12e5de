package conflict

import "github.com/meetwise/meetwise/core/model"

// ScoredInterval is a busy interval tagged with its importance tier for the
// duration of one analysis.
type ScoredInterval struct {
	Interval model.Interval
	Tier     Tier
}

// Analysis splits participants into available and busy given their busy
// intervals for the lookup window. Available and Busy preserve the request
// participant order and together cover every participant exactly once.
type Analysis struct {
	Available []string
	Busy      []string
	Detail    map[string][]ScoredInterval
}

// AllFree reports whether no participant has a conflict.
func (a Analysis) AllFree() bool { return len(a.Busy) == 0 }

// AllBusy reports whether every participant has a conflict.
func (a Analysis) AllBusy() bool { return len(a.Available) == 0 && len(a.Busy) > 0 }

// SomeBusy reports whether the participants are split between the two sets.
func (a Analysis) SomeBusy() bool { return len(a.Busy) > 0 && len(a.Available) > 0 }

// Analyze classifies participants by availability. A participant with zero
// intervals in the window is available; presence of any interval marks them
// busy regardless of its importance. Each busy interval is tagged with its
// importance tier.
func Analyze(participants []string, cal model.Calendar) Analysis {
	a := Analysis{Detail: make(map[string][]ScoredInterval)}
	for _, p := range participants {
		ivs := cal[p]
		if len(ivs) == 0 {
			a.Available = append(a.Available, p)
			continue
		}
		a.Busy = append(a.Busy, p)
		scored := make([]ScoredInterval, 0, len(ivs))
		for _, iv := range ivs {
			scored = append(scored, ScoredInterval{Interval: iv, Tier: ClassifyImportance(iv.Summary)})
		}
		a.Detail[p] = scored
	}
	return a
}
