// Package slots computes candidate free intervals inside business hours.
package slots

import (
	"time"

	"github.com/meetwise/meetwise/core/model"
)

// Business day bounds for free-slot search.
const (
	BusinessStartHour = 9
	BusinessEndHour   = 18
)

// Slot is a candidate meeting interval of exactly the requested duration.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Window is the business window searched for free slots.
type Window struct {
	Start time.Time
	End   time.Time
}

// BusinessWindow returns the default business window (09:00 to 18:00) for
// the calendar day of t in the service offset.
func BusinessWindow(t time.Time) Window {
	t = t.In(model.Zone)
	return Window{
		Start: time.Date(t.Year(), t.Month(), t.Day(), BusinessStartHour, 0, 0, 0, model.Zone),
		End:   time.Date(t.Year(), t.Month(), t.Day(), BusinessEndHour, 0, 0, 0, model.Zone),
	}
}

// Find returns candidate free slots of exactly the given duration within the
// window: before the first busy interval, in gaps between adjacent
// intervals, and after the last one. Overlapping input intervals are merged
// first, so no returned slot ever overlaps an input interval. The function
// is total: it never fails and returns an empty list when nothing fits.
func Find(intervals []model.Interval, duration time.Duration, win Window) []Slot {
	if duration <= 0 {
		return nil
	}
	merged := mergeSorted(intervals)

	var out []Slot
	if len(merged) == 0 || merged[0].Start.After(win.Start.Add(duration)) {
		out = append(out, Slot{Start: win.Start, End: win.Start.Add(duration)})
	}
	for i := 0; i+1 < len(merged); i++ {
		gapStart := merged[i].End
		if merged[i+1].Start.Sub(gapStart) >= duration {
			out = append(out, Slot{Start: gapStart, End: gapStart.Add(duration)})
		}
	}
	if n := len(merged); n > 0 {
		last := merged[n-1].End
		if !last.Add(duration).After(win.End) {
			out = append(out, Slot{Start: last, End: last.Add(duration)})
		}
	}
	return out
}

// mergeSorted sorts a copy of the intervals by start time and coalesces any
// that overlap or touch, preserving only the start/end bounds.
func mergeSorted(intervals []model.Interval) []model.Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]model.Interval, len(intervals))
	copy(sorted, intervals)
	model.SortIntervals(sorted)

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		tail := &merged[len(merged)-1]
		if !iv.Start.After(tail.End) {
			if iv.End.After(tail.End) {
				tail.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
