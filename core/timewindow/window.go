// Package timewindow maps symbolic time constraints to concrete calendar
// windows and target instants, always in the fixed service offset. All
// functions are pure: the reference instant is an explicit parameter and no
// wall clock is read.
package timewindow

import (
	"time"

	"github.com/meetwise/meetwise/core/model"
)

// WeekendReason explains a weekend rejection on the wire.
const WeekendReason = "Its weekends no meetings are possible"

// Resolution is the outcome of resolving a constraint to a lookup window.
// Rejected resolutions carry no window; callers must branch on Rejected
// rather than treating rejection as an error.
type Resolution struct {
	Start    time.Time
	End      time.Time
	Rejected bool
	Reason   string
}

func rejected(reason string) Resolution {
	return Resolution{Rejected: true, Reason: reason}
}

// IsWeekend reports whether t falls on Saturday or Sunday in the service
// offset.
func IsWeekend(t time.Time) bool {
	wd := t.In(model.Zone).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfDay returns midnight of t's calendar day in the service offset.
func StartOfDay(t time.Time) time.Time {
	t = t.In(model.Zone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, model.Zone)
}

// EndOfDay returns 23:59:59 of t's calendar day in the service offset.
func EndOfDay(t time.Time) time.Time {
	t = t.In(model.Zone)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, model.Zone)
}

// NextOccurrence returns the next calendar day strictly after ref that falls
// on the given weekday. If ref is already on that weekday, the result is
// seven days out. The time of day is preserved from ref.
func NextOccurrence(w time.Weekday, ref time.Time) time.Time {
	ref = ref.In(model.Zone)
	ahead := (int(w) - int(ref.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return ref.AddDate(0, 0, ahead)
}

// ResolveWindow maps a symbolic constraint and a reference instant to the
// concrete lookup window used for calendar retrieval. Weekend requests are
// rejected; unrecognized constraints fall back to the flexible seven-day
// window.
func ResolveWindow(c model.Constraint, ref time.Time) Resolution {
	ref = ref.In(model.Zone)

	if c == model.ConstraintWeekend {
		return rejected(WeekendReason)
	}
	if w, ok := c.Weekday(); ok {
		day := NextOccurrence(w, ref)
		return Resolution{Start: StartOfDay(day), End: EndOfDay(day)}
	}
	switch c {
	case model.ConstraintTomorrow:
		day := ref.AddDate(0, 0, 1)
		if IsWeekend(day) {
			return rejected(WeekendReason)
		}
		return Resolution{Start: StartOfDay(day), End: EndOfDay(day)}
	case model.ConstraintNextWeek:
		start := StartOfDay(ref.AddDate(0, 0, 7))
		return Resolution{Start: start, End: start.AddDate(0, 0, 7)}
	default:
		// ConstraintFlexible and anything unrecognized: rolling week.
		start := StartOfDay(ref)
		return Resolution{Start: start, End: start.AddDate(0, 0, 7)}
	}
}
