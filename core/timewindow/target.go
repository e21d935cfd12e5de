package timewindow

import (
	"time"

	"github.com/meetwise/meetwise/core/model"
)

// Business hours for target computation. Targets never start after
// businessLastHour; lookup windows use a wider day (see core/slots).
const (
	businessFirstHour = 9
	businessLastHour  = 17
)

func at(day time.Time, hour, minute int) time.Time {
	day = day.In(model.Zone)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, model.Zone)
}

// ResolveTarget produces the single candidate start time for a constraint.
// Weekday constraints land at 10:00 on the next occurrence of that day,
// except Thursday which keeps its historical 10:30 slot. Every other
// constraint resolves to the next free top-of-hour inside business hours.
func ResolveTarget(c model.Constraint, ref time.Time) time.Time {
	ref = ref.In(model.Zone)

	if w, ok := c.Weekday(); ok {
		day := NextOccurrence(w, ref)
		if IsWeekend(day) {
			day = NextOccurrence(time.Monday, ref)
		}
		if c == model.ConstraintThursday {
			return at(day, 10, 30)
		}
		return at(day, 10, 0)
	}
	return NextBusinessHour(ref)
}

// NextBusinessHour returns the next top-of-hour after ref that lies inside
// business hours on a weekday, advancing across weekends to Monday 09:00.
func NextBusinessHour(ref time.Time) time.Time {
	ref = ref.In(model.Zone)
	slot := at(ref, ref.Hour(), 0).Add(time.Hour)
	for IsWeekend(slot) || slot.Hour() < businessFirstHour || slot.Hour() > businessLastHour {
		switch {
		case IsWeekend(slot):
			slot = at(NextOccurrence(time.Monday, slot), businessFirstHour, 0)
		case slot.Hour() < businessFirstHour:
			slot = at(slot, businessFirstHour, 0)
		default:
			slot = at(slot.AddDate(0, 0, 1), businessFirstHour, 0)
		}
	}
	return slot
}

// NextBusinessDay returns 10:00 on the next calendar day, advancing past
// weekends to Monday. Used for the reschedule-tomorrow action.
func NextBusinessDay(ref time.Time) time.Time {
	day := ref.In(model.Zone).AddDate(0, 0, 1)
	for IsWeekend(day) {
		day = day.AddDate(0, 0, 1)
	}
	return at(day, 10, 0)
}

// AlternativeTime returns the follow-up meeting slot: two hours after ref,
// rounded down to the top of the hour.
func AlternativeTime(ref time.Time) time.Time {
	ref = ref.In(model.Zone).Add(2 * time.Hour)
	return at(ref, ref.Hour(), 0)
}
