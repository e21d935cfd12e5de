package model

import (
	"strings"
	"time"
)

// Constraint is a normalized symbolic time-preference token, already
// extracted from free text by a parser.
type Constraint string

const (
	ConstraintMonday    Constraint = "monday"
	ConstraintTuesday   Constraint = "tuesday"
	ConstraintWednesday Constraint = "wednesday"
	ConstraintThursday  Constraint = "thursday"
	ConstraintFriday    Constraint = "friday"
	ConstraintTomorrow  Constraint = "tomorrow"
	ConstraintNextWeek  Constraint = "next_week"
	ConstraintWeekend   Constraint = "weekend"
	ConstraintFlexible  Constraint = "flexible"
)

var constraintWeekdays = map[Constraint]time.Weekday{
	ConstraintMonday:    time.Monday,
	ConstraintTuesday:   time.Tuesday,
	ConstraintWednesday: time.Wednesday,
	ConstraintThursday:  time.Thursday,
	ConstraintFriday:    time.Friday,
}

// Weekday returns the weekday a weekday-token constraint refers to.
func (c Constraint) Weekday() (time.Weekday, bool) {
	w, ok := constraintWeekdays[c]
	return w, ok
}

// IsWeekday reports whether the constraint names a specific business weekday.
func (c Constraint) IsWeekday() bool {
	_, ok := constraintWeekdays[c]
	return ok
}

var weekendWords = []string{"saturday", "sunday", "weekend"}

// ConstraintFromText derives a constraint token from free text. Weekend
// mentions win over everything else; unrecognized text maps to flexible.
func ConstraintFromText(text string) Constraint {
	lower := strings.ToLower(text)
	for _, w := range weekendWords {
		if strings.Contains(lower, w) {
			return ConstraintWeekend
		}
	}
	switch {
	case strings.Contains(lower, "thursday"):
		return ConstraintThursday
	case strings.Contains(lower, "monday"):
		return ConstraintMonday
	case strings.Contains(lower, "tuesday"):
		return ConstraintTuesday
	case strings.Contains(lower, "wednesday"):
		return ConstraintWednesday
	case strings.Contains(lower, "friday"):
		return ConstraintFriday
	case strings.Contains(lower, "next week"):
		return ConstraintNextWeek
	case strings.Contains(lower, "tomorrow"):
		return ConstraintTomorrow
	default:
		return ConstraintFlexible
	}
}
