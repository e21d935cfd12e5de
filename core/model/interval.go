package model

import (
	"fmt"
	"sort"
	"time"
)

// Interval is an existing calendar commitment for one or more participants.
type Interval struct {
	Start     time.Time
	End       time.Time
	Attendees []string // deduplicated attendee emails
	Summary   string   // never empty; sources substitute "No Title"
}

// Validate checks that the interval spans a positive duration.
func (iv Interval) Validate() error {
	if !iv.End.After(iv.Start) {
		return fmt.Errorf("interval end %s not after start %s", iv.End, iv.Start)
	}
	return nil
}

// Overlaps reports whether the interval overlaps [start, end).
func (iv Interval) Overlaps(start, end time.Time) bool {
	return iv.Start.Before(end) && iv.End.After(start)
}

// Calendar maps a participant email to their busy intervals for the lookup
// window, ordered by start time. Built fresh per request.
type Calendar map[string][]Interval

// SortIntervals orders intervals chronologically by start time in place.
func SortIntervals(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
}
