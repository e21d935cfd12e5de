package model

import "fmt"

// DefaultDurationMinutes is substituted when a request carries no usable
// duration. The substitution is always logged by the parser.
const DefaultDurationMinutes = 30

// Request is a structured meeting request as produced by a parser. Immutable
// once constructed.
type Request struct {
	Participants    []string   // non-empty, deduplicated, organizer first
	DurationMinutes int        // positive, defaults to DefaultDurationMinutes
	Constraint      Constraint // symbolic time constraint
	Subject         string
	Organizer       string // one of Participants
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if len(r.Participants) == 0 {
		return fmt.Errorf("request has no participants")
	}
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d", r.DurationMinutes)
	}
	if r.Organizer == "" {
		return fmt.Errorf("request has no organizer")
	}
	return nil
}
