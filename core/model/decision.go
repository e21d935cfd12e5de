package model

import "time"

// Action is the terminal scheduling action chosen by the decision engine.
type Action int

const (
	ActionScheduleAll Action = iota
	ActionRescheduleTomorrow
	ActionScheduleAllWithReschedule
	ActionSchedulePartial
	ActionScheduleOrganizerFirst
)

// String returns the wire token for the action.
func (a Action) String() string {
	switch a {
	case ActionScheduleAll:
		return "schedule_all"
	case ActionRescheduleTomorrow:
		return "reschedule_tomorrow"
	case ActionScheduleAllWithReschedule:
		return "schedule_all_with_reschedule"
	case ActionSchedulePartial:
		return "schedule_partial"
	case ActionScheduleOrganizerFirst:
		return "schedule_organizer_first"
	default:
		return "unknown"
	}
}

// Strategy returns the human-readable scheduling strategy for the action.
func (a Action) Strategy() string {
	switch a {
	case ActionScheduleAll:
		return "All participants available - direct scheduling"
	case ActionSchedulePartial:
		return "Partial scheduling with available participants"
	case ActionRescheduleTomorrow:
		return "All busy - rescheduled to next day"
	case ActionScheduleOrganizerFirst:
		return "Organizer and available participants first, follow-up with busy participants"
	case ActionScheduleAllWithReschedule:
		return "All participants scheduled with low-priority meeting rescheduled"
	default:
		return "Standard scheduling"
	}
}

// FollowUp is a proposed secondary meeting for participants excluded from the
// primary meeting.
type FollowUp struct {
	Participants []string
	Time         time.Time
	Reason       string
}

// Decision is the outcome of conflict resolution for one request.
type Decision struct {
	Action          Action
	Start           time.Time // recommended meeting start
	DurationMinutes int
	Included        []string // non-empty subset of the request participants
	Reason          string
	FollowUps       []FollowUp
	Pending         []string // busy participants to update separately
	RescheduleTarget string  // participant whose conflicting meeting should move
}

// End derives the recommended end from start and duration.
func (d Decision) End() time.Time {
	return d.Start.Add(time.Duration(d.DurationMinutes) * time.Minute)
}

// Includes reports whether the participant attends the primary meeting.
func (d Decision) Includes(participant string) bool {
	for _, p := range d.Included {
		if p == participant {
			return true
		}
	}
	return false
}
