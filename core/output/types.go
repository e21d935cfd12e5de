// Package output assembles the final per-participant schedule view and
// defines the wire schema shared by the HTTP API and the CLI.
package output

// Attendee is one attendee entry on an inbound request.
type Attendee struct {
	Email string `json:"email"`
}

// Request is the inbound meeting request envelope.
type Request struct {
	RequestID    string     `json:"Request_id"`
	Datetime     string     `json:"Datetime"`
	Location     string     `json:"Location"`
	From         string     `json:"From"`
	Attendees    []Attendee `json:"Attendees"`
	Subject      string     `json:"Subject"`
	EmailContent string     `json:"EmailContent"`
}

// Participants returns every participant on the request: the sender first,
// then attendee emails, deduplicated in order.
func (r Request) Participants() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(email string) {
		if email != "" && !seen[email] {
			seen[email] = true
			out = append(out, email)
		}
	}
	add(r.From)
	for _, a := range r.Attendees {
		add(a.Email)
	}
	return out
}

// Event is one calendar event on the wire.
type Event struct {
	StartTime    string   `json:"StartTime"`
	EndTime      string   `json:"EndTime"`
	NumAttendees int      `json:"NumAttendees"`
	Attendees    []string `json:"Attendees"`
	Summary      string   `json:"Summary"`
}

// AttendeeEvents is a participant's resulting timeline, sorted by start.
type AttendeeEvents struct {
	Email  string  `json:"email"`
	Events []Event `json:"events"`
}

// FollowUpMeeting is a proposed secondary meeting recorded in the metadata.
type FollowUpMeeting struct {
	Participants []string `json:"participants"`
	Time         string   `json:"time"`
	Reason       string   `json:"reason"`
}

// MetaData carries resolution details on the response. Empty fields are
// omitted from the JSON encoding.
type MetaData struct {
	ResolutionAction   string            `json:"resolution_action,omitempty"`
	ResolutionReason   string            `json:"resolution_reason,omitempty"`
	SchedulingStrategy string            `json:"scheduling_strategy,omitempty"`
	FollowUpMeetings   []FollowUpMeeting `json:"follow_up_meetings,omitempty"`
	FollowUpNeeded     []string          `json:"follow_up_needed,omitempty"`
	RescheduleNeeded   string            `json:"reschedule_needed,omitempty"`
	Status             string            `json:"status,omitempty"`
	Reason             string            `json:"reason,omitempty"`
	Message            string            `json:"message,omitempty"`
	Error              string            `json:"error,omitempty"`
}

// Response is the outbound schedule envelope. Request fields are echoed
// back verbatim.
type Response struct {
	RequestID    string           `json:"Request_id"`
	Datetime     string           `json:"Datetime"`
	Location     string           `json:"Location"`
	From         string           `json:"From"`
	Attendees    []AttendeeEvents `json:"Attendees"`
	Subject      string           `json:"Subject"`
	EmailContent string           `json:"EmailContent"`
	EventStart   string           `json:"EventStart"`
	EventEnd     string           `json:"EventEnd"`
	DurationMins string           `json:"Duration_mins"`
	MetaData     MetaData         `json:"MetaData"`
}
