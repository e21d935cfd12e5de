package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/meetwise/meetwise/core/model"
)

// Assemble merges a decision with the original request and the fetched
// calendars into the final response. Every original participant appears in
// the response; participants included in the decision additionally gain the
// newly proposed meeting on their timeline. The recommended end is always
// recomputed from start and duration. An unusable decision start fails
// closed with an error rather than echoing an invalid timestamp.
func Assemble(req Request, dec model.Decision, cal model.Calendar) (Response, error) {
	if dec.Start.IsZero() {
		return Response{}, fmt.Errorf("decision has no recommended start")
	}
	if dec.DurationMinutes <= 0 {
		return Response{}, fmt.Errorf("decision has non-positive duration %d", dec.DurationMinutes)
	}

	start := model.FormatTime(dec.Start)
	end := model.FormatTime(dec.End())

	meeting := Event{
		StartTime:    start,
		EndTime:      end,
		NumAttendees: len(dec.Included),
		Attendees:    dec.Included,
		Summary:      req.Subject,
	}

	var attendees []AttendeeEvents
	for _, p := range req.Participants() {
		events := toWireEvents(cal[p])
		if dec.Includes(p) {
			events = append(events, meeting)
		}
		sort.Slice(events, func(i, j int) bool { return events[i].StartTime < events[j].StartTime })
		attendees = append(attendees, AttendeeEvents{Email: p, Events: events})
	}

	return Response{
		RequestID:    req.RequestID,
		Datetime:     req.Datetime,
		Location:     req.Location,
		From:         req.From,
		Attendees:    attendees,
		Subject:      req.Subject,
		EmailContent: req.EmailContent,
		EventStart:   start,
		EventEnd:     end,
		DurationMins: strconv.Itoa(dec.DurationMinutes),
		MetaData:     buildMetaData(dec),
	}, nil
}

func toWireEvents(ivs []model.Interval) []Event {
	events := make([]Event, 0, len(ivs))
	for _, iv := range ivs {
		summary := iv.Summary
		if summary == "" {
			summary = "No Title"
		}
		events = append(events, Event{
			StartTime:    model.FormatTime(iv.Start),
			EndTime:      model.FormatTime(iv.End),
			NumAttendees: len(iv.Attendees),
			Attendees:    iv.Attendees,
			Summary:      summary,
		})
	}
	return events
}

func buildMetaData(dec model.Decision) MetaData {
	md := MetaData{
		ResolutionAction:   dec.Action.String(),
		ResolutionReason:   dec.Reason,
		SchedulingStrategy: dec.Action.Strategy(),
		FollowUpNeeded:     dec.Pending,
		RescheduleNeeded:   dec.RescheduleTarget,
	}
	for _, fu := range dec.FollowUps {
		md.FollowUpMeetings = append(md.FollowUpMeetings, FollowUpMeeting{
			Participants: fu.Participants,
			Time:         model.FormatTime(fu.Time),
			Reason:       fu.Reason,
		})
	}
	return md
}

// WeekendRejection builds the rejection envelope for weekend requests: the
// request fields are echoed with empty event times and a rejected status.
func WeekendRejection(req Request, reason string) Response {
	attendees := make([]AttendeeEvents, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		attendees = append(attendees, AttendeeEvents{Email: a.Email})
	}
	return Response{
		RequestID:    req.RequestID,
		Datetime:     req.Datetime,
		Location:     req.Location,
		From:         req.From,
		Attendees:    attendees,
		Subject:      req.Subject,
		EmailContent: req.EmailContent,
		MetaData: MetaData{
			Status: "rejected",
			Reason: reason,
			Message: "Weekend meetings are not allowed. " +
				"Please schedule during business days (Monday-Friday).",
		},
	}
}

// Failure builds the structured failure envelope produced when processing
// fails after the request was accepted.
func Failure(req Request, err error) Response {
	attendees := make([]AttendeeEvents, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		attendees = append(attendees, AttendeeEvents{Email: a.Email})
	}
	return Response{
		RequestID:    req.RequestID,
		Datetime:     req.Datetime,
		Location:     req.Location,
		From:         req.From,
		Attendees:    attendees,
		Subject:      req.Subject,
		EmailContent: req.EmailContent,
		DurationMins: strconv.Itoa(model.DefaultDurationMinutes),
		MetaData: MetaData{
			Status: "failed",
			Error:  err.Error(),
		},
	}
}
