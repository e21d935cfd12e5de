package conflict

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/infra/logger"
)

// Tuesday.
var ref = time.Date(2025, 7, 15, 9, 0, 0, 0, model.Zone)

func testRequest(subject string, participants ...string) model.Request {
	return model.Request{
		Participants:    participants,
		DurationMinutes: 30,
		Constraint:      model.ConstraintThursday,
		Subject:         subject,
		Organizer:       participants[0],
	}
}

func busyOn(cal model.Calendar, participant, summary string) model.Calendar {
	if cal == nil {
		cal = model.Calendar{}
	}
	cal[participant] = append(cal[participant], busyInterval(summary))
	return cal
}

func TestResolveAllFree(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Project sync", "a@corp.com", "b@corp.com")
	an := Analyze(req.Participants, model.Calendar{})

	dec := e.Resolve(req, an, ref)
	if dec.Action != model.ActionScheduleAll {
		t.Fatalf("action: %s", dec.Action)
	}
	want := time.Date(2025, 7, 17, 10, 30, 0, 0, model.Zone)
	if !dec.Start.Equal(want) {
		t.Fatalf("start: %v", dec.Start)
	}
	if !reflect.DeepEqual(dec.Included, req.Participants) {
		t.Fatalf("included: %v", dec.Included)
	}
	if dec.Reason != "All participants are available at the requested time" {
		t.Fatalf("reason: %q", dec.Reason)
	}
}

func TestResolveAllBusy(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Project sync", "a@corp.com", "b@corp.com")
	cal := busyOn(nil, "a@corp.com", "Client call")
	cal = busyOn(cal, "b@corp.com", "Sprint review")
	an := Analyze(req.Participants, cal)

	dec := e.Resolve(req, an, ref)
	if dec.Action != model.ActionRescheduleTomorrow {
		t.Fatalf("action: %s", dec.Action)
	}
	// tomorrow from Tuesday is Wednesday at 10:00
	want := time.Date(2025, 7, 16, 10, 0, 0, 0, model.Zone)
	if !dec.Start.Equal(want) {
		t.Fatalf("start: %v", dec.Start)
	}
	if !strings.Contains(dec.Reason, "busy with important meetings") {
		t.Fatalf("reason: %q", dec.Reason)
	}
}

func TestResolveAllBusyOnFridaySkipsWeekend(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Project sync", "a@corp.com")
	an := Analyze(req.Participants, busyOn(nil, "a@corp.com", "Client call"))

	friday := time.Date(2025, 7, 18, 9, 0, 0, 0, model.Zone)
	dec := e.Resolve(req, an, friday)
	want := time.Date(2025, 7, 21, 10, 0, 0, 0, model.Zone)
	if !dec.Start.Equal(want) {
		t.Fatalf("start: %v", dec.Start)
	}
}

func TestResolveLowImportanceConflict(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Project sync", "a@corp.com", "b@corp.com")
	an := Analyze(req.Participants, busyOn(nil, "b@corp.com", "Coffee break"))

	dec := e.Resolve(req, an, ref)
	if dec.Action != model.ActionScheduleAllWithReschedule {
		t.Fatalf("action: %s", dec.Action)
	}
	if dec.RescheduleTarget != "b@corp.com" {
		t.Fatalf("target: %q", dec.RescheduleTarget)
	}
	if !reflect.DeepEqual(dec.Included, req.Participants) {
		t.Fatalf("included: %v", dec.Included)
	}
	if !strings.Contains(dec.Reason, "b@corp.com's low-priority meeting") {
		t.Fatalf("reason: %q", dec.Reason)
	}
}

func TestResolveFirstBusyParticipantDrivesImportance(t *testing.T) {
	// Only the first busy participant's conflicts feed the low-importance
	// shortcut; a later participant's low-priority meeting is not considered.
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Project sync", "a@corp.com", "b@corp.com", "c@corp.com")
	cal := busyOn(nil, "b@corp.com", "Client escalation")
	cal = busyOn(cal, "c@corp.com", "Coffee break")
	an := Analyze(req.Participants, cal)

	dec := e.Resolve(req, an, ref)
	if dec.Action == model.ActionScheduleAllWithReschedule {
		t.Fatalf("second busy participant should not trigger reschedule")
	}
	if dec.Action != model.ActionScheduleOrganizerFirst {
		t.Fatalf("action: %s", dec.Action)
	}
}

func TestResolveSubjectRequiresEveryone(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	for _, subject := range []string{"All hands", "Team retro", "Everyone welcome", "Planning together"} {
		req := testRequest(subject, "a@corp.com", "b@corp.com")
		an := Analyze(req.Participants, busyOn(nil, "b@corp.com", "Coffee break"))

		dec := e.Resolve(req, an, ref)
		if dec.Action != model.ActionRescheduleTomorrow {
			t.Fatalf("%q: action %s", subject, dec.Action)
		}
		if !strings.Contains(dec.Reason, "All participants are required") {
			t.Fatalf("%q: reason %q", subject, dec.Reason)
		}
	}
}

func TestResolveFeedbackGoesPartial(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Design feedback", "a@corp.com", "b@corp.com", "c@corp.com")
	an := Analyze(req.Participants, busyOn(nil, "b@corp.com", "Sprint review"))

	dec := e.Resolve(req, an, ref)
	if dec.Action != model.ActionSchedulePartial {
		t.Fatalf("action: %s", dec.Action)
	}
	if !reflect.DeepEqual(dec.Included, []string{"a@corp.com", "c@corp.com"}) {
		t.Fatalf("included: %v", dec.Included)
	}
	if !reflect.DeepEqual(dec.Pending, []string{"b@corp.com"}) {
		t.Fatalf("pending: %v", dec.Pending)
	}
}

func TestResolveOrganizerFirst(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Roadmap catchup", "a@corp.com", "b@corp.com", "c@corp.com")
	an := Analyze(req.Participants, busyOn(nil, "b@corp.com", "Sprint review"))

	dec := e.Resolve(req, an, ref)
	if dec.Action != model.ActionScheduleOrganizerFirst {
		t.Fatalf("action: %s", dec.Action)
	}
	// organizer leads, no duplicate even though they are also available
	if !reflect.DeepEqual(dec.Included, []string{"a@corp.com", "c@corp.com"}) {
		t.Fatalf("included: %v", dec.Included)
	}
	if len(dec.FollowUps) != 1 {
		t.Fatalf("follow-ups: %+v", dec.FollowUps)
	}
	fu := dec.FollowUps[0]
	if !reflect.DeepEqual(fu.Participants, []string{"a@corp.com", "b@corp.com"}) {
		t.Fatalf("follow-up participants: %v", fu.Participants)
	}
	// two hours after the reference instant, truncated to the hour
	want := time.Date(2025, 7, 15, 11, 0, 0, 0, model.Zone)
	if !fu.Time.Equal(want) {
		t.Fatalf("follow-up time: %v", fu.Time)
	}
}

func TestResolveDeterministic(t *testing.T) {
	e := NewEngine(logger.NopLogger{})
	req := testRequest("Design feedback", "a@corp.com", "b@corp.com")
	an := Analyze(req.Participants, busyOn(nil, "b@corp.com", "Sprint review"))

	a := e.Resolve(req, an, ref)
	b := e.Resolve(req, an, ref)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolution not reproducible")
	}
}
