// Package conflict implements availability analysis, importance
// classification and the scheduling decision engine. Every function is a
// pure, synchronous function of its inputs; the reference instant is always
// an explicit parameter.
package conflict

import (
	"fmt"
	"strings"
	"time"

	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/timewindow"
)

// Subjects containing any of these words require every participant to
// attend; partial scheduling is never chosen for them.
var requiresAllKeywords = []string{"all", "team", "everyone", "together"}

// Engine applies the resolution rules to a conflict analysis and produces a
// scheduling decision. Safe for concurrent use.
type Engine struct {
	log logger.Logger
}

// NewEngine creates an Engine logging through the given logger.
func NewEngine(log logger.Logger) *Engine {
	return &Engine{log: log}
}

// Resolve selects exactly one scheduling action for the analysis. ref is the
// reference instant the request arrived at; all derived times are computed
// from it deterministically.
func (e *Engine) Resolve(req model.Request, an Analysis, ref time.Time) model.Decision {
	switch {
	case an.AllFree():
		return e.scheduleAll(req, ref)
	case an.SomeBusy():
		return e.resolvePartial(req, an, ref)
	default:
		return e.rescheduleTomorrow(req, ref,
			"All participants are busy with important meetings. Rescheduling to tomorrow.")
	}
}

func (e *Engine) scheduleAll(req model.Request, ref time.Time) model.Decision {
	return model.Decision{
		Action:          model.ActionScheduleAll,
		Start:           timewindow.ResolveTarget(req.Constraint, ref),
		DurationMinutes: req.DurationMinutes,
		Included:        req.Participants,
		Reason:          "All participants are available at the requested time",
	}
}

func (e *Engine) rescheduleTomorrow(req model.Request, ref time.Time, reason string) model.Decision {
	return model.Decision{
		Action:          model.ActionRescheduleTomorrow,
		Start:           timewindow.NextBusinessDay(ref),
		DurationMinutes: req.DurationMinutes,
		Included:        req.Participants,
		Reason:          reason,
	}
}

// resolvePartial handles the mixed case: some participants busy, some free.
//
// Known limitation, kept intentionally: when several participants are busy,
// only the first busy participant's conflicts (request participant order)
// are inspected for the low-importance reschedule shortcut.
func (e *Engine) resolvePartial(req model.Request, an Analysis, ref time.Time) model.Decision {
	if subjectRequiresAll(req.Subject) {
		e.log.Debugf("subject %q requires everyone, rescheduling", req.Subject)
		return e.rescheduleTomorrow(req, ref,
			"All participants are required but some are busy. Rescheduling to tomorrow.")
	}

	first := an.Busy[0]
	if hasLowImportanceConflict(an.Detail[first]) {
		return model.Decision{
			Action:           model.ActionScheduleAllWithReschedule,
			Start:            timewindow.ResolveTarget(req.Constraint, ref),
			DurationMinutes:  req.DurationMinutes,
			Included:         req.Participants,
			Reason:           fmt.Sprintf("Rescheduling %s's low-priority meeting to accommodate this important meeting.", first),
			RescheduleTarget: first,
		}
	}

	if strings.Contains(strings.ToLower(req.Subject), "feedback") && len(an.Available) >= 1 {
		return model.Decision{
			Action:          model.ActionSchedulePartial,
			Start:           timewindow.ResolveTarget(req.Constraint, ref),
			DurationMinutes: req.DurationMinutes,
			Included:        an.Available,
			Reason: fmt.Sprintf("Meeting can proceed with %s. Will update %s separately.",
				strings.Join(an.Available, ", "), strings.Join(an.Busy, ", ")),
			Pending: an.Busy,
		}
	}

	included := prependUnique(req.Organizer, an.Available)
	return model.Decision{
		Action:          model.ActionScheduleOrganizerFirst,
		Start:           timewindow.ResolveTarget(req.Constraint, ref),
		DurationMinutes: req.DurationMinutes,
		Included:        included,
		Reason: fmt.Sprintf("Scheduling with organizer and available participants first. Will arrange separate time with %s.",
			strings.Join(an.Busy, ", ")),
		FollowUps: []model.FollowUp{{
			Participants: prependUnique(req.Organizer, an.Busy),
			Time:         timewindow.AlternativeTime(ref),
			Reason:       "Follow-up meeting with previously busy participants",
		}},
	}
}

func subjectRequiresAll(subject string) bool {
	lower := strings.ToLower(subject)
	for _, kw := range requiresAllKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasLowImportanceConflict(scored []ScoredInterval) bool {
	for _, s := range scored {
		if s.Tier == TierLow {
			return true
		}
	}
	return false
}

// prependUnique returns head followed by the tail entries, skipping a
// duplicate of head.
func prependUnique(head string, tail []string) []string {
	out := []string{head}
	for _, p := range tail {
		if p != head {
			out = append(out, p)
		}
	}
	return out
}
