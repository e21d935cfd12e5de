// Package assist orchestrates one meeting request end to end: parse,
// resolve the lookup window, fetch calendars, analyze conflicts, decide,
// and assemble the response. Internal failures become structured failure
// responses; weekend requests become explicit rejections.
package assist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meetwise/meetwise/core/conflict"
	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/metrics"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/output"
	"github.com/meetwise/meetwise/core/slots"
	"github.com/meetwise/meetwise/core/timewindow"
	"github.com/meetwise/meetwise/infra/calendar"
	"github.com/meetwise/meetwise/internal/eventbus"
)

// Parser extracts a structured meeting request from the inbound envelope.
type Parser interface {
	Parse(ctx context.Context, req output.Request) (model.Request, error)
}

// CalendarService fetches busy intervals for a set of participants.
type CalendarService interface {
	Fetch(ctx context.Context, participants []string, start, end time.Time) (model.Calendar, []calendar.FetchResult)
}

// ResolutionEvent is published on the bus after each processed request.
type ResolutionEvent struct {
	Result metrics.ResolutionResult
}

// Assistant processes meeting requests. Safe for concurrent use; all state
// is per-request.
type Assistant struct {
	parser   Parser
	calendar CalendarService
	engine   *conflict.Engine
	bus      *eventbus.Bus[ResolutionEvent]
	log      logger.Logger
	now      func() time.Time
}

// New creates an Assistant. A nil bus disables event publication.
func New(parser Parser, cal CalendarService, engine *conflict.Engine, bus *eventbus.Bus[ResolutionEvent], log logger.Logger) *Assistant {
	return &Assistant{
		parser:   parser,
		calendar: cal,
		engine:   engine,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
}

// SetClock overrides the reference clock. Tests use a fixed instant to make
// every derived time reproducible.
func (a *Assistant) SetClock(now func() time.Time) { a.now = now }

// Process resolves one meeting request and always returns a well-formed
// response envelope.
func (a *Assistant) Process(ctx context.Context, req output.Request) output.Response {
	started := time.Now()
	ref := a.now().In(model.Zone)

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
		a.log.Debugf("request without id, assigned %s", req.RequestID)
	}
	a.log.Infof("processing request %s subject %q", req.RequestID, req.Subject)

	parsed, err := a.parser.Parse(ctx, req)
	if err == nil {
		err = parsed.Validate()
	}
	if err != nil {
		a.log.Errorf("request %s unparseable: %v", req.RequestID, err)
		a.publish(req, parsed, nil, started, false, true)
		return output.Failure(req, err)
	}

	window := timewindow.ResolveWindow(parsed.Constraint, ref)
	if window.Rejected {
		a.log.Infof("request %s rejected: %s", req.RequestID, window.Reason)
		a.publish(req, parsed, nil, started, true, false)
		return output.WeekendRejection(req, window.Reason)
	}

	cal, results := a.calendar.Fetch(ctx, parsed.Participants, window.Start, window.End)
	for _, res := range results {
		a.log.Debugf("request %s participant %s: %d events (%s)",
			req.RequestID, res.Participant, len(res.Intervals), res.Status)
	}

	analysis := conflict.Analyze(parsed.Participants, cal)
	decision := a.engine.Resolve(parsed, analysis, ref)
	a.logAlternatives(req.RequestID, parsed, cal, decision)

	resp, err := output.Assemble(req, decision, cal)
	if err != nil {
		a.log.Errorf("request %s assembly failed: %v", req.RequestID, err)
		a.publish(req, parsed, nil, started, false, true)
		return output.Failure(req, err)
	}

	a.publish(req, parsed, &decision, started, false, false)
	a.log.Infof("request %s resolved: %s at %s", req.RequestID, decision.Action, resp.EventStart)
	return resp
}

// logAlternatives computes candidate free slots on the decision day over
// every participant's combined commitments, for operators inspecting why a
// slot was or was not chosen.
func (a *Assistant) logAlternatives(requestID string, parsed model.Request, cal model.Calendar, dec model.Decision) {
	var combined []model.Interval
	for _, p := range parsed.Participants {
		combined = append(combined, cal[p]...)
	}
	free := slots.Find(combined,
		time.Duration(parsed.DurationMinutes)*time.Minute,
		slots.BusinessWindow(dec.Start))

	starts := make([]string, 0, len(free))
	for _, s := range free {
		starts = append(starts, model.FormatTime(s.Start))
	}
	a.log.Debugw("candidate free slots", map[string]any{
		"request_id": requestID,
		"day":        model.FormatTime(dec.Start),
		"slots":      starts,
	})
}

func (a *Assistant) publish(req output.Request, parsed model.Request, dec *model.Decision, started time.Time, rejected, failed bool) {
	if a.bus == nil {
		return
	}
	res := metrics.ResolutionResult{
		RequestID:    req.RequestID,
		Constraint:   string(parsed.Constraint),
		Participants: len(parsed.Participants),
		Rejected:     rejected,
		Failed:       failed,
		Latency:      time.Since(started),
		Time:         time.Now(),
	}
	if dec != nil {
		res.Action = dec.Action.String()
		res.Included = len(dec.Included)
	}
	a.bus.Publish(ResolutionEvent{Result: res})
}
