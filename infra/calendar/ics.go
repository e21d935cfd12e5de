package calendar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/model"
)

// ICSSource reads busy intervals from per-participant iCalendar files:
// <dir>/<localpart>.ics for participant <localpart>@domain. A missing file
// means the participant has no usable calendar and yields an empty list.
type ICSSource struct {
	dir string
	log logger.Logger
}

// NewICSSource creates an ICSSource for the given directory.
func NewICSSource(dir string, log logger.Logger) *ICSSource {
	return &ICSSource{dir: dir, log: log}
}

// Events implements Source. Events overlapping [start, end) are returned
// ordered by start time, with attendee emails deduplicated and empty
// summaries replaced by "No Title".
func (s *ICSSource) Events(ctx context.Context, participant string, start, end time.Time) ([]model.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, localPart(participant)+".ics")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		s.log.Debugf("no calendar file for %s", participant)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open calendar for %s: %w", participant, err)
	}
	defer f.Close()

	var intervals []model.Interval
	dec := ical.NewDecoder(f)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar for %s: %w", participant, err)
		}
		for _, child := range cal.Children {
			if child.Name != ical.CompEvent {
				continue
			}
			iv, ok := parseEvent(child)
			if !ok {
				continue
			}
			if iv.Overlaps(start, end) {
				intervals = append(intervals, iv)
			}
		}
	}
	model.SortIntervals(intervals)
	return intervals, nil
}

func parseEvent(comp *ical.Component) (model.Interval, bool) {
	iv := model.Interval{Summary: "No Title"}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	endProp := comp.Props.Get(ical.PropDateTimeEnd)
	if startProp == nil || endProp == nil {
		return model.Interval{}, false
	}
	start, err := startProp.DateTime(model.Zone)
	if err != nil {
		return model.Interval{}, false
	}
	end, err := endProp.DateTime(model.Zone)
	if err != nil {
		return model.Interval{}, false
	}
	iv.Start = start.In(model.Zone)
	iv.End = end.In(model.Zone)
	if iv.Validate() != nil {
		return model.Interval{}, false
	}

	if p := comp.Props.Get(ical.PropSummary); p != nil && p.Value != "" {
		iv.Summary = p.Value
	}
	iv.Attendees = attendeeEmails(comp)
	return iv, true
}

// attendeeEmails collects deduplicated attendee addresses. Events without
// any attendee property are treated as personal and tagged SELF.
func attendeeEmails(comp *ical.Component) []string {
	props := comp.Props.Values(ical.PropAttendee)
	if len(props) == 0 {
		return []string{"SELF"}
	}
	seen := make(map[string]bool)
	var emails []string
	for _, p := range props {
		email := strings.TrimPrefix(strings.ToLower(p.Value), "mailto:")
		if email != "" && !seen[email] {
			seen[email] = true
			emails = append(emails, email)
		}
	}
	if len(emails) == 0 {
		return []string{"SELF"}
	}
	return emails
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
