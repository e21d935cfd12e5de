package calendar

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/infra/logger"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//meetwise//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1\r\n" +
	"DTSTAMP:20250714T120000Z\r\n" +
	"DTSTART:20250717T043000Z\r\n" +
	"DTEND:20250717T053000Z\r\n" +
	"SUMMARY:Client call\r\n" +
	"ATTENDEE:mailto:b@corp.com\r\n" +
	"ATTENDEE:mailto:B@CORP.COM\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2\r\n" +
	"DTSTAMP:20250714T120000Z\r\n" +
	"DTSTART:20250710T043000Z\r\n" +
	"DTEND:20250710T053000Z\r\n" +
	"SUMMARY:Last week\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func writeICS(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write ics: %v", err)
	}
}

func TestICSSourceEvents(t *testing.T) {
	dir := t.TempDir()
	writeICS(t, dir, "b.ics", sampleICS)

	src := NewICSSource(dir, logger.NopLogger{})
	ivs, err := src.Events(context.Background(), "b@corp.com", winStart, winEnd)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(ivs) != 1 {
		t.Fatalf("expected the out-of-window event filtered, got %+v", ivs)
	}

	got := ivs[0]
	// 04:30Z is 10:00 in the service offset
	wantStart := time.Date(2025, 7, 17, 10, 0, 0, 0, model.Zone)
	if !got.Start.Equal(wantStart) {
		t.Fatalf("start: %v", got.Start)
	}
	if got.Summary != "Client call" {
		t.Fatalf("summary: %q", got.Summary)
	}
	if len(got.Attendees) != 1 || got.Attendees[0] != "b@corp.com" {
		t.Fatalf("attendees not deduplicated: %v", got.Attendees)
	}
}

func TestICSSourceMissingFile(t *testing.T) {
	src := NewICSSource(t.TempDir(), logger.NopLogger{})
	ivs, err := src.Events(context.Background(), "ghost@corp.com", winStart, winEnd)
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(ivs) != 0 {
		t.Fatalf("intervals: %+v", ivs)
	}
}

func TestICSSourceNoAttendees(t *testing.T) {
	dir := t.TempDir()
	noAttendees := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//meetwise//test//EN",
		"BEGIN:VEVENT",
		"UID:evt-3",
		"DTSTAMP:20250714T120000Z",
		"DTSTART:20250717T060000Z",
		"DTEND:20250717T070000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	writeICS(t, dir, "c.ics", noAttendees)

	src := NewICSSource(dir, logger.NopLogger{})
	ivs, err := src.Events(context.Background(), "c@corp.com", winStart, winEnd)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(ivs) != 1 {
		t.Fatalf("intervals: %+v", ivs)
	}
	if ivs[0].Summary != "No Title" {
		t.Fatalf("summary: %q", ivs[0].Summary)
	}
	if len(ivs[0].Attendees) != 1 || ivs[0].Attendees[0] != "SELF" {
		t.Fatalf("attendees: %v", ivs[0].Attendees)
	}
}

func TestICSSourceMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeICS(t, dir, "d.ics", "this is not a calendar\r\n")

	src := NewICSSource(dir, logger.NopLogger{})
	if _, err := src.Events(context.Background(), "d@corp.com", winStart, winEnd); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.json")
	fixtures := `{
  "b@corp.com": [
    {
      "StartTime": "2025-07-17T10:00:00+05:30",
      "EndTime": "2025-07-17T11:00:00+05:30",
      "Attendees": ["b@corp.com"],
      "Summary": "Sprint review"
    }
  ]
}`
	if err := os.WriteFile(path, []byte(fixtures), 0o644); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}

	src, err := LoadFixtures(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ivs, err := src.Events(context.Background(), "b@corp.com", winStart, winEnd)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(ivs) != 1 || ivs[0].Summary != "Sprint review" {
		t.Fatalf("intervals: %+v", ivs)
	}
}

func TestLoadFixturesBadTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	bad := `{"b@corp.com": [{"StartTime": "tomorrow", "EndTime": "later"}]}`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	if _, err := LoadFixtures(path); err == nil {
		t.Fatalf("expected error")
	}
}
