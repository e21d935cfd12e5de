// Package mailparse turns an inbound request envelope into a structured
// meeting request. The heuristic parser is always available; an optional
// LLM-backed parser refines vague requests and falls back to the heuristic
// on any failure.
package mailparse

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/output"
)

// Parser extracts a structured meeting request from the inbound envelope.
type Parser interface {
	Parse(ctx context.Context, req output.Request) (model.Request, error)
}

// Config defines parser settings.
type Config struct {
	// Mode selects the parser: "heuristic" or "llm".
	Mode           string `json:"mode"`
	BaseURL        string `json:"base_url"`
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "heuristic"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 3
	}
}

var (
	minutesRe  = regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?)`)
	hoursRe    = regexp.MustCompile(`(\d+)\s*hours?`)
	halfHourRe = regexp.MustCompile(`half\s*(?:an\s*)?hour`)
	oneHourRe  = regexp.MustCompile(`\ban hour\b`)
)

// Heuristic extracts participants, duration and the symbolic time
// constraint from the envelope with keyword and pattern matching.
type Heuristic struct {
	Log logger.Logger
}

// Parse implements Parser. It never fails: anything it cannot extract is
// substituted with an explicit, logged default.
func (h Heuristic) Parse(_ context.Context, req output.Request) (model.Request, error) {
	content := strings.ToLower(req.EmailContent)

	duration := parseDuration(content)
	if duration == 0 {
		duration = model.DefaultDurationMinutes
		h.Log.Debugf("no duration in request %s, defaulting to %d minutes", req.RequestID, duration)
	}

	constraint := model.ConstraintFromText(content)
	if constraint == model.ConstraintFlexible {
		h.Log.Debugf("no time constraint in request %s, treating as flexible", req.RequestID)
	}

	subject := req.Subject
	if subject == "" {
		subject = "Meeting"
	}

	return model.Request{
		Participants:    req.Participants(),
		DurationMinutes: duration,
		Constraint:      constraint,
		Subject:         subject,
		Organizer:       req.From,
	}, nil
}

// parseDuration extracts a duration in minutes from lowered text, or zero
// when nothing matches.
func parseDuration(content string) int {
	if m := minutesRe.FindStringSubmatch(content); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			return v
		}
	}
	if halfHourRe.MatchString(content) {
		return 30
	}
	if m := hoursRe.FindStringSubmatch(content); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			return v * 60
		}
	}
	if oneHourRe.MatchString(content) {
		return 60
	}
	return 0
}
