// Package calendar retrieves participants' busy intervals from calendar
// sources and merges them with a fail-open policy: a participant whose
// fetch errors or times out is treated as fully available.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/meetwise/meetwise/core/model"
)

// Source retrieves a participant's busy intervals for a lookup window.
// Implementations must return an empty list, not an error, when the
// participant has no usable calendar, deduplicate attendee emails per
// interval and order results by start time.
type Source interface {
	Events(ctx context.Context, participant string, start, end time.Time) ([]model.Interval, error)
}

// Config defines calendar retrieval settings.
type Config struct {
	// Provider selects the source type: "ics" or "memory".
	Provider string `json:"provider"`
	// Dir is the directory of per-participant .ics files for the ics provider.
	Dir string `json:"dir"`
	// FixturesPath is a JSON fixture file for the memory provider.
	FixturesPath string `json:"fixtures_path"`
	// FetchTimeoutSeconds bounds each per-participant fetch.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Provider == "" {
		c.Provider = "ics"
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = 3
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Provider {
	case "ics":
		if c.Dir == "" {
			return fmt.Errorf("calendar dir is required for the ics provider")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown calendar provider %s", c.Provider)
	}
	return nil
}
