package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/meetwise/meetwise/core/model"
)

// MemorySource serves busy intervals from memory. Used by tests and the
// fixture-driven resolve command.
type MemorySource struct {
	mu     sync.RWMutex
	events map[string][]model.Interval
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{events: make(map[string][]model.Interval)}
}

// Add appends an interval to a participant's calendar.
func (s *MemorySource) Add(participant string, iv model.Interval) {
	s.mu.Lock()
	s.events[participant] = append(s.events[participant], iv)
	s.mu.Unlock()
}

// Events implements Source.
func (s *MemorySource) Events(ctx context.Context, participant string, start, end time.Time) ([]model.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Interval
	for _, iv := range s.events[participant] {
		if iv.Overlaps(start, end) {
			out = append(out, iv)
		}
	}
	model.SortIntervals(out)
	return out, nil
}

// fixtureEvent mirrors the wire event shape for fixture files.
type fixtureEvent struct {
	StartTime string   `json:"StartTime"`
	EndTime   string   `json:"EndTime"`
	Attendees []string `json:"Attendees"`
	Summary   string   `json:"Summary"`
}

// LoadFixtures populates a MemorySource from a JSON file mapping participant
// emails to event lists.
func LoadFixtures(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures map[string][]fixtureEvent
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	src := NewMemorySource()
	for participant, events := range fixtures {
		for _, ev := range events {
			start, err := model.ParseTime(ev.StartTime)
			if err != nil {
				return nil, fmt.Errorf("fixture start for %s: %w", participant, err)
			}
			end, err := model.ParseTime(ev.EndTime)
			if err != nil {
				return nil, fmt.Errorf("fixture end for %s: %w", participant, err)
			}
			src.Add(participant, model.Interval{
				Start:     start,
				End:       end,
				Attendees: ev.Attendees,
				Summary:   ev.Summary,
			})
		}
	}
	return src, nil
}
