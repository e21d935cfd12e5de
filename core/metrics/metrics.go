// Package metrics defines the observability contract for resolution events.
// Concrete sinks live under infra/metrics.
package metrics

import "time"

// ResolutionResult is one completed scheduling resolution to be recorded.
type ResolutionResult struct {
	RequestID    string
	Action       string // wire action token, empty for rejections/failures
	Constraint   string
	Participants int
	Included     int
	Rejected     bool
	Failed       bool
	Latency      time.Duration
	Time         time.Time
}

// Sink records resolution results for observability purposes.
type Sink interface {
	RecordResolution(res ResolutionResult) error
}

// NopSink discards every record.
type NopSink struct{}

// RecordResolution implements Sink.
func (NopSink) RecordResolution(ResolutionResult) error { return nil }
