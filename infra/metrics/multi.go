package metrics

import coremetrics "github.com/meetwise/meetwise/core/metrics"

// MultiSink fans resolution events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordResolution forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordResolution(res coremetrics.ResolutionResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordResolution(res); err != nil {
			return err
		}
	}
	return nil
}
