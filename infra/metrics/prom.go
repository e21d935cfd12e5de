package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/meetwise/meetwise/core/metrics"
)

// PromSink records resolution events in Prometheus metrics.
type PromSink struct {
	resolutions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewPromSink registers resolution metrics on the default Prometheus
// registerer. The Prometheus server is started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resolution_events_total",
		Help: "Total number of scheduling resolutions",
	}, []string{"action", "constraint", "rejected", "failed"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resolution_latency_seconds",
		Help:    "Time spent resolving one meeting request",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	if err := reg.Register(resolutions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resolutions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{resolutions: resolutions, latency: latency}, nil
}

// RecordResolution increments the counters for one resolution event.
func (s *PromSink) RecordResolution(res coremetrics.ResolutionResult) error {
	s.resolutions.WithLabelValues(
		res.Action,
		res.Constraint,
		strconv.FormatBool(res.Rejected),
		strconv.FormatBool(res.Failed),
	).Inc()
	s.latency.WithLabelValues(res.Action).Observe(res.Latency.Seconds())
	return nil
}
