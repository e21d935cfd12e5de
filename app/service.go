// Package app wires configuration into a running service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/meetwise/meetwise/api/schedule"
	"github.com/meetwise/meetwise/config"
	"github.com/meetwise/meetwise/core/assist"
	"github.com/meetwise/meetwise/core/conflict"
	coremetrics "github.com/meetwise/meetwise/core/metrics"
	"github.com/meetwise/meetwise/infra/calendar"
	"github.com/meetwise/meetwise/infra/logger"
	"github.com/meetwise/meetwise/infra/mailparse"
	"github.com/meetwise/meetwise/infra/metrics"
	"github.com/meetwise/meetwise/internal/eventbus"
)

// Service orchestrates the schedule API, the resolution pipeline and the
// observability sinks.
type Service struct {
	API *schedule.Server

	bus         *eventbus.Bus[assist.ResolutionEvent]
	sink        coremetrics.Sink
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	log := logger.New("service")

	source, err := newSource(cfg.Calendar, log)
	if err != nil {
		return nil, err
	}
	fetcher := calendar.NewFetcher(source,
		time.Duration(cfg.Calendar.FetchTimeoutSeconds)*time.Second,
		logger.New("calendar-fetch"))

	var parser assist.Parser
	switch cfg.Parser.Mode {
	case "llm":
		parser = mailparse.NewLLM(cfg.Parser, logger.New("mailparse"))
	case "heuristic":
		parser = mailparse.Heuristic{Log: logger.New("mailparse")}
	default:
		return nil, fmt.Errorf("unknown parser mode %s", cfg.Parser.Mode)
	}

	sink, err := newSink(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New[assist.ResolutionEvent]()
	engine := conflict.NewEngine(logger.New("engine"))
	assistant := assist.New(parser, fetcher, engine, bus, logger.New("assistant"))
	api := schedule.NewServer(cfg.Server.Address, assistant)

	return &Service{
		API:         api,
		bus:         bus,
		sink:        sink,
		log:         log,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

func newSource(cfg calendar.Config, log logger.Logger) (calendar.Source, error) {
	switch cfg.Provider {
	case "ics":
		return calendar.NewICSSource(cfg.Dir, logger.New("ics-source")), nil
	case "memory":
		if cfg.FixturesPath != "" {
			return calendar.LoadFixtures(cfg.FixturesPath)
		}
		return calendar.NewMemorySource(), nil
	default:
		return nil, fmt.Errorf("unknown calendar provider %s", cfg.Provider)
	}
}

func newSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events := s.bus.Subscribe()
	go s.consume(events)

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.API.Start(ctx)
}

// consume records every resolution event on the metrics sink and logs it.
func (s *Service) consume(events <-chan assist.ResolutionEvent) {
	for ev := range events {
		res := ev.Result
		s.log.Debugw("resolution", map[string]any{
			"request_id":   res.RequestID,
			"action":       res.Action,
			"constraint":   res.Constraint,
			"participants": res.Participants,
			"rejected":     res.Rejected,
			"failed":       res.Failed,
			"latency_ms":   res.Latency.Milliseconds(),
		})
		if err := s.sink.RecordResolution(res); err != nil {
			s.log.Errorf("record resolution: %v", err)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
