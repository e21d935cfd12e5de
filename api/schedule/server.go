// Package schedule exposes the meeting-resolution HTTP API: POST /receive
// processes a request, GET /health reports liveness and GET /debug shows
// recently received requests.
package schedule

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meetwise/meetwise/core/assist"
	"github.com/meetwise/meetwise/core/output"
	"github.com/meetwise/meetwise/infra/logger"
)

const debugBacklog = 5

// Server handles scheduling requests over HTTP.
type Server struct {
	addr      string
	assistant *assist.Assistant
	log       logger.Logger
	srv       *http.Server

	received prometheus.Counter
	failed   prometheus.Counter

	mu     sync.Mutex
	total  int
	recent []output.Request
}

// NewServer creates a Server using the default Prometheus registerer.
func NewServer(addr string, assistant *assist.Assistant) *Server {
	return NewServerWithRegistry(addr, assistant, prometheus.DefaultRegisterer)
}

// NewServerWithRegistry creates a Server and registers its metrics on the
// provided registerer. If reg is nil the default registerer is used.
func NewServerWithRegistry(addr string, assistant *assist.Assistant, reg prometheus.Registerer) *Server {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	log := logger.New("schedule-api")

	received := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_requests_total",
		Help: "Total received scheduling requests",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_requests_failed",
		Help: "Scheduling requests that could not be decoded",
	})

	if err := reg.Register(received); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(prometheus.Counter); ok {
				received = exist
			} else {
				log.Errorf("existing collector for schedule_requests_total has wrong type %T", are.ExistingCollector)
			}
		}
	}
	if err := reg.Register(failed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(prometheus.Counter); ok {
				failed = exist
			} else {
				log.Errorf("existing collector for schedule_requests_failed has wrong type %T", are.ExistingCollector)
			}
		}
	}

	return &Server{
		addr:      addr,
		assistant: assistant,
		log:       log,
		received:  received,
		failed:    failed,
	}
}

// Routes returns the handler tree. Exposed for httptest use.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/receive", s.handleReceive)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/debug", s.handleDebug)
	return mux
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req output.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failed.Inc()
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.received.Inc()
	s.remember(req)

	resp := s.assistant.Process(r.Context(), req)
	writeJSON(w, s.log, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.log, map[string]string{
		"status":  "healthy",
		"message": "meeting assistant is running",
	})
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	payload := struct {
		ReceivedRequests int              `json:"received_requests"`
		LastRequests     []output.Request `json:"last_requests"`
	}{
		ReceivedRequests: s.total,
		LastRequests:     append([]output.Request(nil), s.recent...),
	}
	s.mu.Unlock()
	writeJSON(w, s.log, payload)
}

// remember keeps the last few requests for the debug endpoint.
func (s *Server) remember(req output.Request) {
	s.mu.Lock()
	s.total++
	s.recent = append(s.recent, req)
	if len(s.recent) > debugBacklog {
		s.recent = s.recent[len(s.recent)-debugBacklog:]
	}
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, log logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %v", err)
	}
}

// Addr returns the listening address once Start has been called.
func (s *Server) Addr() string { return s.addr }

// Start runs the HTTP server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	s.srv = &http.Server{Handler: s.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown server: %v", err)
		}
		cancel()
	}()
	s.log.Infof("schedule API listening on %s", s.addr)
	err = s.srv.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
