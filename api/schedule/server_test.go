package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/meetwise/meetwise/core/assist"
	"github.com/meetwise/meetwise/core/conflict"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/output"
	"github.com/meetwise/meetwise/infra/calendar"
	"github.com/meetwise/meetwise/infra/logger"
	"github.com/meetwise/meetwise/infra/mailparse"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NopLogger{}
	a := assist.New(
		mailparse.Heuristic{Log: log},
		calendar.NewFetcher(calendar.NewMemorySource(), time.Second, log),
		conflict.NewEngine(log),
		nil,
		log,
	)
	// Tuesday
	a.SetClock(func() time.Time {
		return time.Date(2025, 7, 15, 9, 0, 0, 0, model.Zone)
	})
	s := NewServerWithRegistry(":0", a, prometheus.NewRegistry())
	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postReceive(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/receive", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

const requestBody = `{
  "Request_id": "req-1",
  "Datetime": "15-07-2025T09:00:00",
  "Location": "Bangalore",
  "From": "a@corp.com",
  "Attendees": [{"email": "b@corp.com"}],
  "Subject": "Project sync",
  "EmailContent": "Let's meet on Thursday for 30 minutes."
}`

func TestReceiveSchedulesMeeting(t *testing.T) {
	srv := newTestServer(t)
	resp := postReceive(t, srv, requestBody)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: %q", ct)
	}

	var out output.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RequestID != "req-1" {
		t.Fatalf("request id: %q", out.RequestID)
	}
	if out.MetaData.ResolutionAction != "schedule_all" {
		t.Fatalf("action: %+v", out.MetaData)
	}
	if out.EventStart != "2025-07-17T10:30:00+05:30" {
		t.Fatalf("start: %q", out.EventStart)
	}
}

func TestReceiveWeekendRejected(t *testing.T) {
	srv := newTestServer(t)
	body := strings.Replace(requestBody, "on Thursday", "on Saturday", 1)
	resp := postReceive(t, srv, body)
	defer resp.Body.Close()

	var out output.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.MetaData.Status != "rejected" {
		t.Fatalf("metadata: %+v", out.MetaData)
	}
}

func TestReceiveRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)
	resp := postReceive(t, srv, "{not json")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestReceiveRejectsGet(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/receive")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["status"] != "healthy" {
		t.Fatalf("payload: %v", out)
	}
}

func TestDebugTracksRequests(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < debugBacklog+2; i++ {
		resp := postReceive(t, srv, requestBody)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/debug")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		ReceivedRequests int              `json:"received_requests"`
		LastRequests     []output.Request `json:"last_requests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ReceivedRequests != debugBacklog+2 {
		t.Fatalf("received: %d", out.ReceivedRequests)
	}
	if len(out.LastRequests) != debugBacklog {
		t.Fatalf("backlog: %d", len(out.LastRequests))
	}
}
