package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/model"
)

// DefaultFetchTimeout bounds each per-participant fetch.
const DefaultFetchTimeout = 3 * time.Second

// FetchStatus tags the outcome of one participant's fetch.
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchTimeout
	FetchError
)

// String returns a log-friendly token for the status.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// FetchResult is the tagged per-participant outcome of a fan-out fetch.
// Non-ok results carry an empty interval list.
type FetchResult struct {
	Participant string
	Intervals   []model.Interval
	Status      FetchStatus
	Err         error
}

// Fetcher retrieves busy intervals for many participants concurrently.
type Fetcher struct {
	source  Source
	timeout time.Duration
	log     logger.Logger
}

// NewFetcher creates a Fetcher. A non-positive timeout falls back to the
// default of three seconds.
func NewFetcher(source Source, timeout time.Duration, log logger.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{source: source, timeout: timeout, log: log}
}

// Fetch retrieves intervals for every participant with one concurrent fetch
// per participant, each bounded by the fetcher timeout. A fetch that errors
// or times out marks its participant fully available: the calendar maps
// them to an empty list and the corresponding result carries the non-ok
// status. This trades conflict detection for availability and can
// under-detect real conflicts. A slow fetch is abandoned, not cancelled
// beyond its context deadline.
func (f *Fetcher) Fetch(ctx context.Context, participants []string, start, end time.Time) (model.Calendar, []FetchResult) {
	results := make([]FetchResult, len(participants))
	var wg sync.WaitGroup
	for i, p := range participants {
		wg.Add(1)
		go func(i int, participant string) {
			defer wg.Done()
			results[i] = f.fetchOne(ctx, participant, start, end)
		}(i, p)
	}
	wg.Wait()

	cal := make(model.Calendar, len(participants))
	for _, res := range results {
		if res.Status != FetchOK {
			f.log.Warnf("calendar fetch for %s %s, treating as available: %v",
				res.Participant, res.Status, res.Err)
		}
		cal[res.Participant] = res.Intervals
	}
	return cal, results
}

// fetchOne runs the source call in its own goroutine so a source that
// ignores context cancellation still only delays its own participant.
func (f *Fetcher) fetchOne(ctx context.Context, participant string, start, end time.Time) FetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	type outcome struct {
		intervals []model.Interval
		err       error
	}
	done := make(chan outcome, 1)
	go func() {
		ivs, err := f.source.Events(ctx, participant, start, end)
		done <- outcome{intervals: ivs, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return FetchResult{Participant: participant, Status: FetchError, Err: out.err}
		}
		model.SortIntervals(out.intervals)
		return FetchResult{Participant: participant, Intervals: out.intervals, Status: FetchOK}
	case <-ctx.Done():
		return FetchResult{Participant: participant, Status: FetchTimeout, Err: ctx.Err()}
	}
}
