package slots

import (
	"testing"
	"time"

	"github.com/meetwise/meetwise/core/model"
)

var day = time.Date(2025, 7, 17, 0, 0, 0, 0, model.Zone)

func at(h, m int) time.Time {
	return time.Date(2025, 7, 17, h, m, 0, 0, model.Zone)
}

func iv(startH, startM, endH, endM int) model.Interval {
	return model.Interval{Start: at(startH, startM), End: at(endH, endM)}
}

func TestBusinessWindow(t *testing.T) {
	win := BusinessWindow(at(13, 45))
	if !win.Start.Equal(at(9, 0)) || !win.End.Equal(at(18, 0)) {
		t.Fatalf("window %v - %v", win.Start, win.End)
	}
}

func TestFindEmptyCalendar(t *testing.T) {
	got := Find(nil, 30*time.Minute, BusinessWindow(day))
	if len(got) != 1 {
		t.Fatalf("slots: %+v", got)
	}
	if !got[0].Start.Equal(at(9, 0)) || !got[0].End.Equal(at(9, 30)) {
		t.Fatalf("slot %v - %v", got[0].Start, got[0].End)
	}
}

func TestFindGapsAndTail(t *testing.T) {
	busy := []model.Interval{iv(10, 0, 11, 0), iv(12, 0, 13, 0)}
	got := Find(busy, 30*time.Minute, BusinessWindow(day))

	want := []Slot{
		{at(9, 0), at(9, 30)},   // before the first interval
		{at(11, 0), at(11, 30)}, // gap between the two
		{at(13, 0), at(13, 30)}, // after the last
	}
	if len(got) != len(want) {
		t.Fatalf("slots: %+v", got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("slot %d: %v - %v", i, got[i].Start, got[i].End)
		}
	}
}

func TestFindSkipsShortGaps(t *testing.T) {
	busy := []model.Interval{iv(9, 0, 10, 0), iv(10, 15, 17, 45)}
	got := Find(busy, 30*time.Minute, BusinessWindow(day))
	if len(got) != 0 {
		t.Fatalf("expected no slots, got %+v", got)
	}
}

func TestFindMergesOverlappingIntervals(t *testing.T) {
	// Unsorted and overlapping on purpose.
	busy := []model.Interval{iv(10, 0, 11, 0), iv(9, 0, 12, 0), iv(11, 30, 12, 30)}
	got := Find(busy, time.Hour, BusinessWindow(day))

	for _, s := range got {
		for _, b := range busy {
			if b.Overlaps(s.Start, s.End) {
				t.Fatalf("slot %v - %v overlaps busy %v - %v", s.Start, s.End, b.Start, b.End)
			}
		}
	}
	if len(got) != 1 || !got[0].Start.Equal(at(12, 30)) {
		t.Fatalf("slots: %+v", got)
	}
}

func TestFindRespectsWindowEnd(t *testing.T) {
	busy := []model.Interval{iv(9, 0, 17, 45)}
	got := Find(busy, 30*time.Minute, BusinessWindow(day))
	if len(got) != 0 {
		t.Fatalf("slot past window end: %+v", got)
	}
}

func TestFindZeroDuration(t *testing.T) {
	if got := Find(nil, 0, BusinessWindow(day)); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
