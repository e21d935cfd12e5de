package model

import "time"

// Zone is the fixed UTC+05:30 offset used for every timestamp the service
// emits or compares. Calendar data from other offsets is converted on entry.
var Zone = time.FixedZone("+05:30", 5*3600+30*60)

// TimeLayout is the wire format for timestamps. It is fixed-width and
// zero-padded, so lexicographic order on formatted strings matches
// chronological order.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// FormatTime renders t in the service offset using TimeLayout.
func FormatTime(t time.Time) string {
	return t.In(Zone).Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp and normalizes it to the service
// offset.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(Zone), nil
}
