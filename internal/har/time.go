// time.go - Timestamp rendering and parsing for HAR date fields.
package har

import "time"

// DateTimeLayout is ISO 8601 with millisecond precision and a UTC offset.
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDateTime renders t in loc (time.Local when nil).
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateTimeLayout)
}

// EpochMillis converts CDP wallTime (fractional epoch seconds) to epoch
// milliseconds, truncating sub-millisecond precision.
func EpochMillis(wallTimeSeconds float64) int64 {
	return int64(wallTimeSeconds * 1000)
}

// ParseTimestamp parses an RFC3339 timestamp string, trying RFC3339Nano first
// (since it's a superset of RFC3339), then RFC3339 as a fallback.
// Returns zero time on failure.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t
}
