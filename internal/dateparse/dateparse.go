// Package dateparse converts the locale date strings found in uploaded
// activity data (DD/MM/YYYY) into comparable time values. Malformed input
// yields a sentinel instead of an error; callers must drop invalid dates
// before sorting or range comparison.
package dateparse

import (
	"strconv"
	"strings"
	"time"
)

// Parse parses a slash-separated D/M/Y string. The second return value is
// false for any other shape or for non-integer parts. Out-of-range parts
// normalize the way time.Date does (31/4 rolls into May).
func Parse(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// Day truncates a time to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InRange reports whether d falls within [from, to]. Both bounds are
// truncated to day granularity and the range is inclusive on both ends;
// a nil bound leaves that side open.
func InRange(d time.Time, from, to *time.Time) bool {
	day := Day(d)
	if from != nil && day.Before(Day(*from)) {
		return false
	}
	if to != nil && day.After(Day(*to)) {
		return false
	}
	return true
}
