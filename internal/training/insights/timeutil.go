package insights

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LocalDateString returns today's date as YYYY-MM-DD in the local calendar.
func LocalDateString() string {
	return time.Now().Format("2006-01-02")
}

// ParseLocalDate parses a YYYY-MM-DD string into midnight local time on
// that calendar day. The date is built from its components directly,
// so the day is never shifted by a timezone conversion.
func ParseLocalDate(date string) (time.Time, bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// CompareDates compares two YYYY-MM-DD strings by calendar day only.
// Malformed dates fall back to plain string ordering.
func CompareDates(a, b string) int {
	dateA, okA := ParseLocalDate(a)
	dateB, okB := ParseLocalDate(b)
	if !okA || !okB {
		return strings.Compare(a, b)
	}
	switch {
	case dateA.Before(dateB):
		return -1
	case dateA.After(dateB):
		return 1
	default:
		return 0
	}
}

// FormatDate renders a YYYY-MM-DD string as a short label, e.g. "Jan 5".
// Malformed input is returned unchanged.
func FormatDate(date string) string {
	t, ok := ParseLocalDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}

// FormatDateLong renders a YYYY-MM-DD string as a full label,
// e.g. "Monday, January 5, 2026".
func FormatDateLong(date string) string {
	t, ok := ParseLocalDate(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%s, %s %d, %d", t.Format("Monday"), t.Format("January"), t.Day(), t.Year())
}
