package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidateRunTime reports whether the given string is a well-formed
// MM:SS run time. Any non-negative minute count is accepted, so
// historical data outside the entry-form bounds still parses.
func ValidateRunTime(runTime string) bool {
	parts := strings.Split(runTime, ":")
	if len(parts) != 2 {
		return false
	}
	min, errMin := strconv.Atoi(parts[0])
	sec, errSec := strconv.Atoi(parts[1])
	if errMin != nil || errSec != nil {
		return false
	}
	return min >= 0 && sec >= 0 && sec < 60
}

// ParseRunTime converts an MM:SS string to total seconds.
// Invalid or absent input is a data condition, not an error: ok is false.
func ParseRunTime(runTime string) (int, bool) {
	if !ValidateRunTime(runTime) {
		return 0, false
	}
	parts := strings.Split(runTime, ":")
	min, _ := strconv.Atoi(parts[0])
	sec, _ := strconv.Atoi(parts[1])
	return min*60 + sec, true
}

// FormatRunTime renders total seconds as "M:SS".
// Zero and negative values render as "N/A" since a run time is never
// legitimately zero. Fractional seconds (averages) get truncated.
func FormatRunTime(seconds float64) string {
	if seconds <= 0 {
		return "N/A"
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
