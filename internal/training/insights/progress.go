package insights

import (
	"fmt"
	"math"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// MonthlyMetricPoint is one month's average for a single progress metric.
type MonthlyMetricPoint struct {
	Month        string  `json:"month"` // YYYY-MM
	Label        string  `json:"label"` // e.g. "Jan 2026"
	Value        float64 `json:"value"`
	Formatted    string  `json:"formatted"`
	SessionCount int     `json:"sessionCount"`
}

// Progress metric keys accepted by MonthlyProgress, besides the six
// jump type keys.
const (
	ProgressRunTime = "runTime"
	ProgressSprint  = "sprint"
	ProgressBalance = "balance"
)

// MonthlyProgress groups a player's sessions by calendar month and
// averages one metric per month, chronologically ascending. Months
// where the metric was never recorded keep a zero value and an "N/A"
// formatted label.
func MonthlyProgress(sessions []training.Session, metric string) []MonthlyMetricPoint {
	sorted := sortSessions(sessions)

	var points []MonthlyMetricPoint
	monthIndex := map[string]int{}
	for _, s := range sorted {
		date, ok := ParseLocalDate(s.Date)
		if !ok {
			continue
		}
		monthKey := fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
		idx, seen := monthIndex[monthKey]
		if !seen {
			idx = len(points)
			monthIndex[monthKey] = idx
			points = append(points, MonthlyMetricPoint{
				Month: monthKey,
				Label: fmt.Sprintf("%s %d", date.Format("Jan"), date.Year()),
			})
		}
		points[idx].SessionCount++
	}

	monthSessions := map[string][]training.Session{}
	for _, s := range sorted {
		date, ok := ParseLocalDate(s.Date)
		if !ok {
			continue
		}
		monthKey := fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
		monthSessions[monthKey] = append(monthSessions[monthKey], s)
	}

	for i := range points {
		value, formatted := monthlyMetric(monthSessions[points[i].Month], metric)
		points[i].Value = value
		points[i].Formatted = formatted
	}

	return points
}

func monthlyMetric(sessions []training.Session, metric string) (float64, string) {
	switch metric {
	case ProgressRunTime:
		avg, ok := averageOf(sessions, func(s training.Session) (float64, bool) {
			seconds, ok := ParseRunTime(s.RunTime)
			return float64(seconds), ok
		})
		if !ok {
			return 0, "N/A"
		}
		return avg, FormatRunTime(avg)

	case ProgressSprint:
		var sum float64
		var count int
		for _, s := range sessions {
			for _, reps := range s.NonZeroSprints() {
				sum += reps
				count++
			}
		}
		if count == 0 {
			return 0, "N/A"
		}
		avg := sum / float64(count)
		return avg, fmt.Sprintf("%.1f reps", avg)

	case ProgressBalance:
		avg, ok := averageOf(sessions, SessionBalance)
		if !ok {
			return 0, "N/A"
		}
		return avg, fmt.Sprintf("%d%%", int(math.Round(avg)))
	}

	jumpType := training.JumpType(metric)
	for _, known := range training.JumpTypes {
		if jumpType == known {
			avg, ok := averageOf(sessions, func(s training.Session) (float64, bool) {
				value := s.BroadJumps.Value(jumpType)
				return value, value > 0
			})
			if !ok {
				return 0, "N/A"
			}
			return avg, fmt.Sprintf("%d cm", int(math.Round(avg)))
		}
	}

	return 0, "N/A"
}
