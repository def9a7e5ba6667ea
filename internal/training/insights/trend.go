package insights

import (
	"fmt"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// recentWindow is the number of most recent sessions a trend compares
// against the all-time average.
const recentWindow = 5

// Trend quantifies how a player's recent sessions deviate from their
// all-time average. Change is the absolute deviation in percent with
// one decimal. IsImproving is nil when there is no deviation or not
// enough history, so "no change" renders distinctly from "got worse".
type Trend struct {
	Change      string `json:"change"`
	Arrow       string `json:"arrow"`
	IsImproving *bool  `json:"isImproving"`
}

func neutralTrend() Trend {
	return Trend{Change: "0.0", Arrow: "→"}
}

// RunTimeTrend compares the average run time of the last five sessions
// against the all-time average. Sessions must be chronologically sorted.
// Lower is better, so improving means the recent average got smaller.
func RunTimeTrend(sorted []training.Session) Trend {
	return trendOf(sorted, false, func(s training.Session) (float64, bool) {
		seconds, ok := ParseRunTime(s.RunTime)
		return float64(seconds), ok
	})
}

// JumpBalanceTrend compares the average per-session balance of the last
// five sessions against the all-time average. Higher is better.
func JumpBalanceTrend(sorted []training.Session) Trend {
	return trendOf(sorted, true, SessionBalance)
}

func trendOf(
	sorted []training.Session,
	higherIsBetter bool,
	metric func(training.Session) (float64, bool),
) Trend {
	if len(sorted) <= recentWindow {
		return neutralTrend()
	}

	allAvg, allOK := averageOf(sorted, metric)
	recentAvg, recentOK := averageOf(sorted[len(sorted)-recentWindow:], metric)
	if !allOK || !recentOK {
		return neutralTrend()
	}

	if recentAvg == allAvg {
		return neutralTrend()
	}

	change := recentAvg - allAvg
	if change < 0 {
		change = -change
	}
	change = change / allAvg * 100

	improving := recentAvg > allAvg
	if !higherIsBetter {
		improving = !improving
	}

	arrow := "↑"
	if recentAvg < allAvg {
		arrow = "↓"
	}

	return Trend{
		Change:      fmt.Sprintf("%.1f", change),
		Arrow:       arrow,
		IsImproving: &improving,
	}
}

func averageOf(
	sessions []training.Session,
	metric func(training.Session) (float64, bool),
) (float64, bool) {
	var sum float64
	var count int
	for _, s := range sessions {
		if value, ok := metric(s); ok {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
