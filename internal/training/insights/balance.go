package insights

import (
	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// SessionBalance returns a single session's left/right balance
// percentage (min over max of the single-leg jumps). It requires both
// legs recorded; ok is false otherwise.
func SessionBalance(s training.Session) (float64, bool) {
	left := s.BroadJumps.LeftSingle
	right := s.BroadJumps.RightSingle
	if left <= 0 || right <= 0 {
		return 0, false
	}
	return ratioPercent(left, right), true
}

// AggregateBalance returns the balance percentage computed from the
// average left and average right single-leg jumps across all sessions
// where that leg was recorded. This is deliberately not an average of
// per-session ratios.
func AggregateBalance(sessions []training.Session) (float64, bool) {
	var leftSum, rightSum float64
	var leftCount, rightCount int
	for _, s := range sessions {
		if s.BroadJumps.LeftSingle > 0 {
			leftSum += s.BroadJumps.LeftSingle
			leftCount++
		}
		if s.BroadJumps.RightSingle > 0 {
			rightSum += s.BroadJumps.RightSingle
			rightCount++
		}
	}
	if leftCount == 0 || rightCount == 0 {
		return 0, false
	}
	avgLeft := leftSum / float64(leftCount)
	avgRight := rightSum / float64(rightCount)
	return ratioPercent(avgLeft, avgRight), true
}

func ratioPercent(a, b float64) float64 {
	if a < b {
		return a / b * 100
	}
	return b / a * 100
}
