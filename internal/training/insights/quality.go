package insights

import (
	"math"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// QualityScore is a composite score for one session, built from up to
// five independently gated components. Only components with recorded
// data participate.
type QualityScore struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"`
}

// Raw component points per benchmark tier. Run time and jumps carry
// extra weight on purpose: the denominator stays at 20 points per
// present component, which can push a top-tier score past 100. That is
// the historical scoring behavior and changing it would break score
// comparability across old sessions.
var (
	runTimePoints = map[string]float64{LevelElite: 30, LevelGood: 25, LevelAverage: 20, LevelNeedsWork: 15}
	jumpPoints    = map[string]float64{LevelElite: 30, LevelGood: 25, LevelAverage: 20, LevelNeedsWork: 15}
	sprintPoints  = map[string]float64{LevelElite: 20, LevelGood: 17, LevelAverage: 14, LevelNeedsWork: 10}
	balancePoints = map[string]float64{LevelElite: 10, LevelGood: 8, LevelAverage: 6, LevelNeedsWork: 4}
	fatiguePoints = map[string]float64{LevelElite: 10, LevelGood: 8, LevelAverage: 6, LevelNeedsWork: 4}
)

// CalculateSessionQuality scores one session. A session with no
// recorded metrics scores 0.
func CalculateSessionQuality(s training.Session) QualityScore {
	var sum float64
	var components int

	if seconds, ok := ParseRunTime(s.RunTime); ok {
		level := ClassifyPerformance(float64(seconds), MetricRunTime, true).Level
		sum += runTimePoints[level]
		components++
	}

	if avgJump, ok := averageSingleJump(s.BroadJumps); ok {
		level := ClassifyPerformance(avgJump, MetricBroadJump, false).Level
		sum += jumpPoints[level]
		components++
	}

	if sprints := s.NonZeroSprints(); len(sprints) > 0 {
		var sprintSum float64
		for _, reps := range sprints {
			sprintSum += reps
		}
		level := ClassifyPerformance(sprintSum/float64(len(sprints)), MetricSprint, false).Level
		sum += sprintPoints[level]
		components++
	}

	if balance, ok := SessionBalance(s); ok {
		level := ClassifyPerformance(balance, MetricJumpBalance, false).Level
		sum += balancePoints[level]
		components++
	}

	if fatigue, ok := AnalyzeSessionFatigue(s); ok {
		level := ClassifyPerformance(fatigue.Dropoff, MetricFatigue, false).Level
		sum += fatiguePoints[level]
		components++
	}

	if components == 0 {
		return QualityScore{Score: 0, Rating: qualityRating(0)}
	}

	score := int(math.Round(sum / float64(components*20) * 100))
	return QualityScore{Score: score, Rating: qualityRating(score)}
}

// averageSingleJump averages the recorded single-leg and double-single
// jumps of one session.
func averageSingleJump(bj training.BroadJumps) (float64, bool) {
	var sum float64
	var count int
	for _, jump := range []float64{bj.LeftSingle, bj.RightSingle, bj.DoubleSingle} {
		if jump > 0 {
			sum += jump
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func qualityRating(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 55:
		return "Average"
	default:
		return "Below Average"
	}
}
