package insights

import (
	"fmt"
	"math"
	"sort"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// Insights is the full derived view of one player's session history.
// It is recomputed from scratch on every call and never persisted.
type Insights struct {
	TotalSessions int `json:"totalSessions"`

	AvgRunTime        string  `json:"avgRunTime"`
	AvgRunTimeSeconds float64 `json:"avgRunTimeSeconds"`

	// JumpBalance and FatigueDropoff are display strings ("92%"),
	// "N/A" when never recorded.
	JumpBalance    string `json:"jumpBalance"`
	FatigueDropoff string `json:"fatigueDropoff"`

	RunTimeTrend     Trend `json:"runTimeTrend"`
	JumpBalanceTrend Trend `json:"jumpBalanceTrend"`

	PersonalBests PersonalBests `json:"personalBests"`

	RunTimeBenchmark Classification `json:"runTimeBenchmark"`
	JumpBenchmark    Classification `json:"jumpBenchmark"`
	BalanceBenchmark Classification `json:"balanceBenchmark"`

	FatigueMetrics FatigueMetrics `json:"fatigueMetrics"`

	AvgQualityScore int    `json:"avgQualityScore"`
	QualityRating   string `json:"qualityRating"`
}

// CalculateInsights derives all metric families from a single player's
// session list. The caller is responsible for filtering to one player;
// the input is never mutated. Missing data degrades to N/A values and
// neutral trends, never to an error.
func CalculateInsights(sessions []training.Session) Insights {
	if len(sessions) == 0 {
		return Insights{
			AvgRunTime:       "N/A",
			JumpBalance:      "N/A",
			FatigueDropoff:   "N/A",
			RunTimeTrend:     neutralTrend(),
			JumpBalanceTrend: neutralTrend(),
			RunTimeBenchmark: unknownClassification(),
			JumpBenchmark:    unknownClassification(),
			BalanceBenchmark: unknownClassification(),
			FatigueMetrics:   AnalyzeFatigue(nil),
			QualityRating:    "N/A",
		}
	}

	sorted := sortSessions(sessions)

	result := Insights{
		TotalSessions:    len(sorted),
		AvgRunTime:       "N/A",
		JumpBalance:      "N/A",
		FatigueDropoff:   "N/A",
		RunTimeTrend:     RunTimeTrend(sorted),
		JumpBalanceTrend: JumpBalanceTrend(sorted),
		PersonalBests:    GetPersonalBests(sorted),
		RunTimeBenchmark: unknownClassification(),
		JumpBenchmark:    unknownClassification(),
		BalanceBenchmark: unknownClassification(),
		FatigueMetrics:   AnalyzeFatigue(sorted),
	}

	if avgSeconds, ok := averageOf(sorted, func(s training.Session) (float64, bool) {
		seconds, ok := ParseRunTime(s.RunTime)
		return float64(seconds), ok
	}); ok {
		result.AvgRunTimeSeconds = avgSeconds
		result.AvgRunTime = FormatRunTime(avgSeconds)
		result.RunTimeBenchmark = ClassifyPerformance(avgSeconds, MetricRunTime, true)
	}

	if balance, ok := AggregateBalance(sorted); ok {
		result.JumpBalance = fmt.Sprintf("%d%%", int(math.Round(balance)))
		result.BalanceBenchmark = ClassifyPerformance(balance, MetricJumpBalance, false)
	}

	if avgJump, ok := averageOf(sorted, func(s training.Session) (float64, bool) {
		return averageSingleJump(s.BroadJumps)
	}); ok {
		result.JumpBenchmark = ClassifyPerformance(avgJump, MetricBroadJump, false)
	}

	if hasFatigueData(result.FatigueMetrics) {
		result.FatigueDropoff = fmt.Sprintf("%d%%", int(math.Round(result.FatigueMetrics.AvgDropoff)))
	}

	var qualitySum int
	for _, s := range sorted {
		qualitySum += CalculateSessionQuality(s).Score
	}
	result.AvgQualityScore = int(math.Round(float64(qualitySum) / float64(len(sorted))))
	result.QualityRating = qualityRating(result.AvgQualityScore)

	return result
}

func hasFatigueData(m FatigueMetrics) bool {
	return m.FatigueResistance != "N/A"
}

// sortSessions returns a chronologically ascending copy.
// The input slice is left untouched.
func sortSessions(sessions []training.Session) []training.Session {
	sorted := make([]training.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareDates(sorted[i].Date, sorted[j].Date) < 0
	})
	return sorted
}

func sortMatrixSessions(sessions []training.MatrixSession) []training.MatrixSession {
	sorted := make([]training.MatrixSession, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareDates(sorted[i].Date, sorted[j].Date) < 0
	})
	return sorted
}
