package insights

import (
	"math"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// SessionFatigue is a single session's sprint-set fatigue profile,
// computed over the recorded (non-zero) sets in order.
type SessionFatigue struct {
	// Dropoff is the percentage change from the first to the last
	// recorded set. Negative means the player slowed down.
	Dropoff float64 `json:"dropoff"`
	// Consistency is min/max of the recorded sets, in percent.
	Consistency float64 `json:"consistency"`
	// PeakPosition is the 1-based position of the strongest set
	// within the recorded sequence.
	PeakPosition int `json:"peakPosition"`
}

// AnalyzeSessionFatigue profiles one session's sprint sets. It needs at
// least two recorded sets; ok is false otherwise.
func AnalyzeSessionFatigue(s training.Session) (SessionFatigue, bool) {
	sprints := s.NonZeroSprints()
	if len(sprints) < 2 {
		return SessionFatigue{}, false
	}

	first := sprints[0]
	last := sprints[len(sprints)-1]

	min, max := sprints[0], sprints[0]
	peakPosition := 1
	for i, reps := range sprints {
		if reps > max {
			max = reps
			peakPosition = i + 1
		}
		if reps < min {
			min = reps
		}
	}

	return SessionFatigue{
		Dropoff:      (last - first) / first * 100,
		Consistency:  min / max * 100,
		PeakPosition: peakPosition,
	}, true
}

// FatigueMetrics aggregates sprint fatigue across a player's sessions.
type FatigueMetrics struct {
	FatigueResistance string         `json:"fatigueResistance"`
	AvgDropoff        float64        `json:"avgDropoff"`
	AvgConsistency    float64        `json:"avgConsistency"`
	PeakTiming        float64        `json:"peakTiming"`
	Classification    Classification `json:"classification"`
	Recommendation    string         `json:"recommendation"`
}

const fatigueNoDataRecommendation = "Record at least two sprint sets in a session to unlock fatigue analysis."

var fatigueRecommendations = map[string]string{
	LevelElite:     "Outstanding fatigue resistance. Maintain the current conditioning load.",
	LevelGood:      "Good fatigue resistance. Add one extra interval block per week to push toward elite.",
	LevelAverage:   "Noticeable dropoff across sets. Focus on repeat-sprint conditioning and recovery quality.",
	LevelNeedsWork: "High dropoff across sets. Reduce volume and rebuild the aerobic base before returning to max intensity work.",
}

// AnalyzeFatigue averages the per-session fatigue profiles of all
// qualifying sessions and classifies the average dropoff. When no
// session qualifies it returns a renderable N/A sentinel instead of
// failing.
func AnalyzeFatigue(sessions []training.Session) FatigueMetrics {
	var dropoffSum, consistencySum, peakSum float64
	var count int
	for _, s := range sessions {
		fatigue, ok := AnalyzeSessionFatigue(s)
		if !ok {
			continue
		}
		dropoffSum += fatigue.Dropoff
		consistencySum += fatigue.Consistency
		peakSum += float64(fatigue.PeakPosition)
		count++
	}

	if count == 0 {
		return FatigueMetrics{
			FatigueResistance: "N/A",
			Classification:    unknownClassification(),
			Recommendation:    fatigueNoDataRecommendation,
		}
	}

	avgDropoff := dropoffSum / float64(count)
	classification := ClassifyPerformance(avgDropoff, MetricFatigue, false)

	return FatigueMetrics{
		FatigueResistance: classification.Level,
		AvgDropoff:        round1(avgDropoff),
		AvgConsistency:    round1(consistencySum / float64(count)),
		PeakTiming:        round1(peakSum / float64(count)),
		Classification:    classification,
		Recommendation:    fatigueRecommendations[classification.Level],
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
