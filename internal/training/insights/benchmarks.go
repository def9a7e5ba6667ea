package insights

// Benchmark tier levels and their display colors.
const (
	LevelElite     = "Elite"
	LevelGood      = "Good"
	LevelAverage   = "Average"
	LevelNeedsWork = "Needs Work"
	LevelUnknown   = "Unknown"

	colorElite     = "#10b981"
	colorGood      = "#3b82f6"
	colorAverage   = "#f59e0b"
	colorNeedsWork = "#ef4444"
	colorNeutral   = "#6b7280"
)

// Classification is a benchmark tier assignment for one metric value.
type Classification struct {
	Level string `json:"level"`
	Color string `json:"color"`
}

// Benchmark metric names.
const (
	MetricRunTime     = "runTime"
	MetricBroadJump   = "broadJump"
	MetricSprint      = "sprint"
	MetricJumpBalance = "jumpBalance"
	MetricFatigue     = "fatigue"
)

type benchmark struct {
	elite   float64
	good    float64
	average float64
}

// Fixed reference thresholds per metric. For runTime the thresholds are
// upper bounds (lower is better), for everything else lower bounds.
var benchmarks = map[string]benchmark{
	MetricRunTime:     {elite: 420, good: 450, average: 480},
	MetricBroadJump:   {elite: 260, good: 240, average: 220},
	MetricSprint:      {elite: 32, good: 28, average: 24},
	MetricJumpBalance: {elite: 95, good: 90, average: 85},
	MetricFatigue:     {elite: -5, good: -10, average: -15},
}

// ClassifyPerformance assigns a benchmark tier to a metric value.
// An unknown metric name classifies as Unknown rather than failing,
// so new metric keys keep the result renderable.
func ClassifyPerformance(value float64, metric string, lowerIsBetter bool) Classification {
	b, ok := benchmarks[metric]
	if !ok {
		return Classification{Level: LevelUnknown, Color: colorNeutral}
	}

	if lowerIsBetter {
		switch {
		case value <= b.elite:
			return Classification{Level: LevelElite, Color: colorElite}
		case value <= b.good:
			return Classification{Level: LevelGood, Color: colorGood}
		case value <= b.average:
			return Classification{Level: LevelAverage, Color: colorAverage}
		default:
			return Classification{Level: LevelNeedsWork, Color: colorNeedsWork}
		}
	}

	switch {
	case value >= b.elite:
		return Classification{Level: LevelElite, Color: colorElite}
	case value >= b.good:
		return Classification{Level: LevelGood, Color: colorGood}
	case value >= b.average:
		return Classification{Level: LevelAverage, Color: colorAverage}
	default:
		return Classification{Level: LevelNeedsWork, Color: colorNeedsWork}
	}
}

func unknownClassification() Classification {
	return Classification{Level: LevelUnknown, Color: colorNeutral}
}
