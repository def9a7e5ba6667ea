package insights

import (
	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

const chartWindow = 10

// RunTimePoint is one plottable endurance run result.
type RunTimePoint struct {
	Date    string `json:"date"`
	Seconds int    `json:"seconds"`
}

// SprintPoint plots the first and last recorded sprint set of a session.
type SprintPoint struct {
	Date  string  `json:"date"`
	First float64 `json:"first"`
	Last  float64 `json:"last"`
}

// JumpPoint plots the recorded jumps of one family (single or triple).
type JumpPoint struct {
	Date   string  `json:"date"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Double float64 `json:"double"`
}

// ChartData holds up to four independent series over the last ten
// sessions. Each series only contains sessions where its metric was
// actually recorded, so a session missing sprint data still shows up
// in the run-time series.
type ChartData struct {
	RunTimes    []RunTimePoint `json:"runTimes"`
	Sprints     []SprintPoint  `json:"sprints"`
	SingleJumps []JumpPoint    `json:"singleJumps"`
	TripleJumps []JumpPoint    `json:"tripleJumps"`
}

// BuildChartData projects the chronological tail of a player's history
// into plottable series. The input is never mutated.
func BuildChartData(sessions []training.Session) ChartData {
	sorted := sortSessions(sessions)
	if len(sorted) > chartWindow {
		sorted = sorted[len(sorted)-chartWindow:]
	}

	data := ChartData{
		RunTimes:    []RunTimePoint{},
		Sprints:     []SprintPoint{},
		SingleJumps: []JumpPoint{},
		TripleJumps: []JumpPoint{},
	}

	for _, s := range sorted {
		label := FormatDate(s.Date)

		if seconds, ok := ParseRunTime(s.RunTime); ok {
			data.RunTimes = append(data.RunTimes, RunTimePoint{Date: label, Seconds: seconds})
		}

		if sprints := s.NonZeroSprints(); len(sprints) >= 2 {
			data.Sprints = append(data.Sprints, SprintPoint{
				Date:  label,
				First: sprints[0],
				Last:  sprints[len(sprints)-1],
			})
		}

		bj := s.BroadJumps
		if bj.LeftSingle > 0 || bj.RightSingle > 0 || bj.DoubleSingle > 0 {
			data.SingleJumps = append(data.SingleJumps, JumpPoint{
				Date:   label,
				Left:   bj.LeftSingle,
				Right:  bj.RightSingle,
				Double: bj.DoubleSingle,
			})
		}
		if bj.LeftTriple > 0 || bj.RightTriple > 0 || bj.DoubleTriple > 0 {
			data.TripleJumps = append(data.TripleJumps, JumpPoint{
				Date:   label,
				Left:   bj.LeftTriple,
				Right:  bj.RightTriple,
				Double: bj.DoubleTriple,
			})
		}
	}

	return data
}
