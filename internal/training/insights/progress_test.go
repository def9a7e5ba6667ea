package insights_test

import (
	"testing"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyProgress_RunTime(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-01-05", RunTime: "08:00"},
		{Date: "2024-01-20", RunTime: "07:30"},
		{Date: "2024-02-10", RunTime: "07:15"},
		{Date: "2024-02-25"}, // no run time recorded
	}

	points := insights.MonthlyProgress(sessions, insights.ProgressRunTime)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01", points[0].Month)
	assert.Equal(t, "Jan 2024", points[0].Label)
	assert.Equal(t, 2, points[0].SessionCount)
	assert.InDelta(t, 465.0, points[0].Value, 0.001)
	assert.Equal(t, "7:45", points[0].Formatted)

	assert.Equal(t, "2024-02", points[1].Month)
	assert.Equal(t, 2, points[1].SessionCount)
	assert.InDelta(t, 435.0, points[1].Value, 0.001)
	assert.Equal(t, "7:15", points[1].Formatted)
}

func TestMonthlyProgress_MonthWithoutMetricData(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-01-05", RunTime: "08:00"},
		{Date: "2024-02-10"}, // February recorded nothing
	}

	points := insights.MonthlyProgress(sessions, insights.ProgressRunTime)
	require.Len(t, points, 2)
	assert.Equal(t, "N/A", points[1].Formatted)
	assert.Zero(t, points[1].Value)
}

func TestMonthlyProgress_JumpMetric(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-01-05", BroadJumps: training.BroadJumps{LeftSingle: 200}},
		{Date: "2024-01-20", BroadJumps: training.BroadJumps{LeftSingle: 210}},
	}

	points := insights.MonthlyProgress(sessions, "leftSingle")
	require.Len(t, points, 1)
	assert.Equal(t, "205 cm", points[0].Formatted)
}

func TestMonthlyProgress_Balance(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-03-01", BroadJumps: training.BroadJumps{LeftSingle: 180, RightSingle: 200}},
	}

	points := insights.MonthlyProgress(sessions, insights.ProgressBalance)
	require.Len(t, points, 1)
	assert.Equal(t, "90%", points[0].Formatted)
}

func TestMonthlyProgress_Sprint(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-03-01", Sprints: [6]float64{30, 28, 0, 0, 0, 0}},
		{Date: "2024-03-15", Sprints: [6]float64{26, 0, 0, 0, 0, 0}},
	}

	points := insights.MonthlyProgress(sessions, insights.ProgressSprint)
	require.Len(t, points, 1)
	// reps average across all recorded sets of the month, flattened
	assert.Equal(t, "28.0 reps", points[0].Formatted)
}

func TestMonthlyProgress_UnknownMetric(t *testing.T) {
	points := insights.MonthlyProgress([]training.Session{{Date: "2024-01-05"}}, "verticalHop")
	require.Len(t, points, 1)
	assert.Equal(t, "N/A", points[0].Formatted)
}
