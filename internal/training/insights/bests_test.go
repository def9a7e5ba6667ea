package insights_test

import (
	"testing"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPersonalBests(t *testing.T) {
	sessions := []training.Session{
		{
			Date:    "2024-01-01",
			RunTime: "08:00",
			BroadJumps: training.BroadJumps{
				LeftSingle: 210, RightSingle: 200, LeftTriple: 610,
			},
			Sprints: [6]float64{10, 10, 10, 10, 10, 8},
		},
		{
			Date:    "2024-01-08",
			RunTime: "07:30",
			BroadJumps: training.BroadJumps{
				LeftSingle: 205, RightSingle: 215, DoubleSingle: 230,
			},
			Sprints: [6]float64{12, 11, 10, 10, 9, 9},
		},
		{
			Date:    "2024-01-15",
			RunTime: "07:45",
			Sprints: [6]float64{11, 10, 10, 9, 9, 8},
		},
	}

	bests := insights.GetPersonalBests(sessions)

	require.NotNil(t, bests.BestRunTime)
	assert.Equal(t, 450, bests.BestRunTime.Time)
	assert.Equal(t, "7:30", bests.BestRunTime.TimeStr)
	assert.Equal(t, "2024-01-08", bests.BestRunTime.Date)

	require.NotNil(t, bests.BestLeftJump)
	assert.Equal(t, float64(210), bests.BestLeftJump.Value)
	assert.Equal(t, "2024-01-01", bests.BestLeftJump.Date)

	require.NotNil(t, bests.BestRightJump)
	assert.Equal(t, float64(215), bests.BestRightJump.Value)
	assert.Equal(t, "2024-01-08", bests.BestRightJump.Date)

	require.NotNil(t, bests.BestDoubleJump)
	assert.Equal(t, float64(230), bests.BestDoubleJump.Value)

	require.NotNil(t, bests.BestLeftTriple)
	assert.Equal(t, float64(610), bests.BestLeftTriple.Value)

	// never recorded
	assert.Nil(t, bests.BestRightTriple)
	assert.Nil(t, bests.BestDoubleTriple)

	// best sprint is the single best-ever set, flattened across sessions
	require.NotNil(t, bests.BestSprint)
	assert.Equal(t, float64(12), bests.BestSprint.Value)
	assert.Equal(t, "2024-01-08", bests.BestSprint.Date)
}

func TestGetPersonalBests_TiesGoToFirstOccurrence(t *testing.T) {
	sessions := []training.Session{
		// deliberately out of order: the extractor sorts chronologically first
		{Date: "2024-02-01", RunTime: "07:30"},
		{Date: "2024-01-01", RunTime: "07:30"},
	}

	bests := insights.GetPersonalBests(sessions)
	require.NotNil(t, bests.BestRunTime)
	assert.Equal(t, "2024-01-01", bests.BestRunTime.Date)
}

func TestGetPersonalBests_ZeroNeverCounts(t *testing.T) {
	sessions := []training.Session{
		{Date: "2024-01-01", BroadJumps: training.BroadJumps{LeftSingle: 0}},
		{Date: "2024-01-08", BroadJumps: training.BroadJumps{LeftSingle: 0}},
	}

	bests := insights.GetPersonalBests(sessions)
	assert.Nil(t, bests.BestLeftJump)
	assert.Nil(t, bests.BestRunTime)
	assert.Nil(t, bests.BestSprint)
}
