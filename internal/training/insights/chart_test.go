package insights_test

import (
	"fmt"
	"testing"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChartData(t *testing.T) {
	sessions := []training.Session{
		{
			Date:    "2024-01-01",
			RunTime: "08:00",
			Sprints: [6]float64{0, 0, 12, 10, 9, 7},
			BroadJumps: training.BroadJumps{
				LeftSingle: 200, RightSingle: 190,
				LeftTriple: 600, RightTriple: 590,
			},
		},
		{
			// run time only: still contributes its run-time point
			Date:    "2024-01-08",
			RunTime: "07:30",
		},
		{
			// sprints only
			Date:    "2024-01-15",
			Sprints: [6]float64{11, 10, 10, 9, 9, 8},
		},
	}

	data := insights.BuildChartData(sessions)

	require.Len(t, data.RunTimes, 2)
	assert.Equal(t, "Jan 1", data.RunTimes[0].Date)
	assert.Equal(t, 480, data.RunTimes[0].Seconds)
	assert.Equal(t, "Jan 8", data.RunTimes[1].Date)
	assert.Equal(t, 450, data.RunTimes[1].Seconds)

	require.Len(t, data.Sprints, 2)
	// first/last recorded set, zeros skipped
	assert.Equal(t, float64(12), data.Sprints[0].First)
	assert.Equal(t, float64(7), data.Sprints[0].Last)
	assert.Equal(t, float64(11), data.Sprints[1].First)
	assert.Equal(t, float64(8), data.Sprints[1].Last)

	require.Len(t, data.SingleJumps, 1)
	assert.Equal(t, float64(200), data.SingleJumps[0].Left)
	assert.Equal(t, float64(190), data.SingleJumps[0].Right)
	assert.Zero(t, data.SingleJumps[0].Double)

	require.Len(t, data.TripleJumps, 1)
	assert.Equal(t, float64(600), data.TripleJumps[0].Left)
}

func TestBuildChartData_LastTenOnly(t *testing.T) {
	sessions := make([]training.Session, 0, 14)
	for i := 1; i <= 14; i++ {
		sessions = append(sessions, training.Session{
			Date:    fmt.Sprintf("2024-01-%02d", i),
			RunTime: "07:30",
		})
	}

	data := insights.BuildChartData(sessions)
	require.Len(t, data.RunTimes, 10)
	// chronological tail: sessions 5 through 14
	assert.Equal(t, "Jan 5", data.RunTimes[0].Date)
	assert.Equal(t, "Jan 14", data.RunTimes[9].Date)
}

func TestBuildChartData_Empty(t *testing.T) {
	data := insights.BuildChartData(nil)
	assert.Empty(t, data.RunTimes)
	assert.Empty(t, data.Sprints)
	assert.Empty(t, data.SingleJumps)
	assert.Empty(t, data.TripleJumps)
}
