package insights_test

import (
	"testing"
	"time"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackParticipation(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	players := []training.Player{
		{ID: "p1", Name: "Mia"},
		{ID: "p2", Name: "Luka"},
		{ID: "p3", Name: "Iva"},
		{ID: "p4", Name: "Noa"},
	}
	sessions := []training.Session{
		{PlayerID: "p1", Date: "2026-08-20"}, // 10 days ago: active
		{PlayerID: "p1", Date: "2026-07-15"},
		{PlayerID: "p2", Date: "2026-07-01"}, // 60 days ago: needs check-in
		{PlayerID: "p3", Date: "2026-05-01"}, // about 4 months ago: inactive
		// p4 never trained
	}

	participation := insights.TrackParticipation(players, sessions, today)

	assert.Equal(t, 1, participation.Summary.Active)
	assert.Equal(t, 1, participation.Summary.NeedsCheckin)
	assert.Equal(t, 1, participation.Summary.Inactive)
	assert.Equal(t, 1, participation.Summary.Never)

	// players needing attention come first
	require.Len(t, participation.Players, 4)
	assert.Equal(t, insights.StatusNever, participation.Players[0].Status)
	assert.Equal(t, "Noa", participation.Players[0].PlayerName)
	assert.Nil(t, participation.Players[0].DaysSince)

	assert.Equal(t, insights.StatusInactive, participation.Players[1].Status)
	assert.Equal(t, insights.StatusNeedsCheckin, participation.Players[2].Status)
	assert.Equal(t, insights.StatusActive, participation.Players[3].Status)

	active := participation.Players[3]
	assert.Equal(t, "Mia", active.PlayerName)
	assert.Equal(t, "2026-08-20", active.LastSession)
	require.NotNil(t, active.DaysSince)
	assert.Equal(t, 10, *active.DaysSince)
	assert.Equal(t, 2, active.SessionCount)
	// both of Mia's sessions fall in the last 90 days
	assert.Equal(t, 2, active.RecentCount)
}

func TestTrackParticipation_BoundaryDays(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	players := []training.Player{
		{ID: "p1", Name: "A"},
		{ID: "p2", Name: "B"},
	}
	sessions := []training.Session{
		{PlayerID: "p1", Date: "2026-07-26"}, // exactly 35 days: still active
		{PlayerID: "p2", Date: "2026-06-26"}, // exactly 65 days: still needs check-in
	}

	participation := insights.TrackParticipation(players, sessions, today)
	byName := map[string]insights.PlayerParticipation{}
	for _, p := range participation.Players {
		byName[p.PlayerName] = p
	}
	assert.Equal(t, insights.StatusActive, byName["A"].Status)
	assert.Equal(t, insights.StatusNeedsCheckin, byName["B"].Status)
}

func TestTrackParticipation_NoPlayers(t *testing.T) {
	participation := insights.TrackParticipation(nil, nil, time.Now())
	assert.Empty(t, participation.Players)
	assert.Zero(t, participation.Summary.Active)
}
