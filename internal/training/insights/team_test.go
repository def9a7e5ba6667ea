package insights_test

import (
	"testing"
	"time"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
)

func TestTeamOverview(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	players := []training.Player{
		{ID: "p1", Name: "Mia"},
		{ID: "p2", Name: "Luka"},
		{ID: "p3", Name: "Iva"},
	}
	sessions := []training.Session{
		{PlayerID: "p1", Date: "2026-08-28", RunTime: "06:30"}, // recent, quality 150
		{PlayerID: "p1", Date: "2026-07-01", RunTime: "08:00"}, // quality 100
		{PlayerID: "p2", Date: "2026-08-25"},                   // recent, quality 0
	}

	stats := insights.TeamOverview(players, sessions, today)

	assert.Equal(t, 3, stats.TotalPlayers)
	assert.Equal(t, 2, stats.ActivePlayers)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.RecentSessions)
	// (150 + 100 + 0) / 3
	assert.Equal(t, 83, stats.AvgQuality)
}

func TestTeamOverview_Empty(t *testing.T) {
	stats := insights.TeamOverview(nil, nil, time.Now())
	assert.Zero(t, stats.TotalPlayers)
	assert.Zero(t, stats.ActivePlayers)
	assert.Zero(t, stats.AvgQuality)
}
