package insights

import (
	"math"
	"time"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// TeamStats is the coach's aggregate view over the whole squad.
type TeamStats struct {
	TotalPlayers   int `json:"totalPlayers"`
	ActivePlayers  int `json:"activePlayers"`
	TotalSessions  int `json:"totalSessions"`
	RecentSessions int `json:"recentSessions"` // last 7 days
	AvgQuality     int `json:"avgQuality"`
}

// TeamOverview summarizes all players and sessions relative to the
// supplied "today". Active players are those with at least one session
// ever recorded.
func TeamOverview(
	players []training.Player,
	sessions []training.Session,
	today time.Time,
) TeamStats {
	activePlayers := map[string]bool{}
	for _, s := range sessions {
		activePlayers[s.PlayerID] = true
	}

	sevenDaysAgo := today.AddDate(0, 0, -7)
	recentSessions := 0
	for _, s := range sessions {
		if date, ok := ParseLocalDate(s.Date); ok && !date.Before(sevenDaysAgo) {
			recentSessions++
		}
	}

	avgQuality := 0
	if len(sessions) > 0 {
		var qualitySum int
		for _, s := range sessions {
			qualitySum += CalculateSessionQuality(s).Score
		}
		avgQuality = int(math.Round(float64(qualitySum) / float64(len(sessions))))
	}

	return TeamStats{
		TotalPlayers:   len(players),
		ActivePlayers:  len(activePlayers),
		TotalSessions:  len(sessions),
		RecentSessions: recentSessions,
		AvgQuality:     avgQuality,
	}
}
