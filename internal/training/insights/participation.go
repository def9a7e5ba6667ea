package insights

import (
	"sort"
	"time"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// Participation status thresholds, tuned for a monthly testing cadence
// with a few days of buffer.
const (
	activeMaxDays       = 35
	needsCheckinMaxDays = 65
	recentWindowDays    = 90
)

type ParticipationStatus string

const (
	StatusActive       ParticipationStatus = "active"
	StatusNeedsCheckin ParticipationStatus = "needs-checkin"
	StatusInactive     ParticipationStatus = "inactive"
	StatusNever        ParticipationStatus = "never"
)

// PlayerParticipation is one player's testing cadence state.
type PlayerParticipation struct {
	PlayerID     string              `json:"playerId"`
	PlayerName   string              `json:"player"`
	Status       ParticipationStatus `json:"status"`
	LastSession  string              `json:"lastSession,omitempty"`
	DaysSince    *int                `json:"daysSince"`
	SessionCount int                 `json:"sessionCount"`
	RecentCount  int                 `json:"recentCount"`
}

type ParticipationSummary struct {
	Active       int `json:"active"`
	NeedsCheckin int `json:"needsCheckin"`
	Inactive     int `json:"inactive"`
	Never        int `json:"never"`
}

type Participation struct {
	Players []PlayerParticipation `json:"players"`
	Summary ParticipationSummary  `json:"summary"`
}

var participationOrder = map[ParticipationStatus]int{
	StatusNever:        0,
	StatusInactive:     1,
	StatusNeedsCheckin: 2,
	StatusActive:       3,
}

// TrackParticipation derives every player's participation status
// relative to the supplied "today". Players needing attention sort
// first: never trained, then inactive, then needs-checkin, then active,
// with longer absences first within each group.
func TrackParticipation(
	players []training.Player,
	sessions []training.Session,
	today time.Time,
) Participation {
	result := Participation{
		Players: make([]PlayerParticipation, 0, len(players)),
	}

	for _, player := range players {
		playerSessions := make([]training.Session, 0)
		for _, s := range sessions {
			if s.PlayerID == player.ID {
				playerSessions = append(playerSessions, s)
			}
		}

		if len(playerSessions) == 0 {
			result.Players = append(result.Players, PlayerParticipation{
				PlayerID:   player.ID,
				PlayerName: player.Name,
				Status:     StatusNever,
			})
			result.Summary.Never++
			continue
		}

		sorted := sortSessions(playerSessions)
		lastSession := sorted[len(sorted)-1]

		daysSince := 0
		if lastDate, ok := ParseLocalDate(lastSession.Date); ok {
			daysSince = int(today.Sub(lastDate).Hours() / 24)
		}

		var status ParticipationStatus
		switch {
		case daysSince <= activeMaxDays:
			status = StatusActive
			result.Summary.Active++
		case daysSince <= needsCheckinMaxDays:
			status = StatusNeedsCheckin
			result.Summary.NeedsCheckin++
		default:
			status = StatusInactive
			result.Summary.Inactive++
		}

		recentCutoff := today.AddDate(0, 0, -recentWindowDays)
		recentCount := 0
		for _, s := range sorted {
			if date, ok := ParseLocalDate(s.Date); ok && !date.Before(recentCutoff) {
				recentCount++
			}
		}

		days := daysSince
		result.Players = append(result.Players, PlayerParticipation{
			PlayerID:     player.ID,
			PlayerName:   player.Name,
			Status:       status,
			LastSession:  lastSession.Date,
			DaysSince:    &days,
			SessionCount: len(sorted),
			RecentCount:  recentCount,
		})
	}

	sort.SliceStable(result.Players, func(i, j int) bool {
		a, b := result.Players[i], result.Players[j]
		if a.Status != b.Status {
			return participationOrder[a.Status] < participationOrder[b.Status]
		}
		if a.DaysSince == nil {
			return true
		}
		if b.DaysSince == nil {
			return false
		}
		return *a.DaysSince > *b.DaysSince
	})

	return result
}
