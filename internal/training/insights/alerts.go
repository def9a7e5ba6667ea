package insights

import (
	"fmt"
	"sort"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

type AlertType string

const (
	AlertRegression   AlertType = "regression"
	AlertBreakthrough AlertType = "breakthrough"
	AlertImbalance    AlertType = "imbalance"
	AlertFatigue      AlertType = "fatigue"
)

type AlertSeverity string

const (
	SeverityUrgent    AlertSeverity = "urgent"
	SeverityAttention AlertSeverity = "attention"
	SeverityPositive  AlertSeverity = "positive"
)

// Alert flags a notable change in a player's recent results:
// regressions, new personal bests, leg imbalance, high fatigue.
type Alert struct {
	Type     AlertType     `json:"type"`
	Severity AlertSeverity `json:"severity"`
	Player   string        `json:"player"`
	PlayerID string        `json:"playerId"`
	Metric   string        `json:"metric"`
	Message  string        `json:"message"`
	Date     string        `json:"date"`
}

// Alert thresholds. Regression and fatigue get an urgent tier when the
// change roughly doubles the attention threshold.
const (
	runRegressionPct       = 5
	runRegressionUrgentPct = 10

	imbalanceBalancePct       = 85
	imbalanceUrgentBalancePct = 75

	fatigueDropoffPct       = -25
	fatigueUrgentDropoffPct = -35

	matrixRegressionPct       = -10
	matrixRegressionUrgentPct = -20
	matrixOverallPct          = 15
)

var severityOrder = map[AlertSeverity]int{
	SeverityUrgent:    0,
	SeverityAttention: 1,
	SeverityPositive:  2,
}

// BuildAlerts scans every player's two most recent sessions (and matrix
// sessions) for regressions, breakthroughs, imbalance and fatigue.
// Alerts sort urgent first, newest first within a severity.
func BuildAlerts(
	players []training.Player,
	sessions []training.Session,
	matrixSessions []training.MatrixSession,
) []Alert {
	alerts := []Alert{}

	for _, player := range players {
		playerSessions := make([]training.Session, 0)
		for _, s := range sessions {
			if s.PlayerID == player.ID {
				playerSessions = append(playerSessions, s)
			}
		}
		alerts = append(alerts, sessionAlerts(player, sortSessions(playerSessions))...)

		playerMatrix := make([]training.MatrixSession, 0)
		for _, m := range matrixSessions {
			if m.PlayerID == player.ID {
				playerMatrix = append(playerMatrix, m)
			}
		}
		alerts = append(alerts, matrixAlerts(player, sortMatrixSessions(playerMatrix))...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return severityOrder[alerts[i].Severity] < severityOrder[alerts[j].Severity]
		}
		return CompareDates(alerts[i].Date, alerts[j].Date) > 0
	})

	return alerts
}

func sessionAlerts(player training.Player, sorted []training.Session) []Alert {
	if len(sorted) < 2 {
		return nil
	}

	var alerts []Alert
	previous := sorted[len(sorted)-2]
	latest := sorted[len(sorted)-1]

	// run time regression: latest vs previous session
	if latestTime, okLatest := ParseRunTime(latest.RunTime); okLatest {
		if prevTime, okPrev := ParseRunTime(previous.RunTime); okPrev {
			change := float64(latestTime-prevTime) / float64(prevTime) * 100
			if change > runRegressionPct {
				severity := SeverityAttention
				if change > runRegressionUrgentPct {
					severity = SeverityUrgent
				}
				alerts = append(alerts, Alert{
					Type:     AlertRegression,
					Severity: severity,
					Player:   player.Name,
					PlayerID: player.ID,
					Metric:   "2km Run Time",
					Message: fmt.Sprintf(
						"Run time increased by %.1f%% (%s → %s)",
						change,
						FormatRunTime(float64(prevTime)),
						FormatRunTime(float64(latestTime)),
					),
					Date: latest.Date,
				})
			}
		}
	}

	// run time breakthrough: latest beats every earlier time
	allRunTimes := make([]int, 0, len(sorted))
	for _, s := range sorted {
		if seconds, ok := ParseRunTime(s.RunTime); ok {
			allRunTimes = append(allRunTimes, seconds)
		}
	}
	if len(allRunTimes) >= 2 {
		latestTime := allRunTimes[len(allRunTimes)-1]
		bestBefore := allRunTimes[0]
		for _, t := range allRunTimes[:len(allRunTimes)-1] {
			if t < bestBefore {
				bestBefore = t
			}
		}
		if latestTime < bestBefore {
			improvement := float64(bestBefore-latestTime) / float64(bestBefore) * 100
			alerts = append(alerts, Alert{
				Type:     AlertBreakthrough,
				Severity: SeverityPositive,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   "2km Run Time",
				Message: fmt.Sprintf(
					"New personal best! Improved by %.1f%% (%s)",
					improvement,
					FormatRunTime(float64(latestTime)),
				),
				Date: latest.Date,
			})
		}
	}

	// leg imbalance in the latest session
	if balance, ok := SessionBalance(latest); ok && balance < imbalanceBalancePct {
		severity := SeverityAttention
		if balance < imbalanceUrgentBalancePct {
			severity = SeverityUrgent
		}
		left := latest.BroadJumps.LeftSingle
		right := latest.BroadJumps.RightSingle
		stronger, weaker := "LEFT", "right"
		if right > left {
			stronger, weaker = "RIGHT", "left"
		}
		diff := left - right
		if diff < 0 {
			diff = -diff
		}
		alerts = append(alerts, Alert{
			Type:     AlertImbalance,
			Severity: severity,
			Player:   player.Name,
			PlayerID: player.ID,
			Metric:   "Jump Balance",
			Message: fmt.Sprintf(
				"%s leg %scm stronger than %s (%.0f%% balance)",
				stronger, formatFloat(diff), weaker, balance,
			),
			Date: latest.Date,
		})
	}

	// high fatigue in the latest session
	if fatigue, ok := AnalyzeSessionFatigue(latest); ok && fatigue.Dropoff < fatigueDropoffPct {
		severity := SeverityAttention
		if fatigue.Dropoff < fatigueUrgentDropoffPct {
			severity = SeverityUrgent
		}
		alerts = append(alerts, Alert{
			Type:     AlertFatigue,
			Severity: severity,
			Player:   player.Name,
			PlayerID: player.ID,
			Metric:   "Sprint Fatigue",
			Message: fmt.Sprintf(
				"High fatigue detected (%.0f%% drop from first to last set)",
				-fatigue.Dropoff,
			),
			Date: latest.Date,
		})
	}

	// jump breakthroughs, per jump type
	for _, jumpType := range training.JumpTypes {
		allJumps := make([]float64, 0, len(sorted))
		for _, s := range sorted {
			if value := s.BroadJumps.Value(jumpType); value > 0 {
				allJumps = append(allJumps, value)
			}
		}
		if len(allJumps) < 2 {
			continue
		}
		latestJump := allJumps[len(allJumps)-1]
		bestBefore := allJumps[0]
		for _, j := range allJumps[:len(allJumps)-1] {
			if j > bestBefore {
				bestBefore = j
			}
		}
		if latestJump > bestBefore {
			improvement := (latestJump - bestBefore) / bestBefore * 100
			alerts = append(alerts, Alert{
				Type:     AlertBreakthrough,
				Severity: SeverityPositive,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   jumpType.Label(),
				Message: fmt.Sprintf(
					"New PB! %scm (+%.1f%%)",
					formatFloat(latestJump), improvement,
				),
				Date: latest.Date,
			})
		}
	}

	return alerts
}

func matrixAlerts(player training.Player, sorted []training.MatrixSession) []Alert {
	if len(sorted) < 2 {
		return nil
	}

	var alerts []Alert
	previous := sorted[len(sorted)-2]
	latest := sorted[len(sorted)-1]

	for _, exercise := range training.MatrixExercises {
		latestScore := latest.Exercises[exercise]
		previousScore := previous.Exercises[exercise]
		if latestScore <= 0 || previousScore <= 0 {
			continue
		}

		change := (latestScore - previousScore) / previousScore * 100
		if change < matrixRegressionPct {
			severity := SeverityAttention
			if change < matrixRegressionUrgentPct {
				severity = SeverityUrgent
			}
			alerts = append(alerts, Alert{
				Type:     AlertRegression,
				Severity: severity,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   training.MatrixExerciseLabel(exercise),
				Message: fmt.Sprintf(
					"Score decreased by %.1f%% (%.1f → %.1f)",
					-change, previousScore, latestScore,
				),
				Date: latest.Date,
			})
		}

		allScores := make([]float64, 0, len(sorted))
		for _, m := range sorted {
			if score := m.Exercises[exercise]; score > 0 {
				allScores = append(allScores, score)
			}
		}
		if len(allScores) < 2 {
			continue
		}
		bestBefore := allScores[0]
		for _, score := range allScores[:len(allScores)-1] {
			if score > bestBefore {
				bestBefore = score
			}
		}
		if latestScore > bestBefore {
			improvement := (latestScore - bestBefore) / bestBefore * 100
			alerts = append(alerts, Alert{
				Type:     AlertBreakthrough,
				Severity: SeverityPositive,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   training.MatrixExerciseLabel(exercise),
				Message: fmt.Sprintf(
					"New PB! %.1f (+%.1f%%)",
					latestScore, improvement,
				),
				Date: latest.Date,
			})
		}
	}

	// overall matrix movement across all exercises
	latestAvg := latest.AverageScore()
	previousAvg := previous.AverageScore()
	if latestAvg > 0 && previousAvg > 0 {
		avgChange := (latestAvg - previousAvg) / previousAvg * 100
		if avgChange > matrixOverallPct {
			alerts = append(alerts, Alert{
				Type:     AlertBreakthrough,
				Severity: SeverityPositive,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   "Overall Matrix Performance",
				Message: fmt.Sprintf(
					"Strong improvement across all exercises! Average score up %.1f%%",
					avgChange,
				),
				Date: latest.Date,
			})
		} else if avgChange < -matrixOverallPct {
			alerts = append(alerts, Alert{
				Type:     AlertRegression,
				Severity: SeverityAttention,
				Player:   player.Name,
				PlayerID: player.ID,
				Metric:   "Overall Matrix Performance",
				Message: fmt.Sprintf(
					"Average score across exercises down %.1f%%",
					-avgChange,
				),
				Date: latest.Date,
			})
		}
	}

	return alerts
}
