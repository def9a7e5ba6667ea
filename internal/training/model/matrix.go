package model

import "time"

// MatrixSession is one recorded skill-drill test event,
// scored 0-100 per exercise. A zero score means "not recorded".
type MatrixSession struct {
	ID         string             `json:"id"`
	PlayerID   string             `json:"playerId"`
	PlayerName string             `json:"playerName,omitempty"`
	Date       string             `json:"date"` // YYYY-MM-DD, local calendar day
	Exercises  map[string]float64 `json:"exercises"`
	CreatedAt  time.Time          `json:"createdAt,omitempty"`
}

// MatrixExercises is the canonical set of skill-matrix drill keys,
// in their display order.
var MatrixExercises = []string{
	"volleyFigure8",
	"bounceFigure8",
	"volleySideToSide",
	"dropTargetBackhand",
	"dropTargetForehand",
	"serviceBoxDriveForehand",
	"serviceBoxDriveBackhand",
	"cornerVolleys",
	"beepTest",
	"ballTransfer",
	"slalom",
}

var matrixExerciseLabels = map[string]string{
	"volleyFigure8":           "Volley Figure 8",
	"bounceFigure8":           "Bounce Figure 8",
	"volleySideToSide":        "Volley Side to Side",
	"dropTargetBackhand":      "Drop Target Backhand",
	"dropTargetForehand":      "Drop Target Forehand",
	"serviceBoxDriveForehand": "Service Box Drive Forehand",
	"serviceBoxDriveBackhand": "Service Box Drive Backhand",
	"cornerVolleys":           "Corner Volleys",
	"beepTest":                "Beep Test",
	"ballTransfer":            "Ball Transfer",
	"slalom":                  "Slalom",
}

func IsMatrixExercise(key string) bool {
	_, ok := matrixExerciseLabels[key]
	return ok
}

func MatrixExerciseLabel(key string) string {
	if label, ok := matrixExerciseLabels[key]; ok {
		return label
	}
	return key
}

// AverageScore returns the mean of the recorded (non-zero) exercise
// scores, or 0 when nothing was recorded.
func (m MatrixSession) AverageScore() float64 {
	var sum float64
	var count int
	for _, score := range m.Exercises {
		if score > 0 {
			sum += score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
