package model

import "time"

// Session is one recorded training test event for a player.
// A zero value in any metric means "not recorded": the domain never
// records a true zero measurement, so averages and bests must skip
// zero entries instead of counting them.
type Session struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"playerId"`
	PlayerName string     `json:"playerName,omitempty"`
	Date       string     `json:"date"`              // YYYY-MM-DD, local calendar day
	RunTime    string     `json:"runTime,omitempty"` // MM:SS, empty when not recorded
	BroadJumps BroadJumps `json:"broadJumps"`
	Sprints    [6]float64 `json:"sprints"` // rep counts for six successive 30s sets
	CreatedAt  time.Time  `json:"createdAt,omitempty"`
}

// BroadJumps holds the six jump distances of a session, in centimeters.
type BroadJumps struct {
	LeftSingle   float64 `json:"leftSingle"`
	RightSingle  float64 `json:"rightSingle"`
	DoubleSingle float64 `json:"doubleSingle"`
	LeftTriple   float64 `json:"leftTriple"`
	RightTriple  float64 `json:"rightTriple"`
	DoubleTriple float64 `json:"doubleTriple"`
}

type JumpType string

const (
	JumpLeftSingle   JumpType = "leftSingle"
	JumpRightSingle  JumpType = "rightSingle"
	JumpDoubleSingle JumpType = "doubleSingle"
	JumpLeftTriple   JumpType = "leftTriple"
	JumpRightTriple  JumpType = "rightTriple"
	JumpDoubleTriple JumpType = "doubleTriple"
)

// JumpTypes lists all jump types in their canonical display order.
var JumpTypes = []JumpType{
	JumpLeftSingle,
	JumpRightSingle,
	JumpDoubleSingle,
	JumpLeftTriple,
	JumpRightTriple,
	JumpDoubleTriple,
}

func (t JumpType) Label() string {
	switch t {
	case JumpLeftSingle:
		return "Left Single Jump"
	case JumpRightSingle:
		return "Right Single Jump"
	case JumpDoubleSingle:
		return "Double Single Jump"
	case JumpLeftTriple:
		return "Left Triple Jump"
	case JumpRightTriple:
		return "Right Triple Jump"
	case JumpDoubleTriple:
		return "Double Triple Jump"
	}
	return string(t)
}

func (bj BroadJumps) Value(t JumpType) float64 {
	switch t {
	case JumpLeftSingle:
		return bj.LeftSingle
	case JumpRightSingle:
		return bj.RightSingle
	case JumpDoubleSingle:
		return bj.DoubleSingle
	case JumpLeftTriple:
		return bj.LeftTriple
	case JumpRightTriple:
		return bj.RightTriple
	case JumpDoubleTriple:
		return bj.DoubleTriple
	}
	return 0
}

// NonZeroSprints returns the recorded sprint sets in order,
// with the "not recorded" zero entries filtered out.
func (s Session) NonZeroSprints() []float64 {
	sprints := make([]float64, 0, len(s.Sprints))
	for _, sp := range s.Sprints {
		if sp > 0 {
			sprints = append(sprints, sp)
		}
	}
	return sprints
}
