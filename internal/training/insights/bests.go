package insights

import (
	training "github.com/athletiq/athlete-tracker/internal/training/model"
)

// BestRunTime is a player's best-ever endurance run.
type BestRunTime struct {
	Time    int    `json:"time"` // seconds
	TimeStr string `json:"timeStr"`
	Date    string `json:"date"`
}

// BestEntry is a player's best-ever value for one metric.
type BestEntry struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// PersonalBests holds one optional best entry per tracked metric.
// A nil entry means the player never recorded that metric.
type PersonalBests struct {
	BestRunTime      *BestRunTime `json:"bestRunTime,omitempty"`
	BestLeftJump     *BestEntry   `json:"bestLeftJump,omitempty"`
	BestRightJump    *BestEntry   `json:"bestRightJump,omitempty"`
	BestDoubleJump   *BestEntry   `json:"bestDoubleJump,omitempty"`
	BestLeftTriple   *BestEntry   `json:"bestLeftTriple,omitempty"`
	BestRightTriple  *BestEntry   `json:"bestRightTriple,omitempty"`
	BestDoubleTriple *BestEntry   `json:"bestDoubleTriple,omitempty"`
	BestSprint       *BestEntry   `json:"bestSprint,omitempty"`
}

func (pb *PersonalBests) jumpBest(t training.JumpType) **BestEntry {
	switch t {
	case training.JumpLeftSingle:
		return &pb.BestLeftJump
	case training.JumpRightSingle:
		return &pb.BestRightJump
	case training.JumpDoubleSingle:
		return &pb.BestDoubleJump
	case training.JumpLeftTriple:
		return &pb.BestLeftTriple
	case training.JumpRightTriple:
		return &pb.BestRightTriple
	default:
		return &pb.BestDoubleTriple
	}
}

// GetPersonalBests extracts the best-ever value and its date for each
// tracked metric, over a player's full session history. Ties go to the
// earliest qualifying session. Stateless: the same input always yields
// the same output.
func GetPersonalBests(sessions []training.Session) PersonalBests {
	sorted := sortSessions(sessions)

	var bests PersonalBests
	for _, s := range sorted {
		if seconds, ok := ParseRunTime(s.RunTime); ok {
			if bests.BestRunTime == nil || seconds < bests.BestRunTime.Time {
				bests.BestRunTime = &BestRunTime{
					Time:    seconds,
					TimeStr: FormatRunTime(float64(seconds)),
					Date:    s.Date,
				}
			}
		}

		for _, jumpType := range training.JumpTypes {
			value := s.BroadJumps.Value(jumpType)
			if value <= 0 {
				continue
			}
			best := bests.jumpBest(jumpType)
			if *best == nil || value > (*best).Value {
				*best = &BestEntry{Value: value, Date: s.Date}
			}
		}

		// best sprint is the single best set across all sessions, flattened
		for _, reps := range s.NonZeroSprints() {
			if bests.BestSprint == nil || reps > bests.BestSprint.Value {
				bests.BestSprint = &BestEntry{Value: reps, Date: s.Date}
			}
		}
	}

	return bests
}
