// Package validate holds the entry-time field validators used by the
// session and matrix forms. The insights engine deliberately does not
// use these: historical data outside the entry bounds must still be
// analyzed, so bounds are enforced only when new data comes in.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	training "github.com/athletiq/athlete-tracker/internal/training/model"
	"github.com/athletiq/athlete-tracker/internal/training/insights"
)

// Result is one field's validation outcome.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ok() Result {
	return Result{Valid: true}
}

func invalid(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

const (
	runTimeMinSeconds = 240 // 4 minutes
	runTimeMaxSeconds = 900 // 15 minutes

	broadJumpMinCm = 50
	broadJumpMaxCm = 500

	sprintRepsMax = 60

	sessionDateMaxAgeYears = 5

	playerNameMinLen = 2
	playerNameMaxLen = 50
)

var (
	strictRunTimeRegex = regexp.MustCompile(`^[0-5]?[0-9]:[0-5][0-9]$`)
	playerNameRegex    = regexp.MustCompile(`^[\p{L}\p{N}' -]+$`)
	sprintRepsRegex    = regexp.MustCompile(`^\d{1,2}(\.\d)?$`)
)

// RunTime enforces the strict entry form of MM:SS: minutes 0-59 and a
// total between 4 and 15 minutes.
func RunTime(runTime string) Result {
	if runTime == "" {
		return invalid("run time is required")
	}
	if !strictRunTimeRegex.MatchString(runTime) {
		return invalid("run time must be in MM:SS format")
	}
	seconds, okParse := insights.ParseRunTime(runTime)
	if !okParse {
		return invalid("run time must be in MM:SS format")
	}
	if seconds < runTimeMinSeconds || seconds > runTimeMaxSeconds {
		return invalid("run time must be between 4:00 and 15:00")
	}
	return ok()
}

// BroadJump checks a jump distance in centimeters. Zero is accepted as
// "not recorded".
func BroadJump(cm float64) Result {
	if cm == 0 {
		return ok()
	}
	if cm < broadJumpMinCm || cm > broadJumpMaxCm {
		return invalid("jump distance must be between %d and %d cm", broadJumpMinCm, broadJumpMaxCm)
	}
	return ok()
}

// SprintReps checks one sprint set's rep count as entered, allowing at
// most one decimal place. Zero is accepted as "not recorded".
func SprintReps(reps string) Result {
	if reps == "" || reps == "0" {
		return ok()
	}
	if !sprintRepsRegex.MatchString(reps) {
		return invalid("sprint reps must be a number with at most one decimal place")
	}
	var value float64
	if _, err := fmt.Sscanf(reps, "%f", &value); err != nil {
		return invalid("sprint reps must be a number with at most one decimal place")
	}
	if value > sprintRepsMax {
		return invalid("sprint reps must be at most %d", sprintRepsMax)
	}
	return ok()
}

// SessionDate checks a YYYY-MM-DD date relative to the supplied
// "today": it must not be in the future and not more than five years
// in the past.
func SessionDate(date string, today time.Time) Result {
	parsed, okParse := insights.ParseLocalDate(date)
	if !okParse {
		return invalid("date must be in YYYY-MM-DD format")
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if parsed.After(todayMidnight) {
		return invalid("date cannot be in the future")
	}
	if parsed.Before(todayMidnight.AddDate(-sessionDateMaxAgeYears, 0, 0)) {
		return invalid("date cannot be more than %d years in the past", sessionDateMaxAgeYears)
	}
	return ok()
}

// PlayerName checks a player's display name: 2-50 characters after
// trimming, letters, digits, spaces, hyphens and apostrophes only.
func PlayerName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < playerNameMinLen {
		return invalid("name must be at least %d characters", playerNameMinLen)
	}
	if len([]rune(trimmed)) > playerNameMaxLen {
		return invalid("name must be at most %d characters", playerNameMaxLen)
	}
	if !playerNameRegex.MatchString(trimmed) {
		return invalid("name contains invalid characters")
	}
	return ok()
}

// MatrixScore checks a skill-drill score. Zero means "not recorded".
func MatrixScore(score float64) Result {
	if score < 0 || score > 100 {
		return invalid("score must be between 0 and 100")
	}
	return ok()
}

// SessionForm aggregates field errors for a new training session.
// At least one metric must actually be recorded.
func SessionForm(s training.Session, today time.Time) map[string]string {
	errors := map[string]string{}

	if result := SessionDate(s.Date, today); !result.Valid {
		errors["date"] = result.Error
	}

	recorded := false
	if s.RunTime != "" {
		recorded = true
		if result := RunTime(s.RunTime); !result.Valid {
			errors["runTime"] = result.Error
		}
	}
	for _, jumpType := range training.JumpTypes {
		value := s.BroadJumps.Value(jumpType)
		if value != 0 {
			recorded = true
		}
		if result := BroadJump(value); !result.Valid {
			errors[string(jumpType)] = result.Error
		}
	}
	for i, reps := range s.Sprints {
		if reps != 0 {
			recorded = true
		}
		if reps < 0 || reps > sprintRepsMax {
			errors[fmt.Sprintf("sprint%d", i+1)] = fmt.Sprintf("sprint reps must be between 0 and %d", sprintRepsMax)
		}
	}

	if !recorded {
		errors["form"] = "at least one metric must be recorded"
	}

	return errors
}

// MatrixForm aggregates field errors for a new matrix session.
func MatrixForm(m training.MatrixSession, today time.Time) map[string]string {
	errors := map[string]string{}

	if result := SessionDate(m.Date, today); !result.Valid {
		errors["date"] = result.Error
	}

	recorded := false
	for exercise, score := range m.Exercises {
		if score != 0 {
			recorded = true
		}
		if result := MatrixScore(score); !result.Valid {
			errors[exercise] = result.Error
		}
	}

	if !recorded {
		errors["form"] = "at least one exercise must be recorded"
	}

	return errors
}
