package model

import "time"

type SessionParams struct {
	PlayerID string
	From     *time.Time
	To       *time.Time
}
