package dto

import (
	"encoding/json"
	"time"

	"github.com/yedell/color-challenge/internal/model"
)

// SessionsData is a paginated response payload for the session journal.
type SessionsData struct {
	Sessions    []SessionInfo `json:"sessions"`
	Length      int           `json:"length"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Limit       int           `json:"pageSize"`
}

// SessionInfo is a journal session as shown to clients.
type SessionInfo struct {
	model.Session
	Duration time.Duration `json:"-"`
}

// MarshalJSON formats the duration in seconds.
func (s SessionInfo) MarshalJSON() ([]byte, error) {
	type Alias model.Session
	return json.Marshal(&struct {
		Alias
		Seconds float64 `json:"seconds"`
	}{
		Alias:   Alias(s.Session),
		Seconds: s.Duration.Seconds(),
	})
}

// NewSessionInfo wraps s and computes how long it ran.
func NewSessionInfo(s model.Session) SessionInfo {
	info := SessionInfo{Session: s}
	if !s.FinishedAt.IsZero() {
		info.Duration = s.FinishedAt.Sub(s.StartedAt)
	}
	return info
}

// SessionFramesData lists the frames displayed in one session.
type SessionFramesData struct {
	Session SessionInfo            `json:"session"`
	Frames  []model.DisplayedFrame `json:"frames"`
}
