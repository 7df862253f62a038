package model

import "time"

// Session is one pipeline run recorded in the journal.
type Session struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Requested  int       `json:"requested"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Displayed  int       `json:"displayed"`
	Drained    int       `json:"drained"`
	Reason     string    `json:"reason"`
	Error      string    `json:"error,omitempty"`
}

// DisplayedFrame records a frame the viewer showed during a session.
type DisplayedFrame struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Seq          uint64    `json:"seq"`
	Color        string    `json:"color"`
	DisplayedAt  time.Time `json:"displayed_at"`
	SnapshotPath string    `json:"snapshot_path,omitempty"`
}
