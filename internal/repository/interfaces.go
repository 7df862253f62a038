package repository

import "github.com/yedell/color-challenge/internal/model"

// SessionRepository defines the journal operations on pipeline runs.
type SessionRepository interface {
	// Create operations
	Create(s *model.Session) error

	// Update operations
	Finish(s *model.Session) error

	// Read operations
	GetByID(id string) (*model.Session, error)
	List(limit, offset int) ([]model.Session, error)
	Count() (int, error)
}

// FrameRepository defines the journal operations on displayed frames.
type FrameRepository interface {
	// Create operations
	Insert(f *model.DisplayedFrame) (int64, error)
	InsertBatch(frames []model.DisplayedFrame) error

	// Read operations
	GetBySession(sessionID string) ([]model.DisplayedFrame, error)
}
