package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/yedell/color-challenge/internal/model"
)

// SessionRepository implements repository.SessionRepository for SQLite.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create records the start of a run.
func (r *SessionRepository) Create(s *model.Session) error {
	r.db.Lock()
	defer r.db.Unlock()

	_, err := r.db.Conn().Exec(`
		INSERT INTO sessions (id, started_at, requested, width, height)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.StartedAt, s.Requested, s.Width, s.Height)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Finish stores the outcome of a run.
func (r *SessionRepository) Finish(s *model.Session) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		UPDATE sessions
		SET finished_at = ?, displayed = ?, drained = ?, reason = ?, error = ?
		WHERE id = ?
	`, s.FinishedAt, s.Displayed, s.Drained, s.Reason, s.Error, s.ID)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", s.ID)
	}
	return nil
}

const sessionColumns = `id, started_at, finished_at, requested, width, height, displayed, drained, reason, error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*model.Session, error) {
	var s model.Session
	var finished sql.NullTime
	if err := row.Scan(&s.ID, &s.StartedAt, &finished, &s.Requested, &s.Width, &s.Height, &s.Displayed, &s.Drained, &s.Reason, &s.Error); err != nil {
		return nil, err
	}
	if finished.Valid {
		s.FinishedAt = finished.Time
	}
	return &s, nil
}

// GetByID returns the session or nil when it does not exist.
func (r *SessionRepository) GetByID(id string) (*model.Session, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	s, err := scanSession(r.db.Conn().QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// List returns sessions newest first.
func (r *SessionRepository) List(limit, offset int) ([]model.Session, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT `+sessionColumns+` FROM sessions
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Count returns the number of recorded sessions.
func (r *SessionRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
