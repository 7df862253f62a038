package sqlite

import (
	"fmt"

	"github.com/yedell/color-challenge/internal/model"
)

// FrameRepository implements repository.FrameRepository for SQLite.
type FrameRepository struct {
	db *DB
}

// NewFrameRepository creates a new SQLite frame repository.
func NewFrameRepository(db *DB) *FrameRepository {
	return &FrameRepository{db: db}
}

const insertFrame = `
	INSERT INTO frames (session_id, seq, color, displayed_at, snapshot_path)
	VALUES (?, ?, ?, ?, ?)
`

// Insert adds a displayed frame.
func (r *FrameRepository) Insert(f *model.DisplayedFrame) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(insertFrame, f.SessionID, f.Seq, f.Color, f.DisplayedAt, f.SnapshotPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert frame: %w", err)
	}
	return result.LastInsertId()
}

// InsertBatch adds multiple frames in a single transaction.
func (r *FrameRepository) InsertBatch(frames []model.DisplayedFrame) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertFrame)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(f.SessionID, f.Seq, f.Color, f.DisplayedAt, f.SnapshotPath); err != nil {
			return fmt.Errorf("failed to insert frame: %w", err)
		}
	}

	return tx.Commit()
}

// GetBySession returns a session's frames in display order.
func (r *FrameRepository) GetBySession(sessionID string) ([]model.DisplayedFrame, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, session_id, seq, color, displayed_at, snapshot_path
		FROM frames WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query frames: %w", err)
	}
	defer rows.Close()

	var frames []model.DisplayedFrame
	for rows.Next() {
		var f model.DisplayedFrame
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Seq, &f.Color, &f.DisplayedAt, &f.SnapshotPath); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}
