package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/dto"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
	"github.com/yedell/color-challenge/internal/repository"
	"github.com/yedell/color-challenge/internal/service/render"
)

// SnapshotService records displayed frames. It buffers them in memory and
// periodically writes JPEG snapshots to disk and rows to the journal.
type SnapshotService struct {
	snapshotDir   string
	sessionID     string
	limit         int
	flushInterval time.Duration
	encode        render.Encoder
	frameRepo     repository.FrameRepository
	logger        *logger.Logger

	mu      sync.Mutex
	frames  []dto.BufferedFrame
	saved   int    // snapshots written or buffered so far
	lastSeq uint64 // newest frame recorded
}

// NewSnapshotService creates a recorder for one session. An empty
// SnapshotDirectory disables image files and a nil frameRepo disables
// journal rows.
func NewSnapshotService(config *config.Config, sessionID string, encode render.Encoder, frameRepo repository.FrameRepository, logger *logger.Logger) *SnapshotService {
	return &SnapshotService{
		snapshotDir:   config.SnapshotDirectory,
		sessionID:     sessionID,
		limit:         config.SnapshotLimit,
		flushInterval: config.SnapshotFlushInterval,
		encode:        encode,
		frameRepo:     frameRepo,
		logger:        logger,
	}
}

// Run flushes the buffer on every tick and once more when ctx ends.
func (s *SnapshotService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Flush()
		case <-ctx.Done():
			s.Flush()
			return
		}
	}
}

// Present buffers the view. A frame presented again, as the viewer does
// while it re-prompts, is recorded only once. Only the first limit frames
// keep an image.
func (s *SnapshotService) Present(ctx context.Context, view model.View) error {
	frame := dto.BufferedFrame{
		SessionID:   s.sessionID,
		Seq:         view.Frame.Seq,
		Color:       view.Color,
		DisplayedAt: time.Now(),
	}

	s.mu.Lock()
	if frame.Seq <= s.lastSeq {
		s.mu.Unlock()
		return nil
	}
	s.lastSeq = frame.Seq
	keepImage := s.snapshotDir != "" && s.saved < s.limit
	if keepImage {
		s.saved++
	}
	s.mu.Unlock()

	if keepImage {
		data, err := s.encode(view.Frame)
		if err != nil {
			return err
		}
		frame.Data = data
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
	s.logger.Info("Snapshot buffer size: %d (images %d/%d)", len(s.frames), s.saved, s.limit)
	return nil
}

// Filename names the snapshot of a displayed frame.
func Filename(sessionID string, seq uint64, color string) string {
	return fmt.Sprintf("%s_%d_%s.jpg", sessionID, seq, color)
}

// Flush writes buffered snapshots to disk and journal rows to the
// repository, then clears the buffer. It returns how many frames it wrote.
func (s *SnapshotService) Flush() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return 0
	}

	if s.snapshotDir != "" {
		if err := os.MkdirAll(s.snapshotDir, 0755); err != nil {
			s.logger.Error("Error creating directory: %v", err)
			return 0
		}
	}

	rows := make([]model.DisplayedFrame, 0, len(s.frames))
	for _, frame := range s.frames {
		row := model.DisplayedFrame{
			SessionID:   frame.SessionID,
			Seq:         frame.Seq,
			Color:       frame.Color,
			DisplayedAt: frame.DisplayedAt,
		}

		if frame.Data != nil {
			fullpath := filepath.Join(s.snapshotDir, Filename(frame.SessionID, frame.Seq, frame.Color))
			if err := os.WriteFile(fullpath, frame.Data, 0644); err != nil {
				s.logger.Error("Error saving snapshot %s: %v", fullpath, err)
			} else {
				row.SnapshotPath = fullpath
			}
		}
		rows = append(rows, row)
	}

	if s.frameRepo != nil {
		if err := s.frameRepo.InsertBatch(rows); err != nil {
			s.logger.Error("Error saving frames to database: %v", err)
		}
	}

	s.logger.Info("Flushed %d displayed frame(s)", len(rows))
	s.frames = s.frames[:0]
	return len(rows)
}
