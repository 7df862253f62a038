package pipeline

import (
	"errors"
	"fmt"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// Relay moves watermarked frames into the FrameBuffer, one per viewer
// release.
type Relay struct {
	buffer *FrameBuffer
	logger *logger.Logger
}

// NewRelay creates a relay writing into buffer.
func NewRelay(buffer *FrameBuffer, logger *logger.Logger) *Relay {
	return &Relay{buffer: buffer, logger: logger}
}

// Run publishes frames from in until quit fires. It waits for the viewer
// to release the current frame before taking the next item, and fires quit
// with ReasonEndOfStream once in is exhausted. It returns the number of
// frames published.
func (r *Relay) Run(quit *Quit, in *Queue[*model.Frame]) (int, error) {
	ctx := quit.Context()
	published := 0

	for ctx.Err() == nil {
		if err := r.buffer.AwaitReady(ctx); err != nil {
			break
		}

		// No liveness timeout here: the watermarker always closes its
		// output, so this wait ends with a frame, the end of stream or quit.
		frame, err := in.Pop(ctx, 0)
		if errors.Is(err, ErrClosed) {
			r.logger.Info("Relay reached end of stream after %d frame(s)", published)
			quit.Fire(ReasonEndOfStream, nil)
			break
		}
		if err != nil {
			break
		}

		if err := r.buffer.Publish(ctx, frame); err != nil {
			if errors.Is(err, ErrFrameSize) {
				return published, fmt.Errorf("failed to publish frame %d: %w", frame.Seq, err)
			}
			break
		}
		published++
	}
	return published, nil
}
