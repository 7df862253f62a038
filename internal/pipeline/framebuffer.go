package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/yedell/color-challenge/internal/model"
)

// FrameBuffer is the single shared display slot between the Frame Relay
// (writer) and the Viewer (reader).
//
// The writer may only publish once the reader has released the previous
// frame (Ready), and the reader only ever sees whole frames, so no frame is
// skipped or observed mid-write. Its storage is allocated once and reused.
type FrameBuffer struct {
	mu   sync.Mutex
	cond *sync.Cond

	frame     *model.Frame
	published uint64
	fresh     bool // published and not yet consumed
	ready     bool // reader released the current frame
	closed    bool
}

// NewFrameBuffer allocates a width x height buffer. It starts ready.
func NewFrameBuffer(width, height int) *FrameBuffer {
	b := &FrameBuffer{
		frame: model.NewFrame(width, height),
		ready: true,
	}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks on the condition until done() holds, the buffer closes or
// ctx ends. The caller holds b.mu.
func (b *FrameBuffer) wait(ctx context.Context, done func() bool) error {
	stop := context.AfterFunc(ctx, func() {
		b.mu.Lock()
		b.cond.Broadcast()
		b.mu.Unlock()
	})
	defer stop()

	for !done() && !b.closed {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.cond.Wait()
	}
	if b.closed {
		return ErrClosed
	}
	return nil
}

// AwaitReady blocks until the reader released the current frame.
func (b *FrameBuffer) AwaitReady(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.wait(ctx, func() bool { return b.ready })
}

// Publish copies frame into the buffer once the reader is ready, then
// wakes the reader. The buffer is not ready again until Ready is called.
func (b *FrameBuffer) Publish(ctx context.Context, frame *model.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if frame.Width != b.frame.Width || frame.Height != b.frame.Height || len(frame.Pix) != len(b.frame.Pix) {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, frame.Width, frame.Height, b.frame.Width, b.frame.Height)
	}
	if err := b.wait(ctx, func() bool { return b.ready }); err != nil {
		return err
	}

	copy(b.frame.Pix, frame.Pix)
	b.frame.Seq = frame.Seq
	b.frame.Color = frame.Color
	b.published++
	b.fresh = true
	b.ready = false
	b.cond.Broadcast()
	return nil
}

// Consume blocks until a frame the reader has not seen yet is published
// and returns a copy of it.
func (b *FrameBuffer) Consume(ctx context.Context) (*model.Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.wait(ctx, func() bool { return b.fresh }); err != nil {
		return nil, err
	}
	b.fresh = false
	return b.frame.Clone(), nil
}

// Ready releases the current frame so the writer may publish the next one.
func (b *FrameBuffer) Ready() {
	b.mu.Lock()
	b.ready = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Close wakes every waiter; later waits return ErrClosed.
func (b *FrameBuffer) Close() {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Started reports whether any frame has been published.
func (b *FrameBuffer) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published > 0
}

// Published returns how many frames were written to the buffer.
func (b *FrameBuffer) Published() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published
}

// Snapshot returns a copy of the current frame without waiting.
func (b *FrameBuffer) Snapshot() (*model.Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.published == 0 {
		return nil, false
	}
	return b.frame.Clone(), true
}
