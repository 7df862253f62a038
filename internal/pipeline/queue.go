package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Queue is a bounded FIFO channel between two stages with close-once
// semantics. The single producer owns Push and Close; Close is the
// end-of-stream marker and is never followed by another Push.
type Queue[T any] struct {
	name  string
	items chan T

	closeOnce sync.Once
	closed    atomic.Bool
	// ended is set once some receiver has observed the closure.
	ended atomic.Bool
}

// NewQueue creates a queue holding at most capacity items.
func NewQueue[T any](name string, capacity int) *Queue[T] {
	return &Queue[T]{
		name:  name,
		items: make(chan T, capacity),
	}
}

// Name returns the queue's name for logging.
func (q *Queue[T]) Name() string {
	return q.name
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Push enqueues item, waiting at most timeout for room (timeout <= 0 waits
// without limit). It returns ErrTimeout when the queue stayed full,
// ctx.Err() when ctx ends first, and ErrClosed after Close.
func (q *Queue[T]) Push(ctx context.Context, item T, timeout time.Duration) error {
	if q.closed.Load() {
		return ErrClosed
	}

	expired, stop := deadline(timeout)
	defer stop()

	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return ErrTimeout
	}
}

// Pop dequeues the oldest item, waiting at most timeout (timeout <= 0 waits
// without limit). It returns ErrClosed once the queue is closed and empty.
func (q *Queue[T]) Pop(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T

	expired, stop := deadline(timeout)
	defer stop()

	select {
	case item, ok := <-q.items:
		if !ok {
			q.ended.Store(true)
			return zero, ErrClosed
		}
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-expired:
		return zero, ErrTimeout
	}
}

// TryPop dequeues without blocking. It returns ErrEmpty when nothing is
// buffered and ErrClosed once the queue is closed and empty.
func (q *Queue[T]) TryPop() (T, error) {
	var zero T

	select {
	case item, ok := <-q.items:
		if !ok {
			q.ended.Store(true)
			return zero, ErrClosed
		}
		return item, nil
	default:
		return zero, ErrEmpty
	}
}

// Close marks the end of the stream. Calling it again is a no-op.
func (q *Queue[T]) Close() {
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		close(q.items)
	})
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	return q.closed.Load()
}

// DrainOne discards one residual item. A closed queue whose end-of-stream
// no receiver has seen yet yields that marker once, as if it were an item.
func (q *Queue[T]) DrainOne() bool {
	select {
	case _, ok := <-q.items:
		if ok {
			return true
		}
		return !q.ended.Swap(true)
	default:
		return false
	}
}

// deadline returns a channel that fires after timeout, or a nil channel
// (never fires) when timeout <= 0.
func deadline(timeout time.Duration) (<-chan time.Time, func()) {
	if timeout <= 0 {
		return nil, func() {}
	}
	timer := time.NewTimer(timeout)
	return timer.C, func() { timer.Stop() }
}
