package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue[int]("test", 5)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := q.Push(ctx, i, time.Second); err != nil {
			t.Fatalf("Push(%d) failed: %v", i, err)
		}
	}
	q.Close()

	for i := 1; i <= 5; i++ {
		got, err := q.Pop(ctx, time.Second)
		if err != nil {
			t.Fatalf("Pop failed: %v", err)
		}
		if got != i {
			t.Errorf("Pop() = %d, expected %d", got, i)
		}
	}
	if _, err := q.Pop(ctx, time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after last item, got %v", err)
	}
}

func TestQueue_Timeouts(t *testing.T) {
	q := NewQueue[int]("test", 1)
	ctx := context.Background()

	if _, err := q.Pop(ctx, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout popping empty queue, got %v", err)
	}
	if err := q.Push(ctx, 1, 10*time.Millisecond); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if err := q.Push(ctx, 2, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("Expected ErrTimeout pushing full queue, got %v", err)
	}
}

func TestQueue_ContextCancel(t *testing.T) {
	q := NewQueue[int]("test", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Pop(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled from Pop, got %v", err)
	}
	_ = q.Push(context.Background(), 1, time.Second)
	if err := q.Push(ctx, 2, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled from Push, got %v", err)
	}
}

func TestQueue_TryPop(t *testing.T) {
	q := NewQueue[string]("test", 2)

	if _, err := q.TryPop(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
	_ = q.Push(context.Background(), "a", time.Second)
	if got, err := q.TryPop(); err != nil || got != "a" {
		t.Errorf("TryPop() = %q, %v", got, err)
	}
	q.Close()
	if _, err := q.TryPop(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestQueue_CloseOnce(t *testing.T) {
	q := NewQueue[int]("test", 1)
	q.Close()
	q.Close()

	if !q.Closed() {
		t.Error("Expected Closed() after Close")
	}
	if err := q.Push(context.Background(), 1, time.Second); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed pushing after close, got %v", err)
	}
}

func TestQueue_DrainOneCountsEndOfStreamOnce(t *testing.T) {
	q := NewQueue[int]("test", 3)
	ctx := context.Background()
	_ = q.Push(ctx, 1, time.Second)
	_ = q.Push(ctx, 2, time.Second)
	q.Close()

	drained := 0
	for q.DrainOne() {
		drained++
	}
	if drained != 3 {
		t.Errorf("Expected 2 items + end of stream, drained %d", drained)
	}
	if q.DrainOne() {
		t.Error("End of stream counted twice")
	}
}

func TestQueue_DrainOneSkipsObservedEndOfStream(t *testing.T) {
	q := NewQueue[int]("test", 1)
	q.Close()

	if _, err := q.Pop(context.Background(), time.Second); !errors.Is(err, ErrClosed) {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if q.DrainOne() {
		t.Error("End of stream already seen by a receiver must not be drained")
	}
}
