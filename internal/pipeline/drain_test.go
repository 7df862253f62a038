package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/yedell/color-challenge/internal/model"
)

func fillQueue(t *testing.T, q *Queue[*model.Frame], n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := q.Push(context.Background(), model.NewFrame(1, 1), time.Second); err != nil {
			t.Fatalf("Push %d failed: %v", i, err)
		}
	}
	q.Close()
}

func TestDrain_CountsItemsAndMarkers(t *testing.T) {
	tests := []struct {
		generated   int
		watermarked int
	}{
		{0, 0},
		{0, 37},
		{264, 85},
		{639, 639},
		{3, 4831},
	}

	for _, tt := range tests {
		generated := NewQueue[*model.Frame]("generated", tt.generated)
		watermarked := NewQueue[*model.Frame]("watermarked", tt.watermarked)
		fillQueue(t, generated, tt.generated)
		fillQueue(t, watermarked, tt.watermarked)

		done := make(chan struct{})
		close(done)

		got := Drain(done, generated, watermarked)
		if want := tt.generated + tt.watermarked + 2; got != want {
			t.Errorf("Drain(%d, %d) = %d, expected %d", tt.generated, tt.watermarked, got, want)
		}
		if generated.Len() != 0 || watermarked.Len() != 0 {
			t.Errorf("Queues not empty after drain: %d, %d", generated.Len(), watermarked.Len())
		}
	}
}

func TestDrain_WaitsForLatePush(t *testing.T) {
	q := NewQueue[*model.Frame]("watermarked", 2)
	done := make(chan struct{})

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = q.Push(context.Background(), model.NewFrame(1, 1), time.Second)
		q.Close()
		close(done)
	}()

	if got := Drain(done, q); got != 2 {
		t.Errorf("Expected late item + end of stream, got %d", got)
	}
}

func TestDrain_OpenQueue(t *testing.T) {
	q := NewQueue[*model.Frame]("generated", 3)
	_ = q.Push(context.Background(), model.NewFrame(1, 1), time.Second)

	done := make(chan struct{})
	close(done)

	if got := Drain(done, q); got != 1 {
		t.Errorf("Expected 1 item from an unclosed queue, got %d", got)
	}
}
