package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/model"
)

func TestGenerator_Run(t *testing.T) {
	tests := []struct {
		name        string
		count, w, h int
	}{
		{"many small frames", 100, 8, 6},
		{"tall frames", 50, 246, 379},
		{"few frames", 5, 64, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := catalog.Default()
			rng := rand.New(rand.NewPCG(7, 11))
			out := NewQueue[*model.Frame]("generated", tt.count)

			g := NewGenerator(cat, rng, tt.count, tt.w, tt.h, time.Second, testLogger())
			if got := g.Run(context.Background(), out); got != tt.count {
				t.Fatalf("Run() = %d, expected %d", got, tt.count)
			}
			if !out.Closed() {
				t.Fatal("Generator did not close its output")
			}

			for i := 1; i <= tt.count; i++ {
				frame, err := out.Pop(context.Background(), time.Second)
				if err != nil {
					t.Fatalf("Pop %d failed: %v", i, err)
				}
				if frame.Seq != uint64(i) {
					t.Errorf("Frame %d has seq %d", i, frame.Seq)
				}
				if frame.Width != tt.w || frame.Height != tt.h || len(frame.Pix) != tt.w*tt.h*3 {
					t.Fatalf("Frame %d is %dx%d with %d bytes", i, frame.Width, frame.Height, len(frame.Pix))
				}
				fill := frame.RGBAt(0, 0)
				if _, err := cat.LookupRGB(fill); err != nil {
					t.Errorf("Frame %d color %v not in catalog", i, fill)
				}
				if frame.RGBAt(tt.w-1, tt.h-1) != fill || frame.RGBAt(tt.w/2, tt.h/2) != fill {
					t.Errorf("Frame %d is not a solid fill", i)
				}
			}
			if _, err := out.Pop(context.Background(), time.Second); !errors.Is(err, ErrClosed) {
				t.Errorf("Expected end of stream after %d frames, got %v", tt.count, err)
			}
		})
	}
}

func TestGenerator_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewQueue[*model.Frame]("generated", 4)
	g := NewGenerator(catalog.Default(), rand.New(rand.NewPCG(1, 1)), 10, 2, 2, time.Second, testLogger())

	if got := g.Run(ctx, out); got != 0 {
		t.Errorf("Expected no frames after cancel, got %d", got)
	}
	if !out.Closed() {
		t.Error("Generator did not close its output")
	}
}

func TestGenerator_StopsWhileBlockedOnFullQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := NewQueue[*model.Frame]("generated", 2)
	g := NewGenerator(catalog.Default(), rand.New(rand.NewPCG(1, 1)), 10, 2, 2, 10*time.Millisecond, testLogger())

	done := make(chan int, 1)
	go func() { done <- g.Run(ctx, out) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case got := <-done:
		if got != 2 {
			t.Errorf("Expected 2 frames before the queue filled, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Generator did not stop after cancel")
	}
	if out.Len() != 2 {
		t.Errorf("Expected 2 buffered frames, got %d", out.Len())
	}
}
