package pipeline

import (
	"context"
	"errors"
	"image"
	"io"
	"sync"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

func testLogger() *logger.Logger {
	return logger.NewWriterLogger(io.Discard)
}

// recordingDisplay remembers every view it was asked to present.
type recordingDisplay struct {
	mu    sync.Mutex
	views []model.View
}

func (d *recordingDisplay) Present(ctx context.Context, view model.View) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.views = append(d.views, view)
	return nil
}

func (d *recordingDisplay) seqs() []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]uint64, 0, len(d.views))
	for _, v := range d.views {
		out = append(out, v.Frame.Seq)
	}
	return out
}

// scriptedKeys plays back keys in order, then repeats fallback forever.
type scriptedKeys struct {
	mu       sync.Mutex
	keys     []model.Key
	fallback model.Key
	asked    int
}

func (k *scriptedKeys) WaitKey(ctx context.Context) (model.Key, error) {
	if err := ctx.Err(); err != nil {
		return model.KeyOther, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.asked++
	if len(k.keys) == 0 {
		return k.fallback, nil
	}
	key := k.keys[0]
	k.keys = k.keys[1:]
	return key, nil
}

// blockingKeys never produces a key.
type blockingKeys struct{}

func (blockingKeys) WaitKey(ctx context.Context) (model.Key, error) {
	<-ctx.Done()
	return model.KeyOther, ctx.Err()
}

var errPaint = errors.New("paint failed")

// failingPainter fails every marker.
type failingPainter struct{}

func (failingPainter) DrawMarker(*model.Frame, image.Point, int, model.RGB) error { return errPaint }
func (failingPainter) LabelSize(string, float64) image.Point                      { return image.Point{} }
func (failingPainter) DrawLabel(*model.Frame, string, image.Point, model.RGB, float64) error {
	return nil
}

// nopPainter leaves frames untouched.
type nopPainter struct{}

func (nopPainter) DrawMarker(*model.Frame, image.Point, int, model.RGB) error { return nil }
func (nopPainter) LabelSize(string, float64) image.Point                      { return image.Point{} }
func (nopPainter) DrawLabel(*model.Frame, string, image.Point, model.RGB, float64) error {
	return nil
}
