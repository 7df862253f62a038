package pipeline

import (
	"context"
	"image"

	"github.com/yedell/color-challenge/internal/model"
)

// Painter draws the watermark onto a frame in place.
type Painter interface {
	// DrawMarker fills a disc of radius around center.
	DrawMarker(frame *model.Frame, center image.Point, radius int, c model.RGB) error
	// LabelSize returns the width and height text occupies at scale.
	LabelSize(text string, scale float64) image.Point
	// DrawLabel writes text with origin at the bottom-left of the label.
	DrawLabel(frame *model.Frame, text string, origin image.Point, c model.RGB, scale float64) error
}

// Display shows a view to the user. Present may block.
type Display interface {
	Present(ctx context.Context, view model.View) error
}

// KeySource blocks until the user produces a key or ctx ends.
type KeySource interface {
	WaitKey(ctx context.Context) (model.Key, error)
}
