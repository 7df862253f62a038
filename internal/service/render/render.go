// Package render holds the display plumbing shared by every renderer:
// frame encoders, a headless display and a fan-out display.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"

	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// Displayer matches pipeline.Display.
type Displayer interface {
	Present(ctx context.Context, view model.View) error
}

// Encoder turns a frame into an image file body.
type Encoder func(frame *model.Frame) ([]byte, error)

// JPEGQuality is used by EncodeJPEG.
const JPEGQuality = 90

// EncodeJPEG encodes frame with image/jpeg. It needs no cgo.
func EncodeJPEG(frame *model.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode frame %d: %w", frame.Seq, err)
	}
	return buf.Bytes(), nil
}

// Headless logs what would have been shown.
type Headless struct {
	logger *logger.Logger
}

func NewHeadless(logger *logger.Logger) *Headless {
	return &Headless{logger: logger}
}

func (h *Headless) Present(ctx context.Context, view model.View) error {
	h.logger.Info("[%s] frame %d: %s (%dx%d)", view.Title, view.Frame.Seq, view.Color, view.Frame.Width, view.Frame.Height)
	return nil
}

// Multi presents every view on all of its displays in order.
type Multi struct {
	displays []Displayer
}

func NewMulti(displays ...Displayer) *Multi {
	return &Multi{displays: displays}
}

// Add appends a display.
func (m *Multi) Add(d Displayer) {
	m.displays = append(m.displays, d)
}

// Len returns the number of displays.
func (m *Multi) Len() int {
	return len(m.displays)
}

// Present calls every display even when one fails and joins the errors.
func (m *Multi) Present(ctx context.Context, view model.View) error {
	var errs []error
	for _, d := range m.displays {
		if err := d.Present(ctx, view); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
