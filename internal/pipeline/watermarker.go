package pipeline

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

const (
	// markerDivisor sets the marker radius to min(width, height)/markerDivisor.
	markerDivisor = 4
	// labelScaleRadius is the marker radius at which the label is drawn at scale 1.
	labelScaleRadius = 60.0
)

// Watermarker stamps each frame with its color name and a marker disc, both
// drawn in the complement of the frame's fill color.
type Watermarker struct {
	catalog *catalog.Catalog
	painter Painter
	timeout time.Duration
	logger  *logger.Logger
}

// NewWatermarker creates a watermarker drawing through painter.
func NewWatermarker(cat *catalog.Catalog, painter Painter, timeout time.Duration, logger *logger.Logger) *Watermarker {
	return &Watermarker{
		catalog: cat,
		painter: painter,
		timeout: timeout,
		logger:  logger,
	}
}

// Run moves frames from in to out, stamping each one. It stops on the end
// of in, when quit fires, or on the first stamping error, and always closes
// out before returning. A stamping error fires quit with ReasonError before
// out is closed, so downstream never mistakes it for the end of the stream.
func (w *Watermarker) Run(quit *Quit, in, out *Queue[*model.Frame]) (int, error) {
	defer out.Close()

	ctx := quit.Context()

	stamped := 0
	for ctx.Err() == nil {
		frame, err := in.Pop(ctx, w.timeout)
		switch {
		case errors.Is(err, ErrTimeout):
			continue
		case errors.Is(err, ErrClosed):
			w.logger.Info("Watermarker reached end of stream after %d frame(s)", stamped)
			return stamped, nil
		case err != nil:
			return stamped, nil
		}

		if err := w.Stamp(frame); err != nil {
			w.logger.Error("Watermarker failed: %v", err)
			quit.Fire(ReasonError, err)
			return stamped, err
		}
		if err := pushRetrying(ctx, out, frame, w.timeout); err != nil {
			return stamped, nil
		}
		stamped++
	}
	return stamped, nil
}

// Stamp draws the marker and label onto frame in place. The fill color is
// sampled from the top-left pixel; a color missing from the catalog is a
// catalog.NotFoundError.
func (w *Watermarker) Stamp(frame *model.Frame) error {
	fill := frame.RGBAt(0, 0)
	name, err := w.catalog.LookupRGB(fill)
	if err != nil {
		return fmt.Errorf("failed to name frame %d: %w", frame.Seq, err)
	}
	mark := fill.Complement()

	center := image.Pt(frame.Width/2, frame.Height/2)
	radius := min(frame.Width, frame.Height) / markerDivisor
	if err := w.painter.DrawMarker(frame, center, radius, mark); err != nil {
		return fmt.Errorf("failed to draw marker on frame %d: %w", frame.Seq, err)
	}

	scale := float64(radius) / labelScaleRadius
	size := w.painter.LabelSize(name, scale)
	origin := image.Pt((frame.Width-size.X)/2, (frame.Height-size.Y)/2-radius)
	if err := w.painter.DrawLabel(frame, name, origin, mark, scale); err != nil {
		return fmt.Errorf("failed to draw label on frame %d: %w", frame.Seq, err)
	}

	frame.Color = name
	w.logger.Info("Watermarked frame %d (%s)", frame.Seq, name)
	return nil
}
