package pipeline

import (
	"fmt"

	"github.com/yedell/color-challenge/internal/catalog"
	"github.com/yedell/color-challenge/internal/logger"
	"github.com/yedell/color-challenge/internal/model"
)

// Viewer shows each frame from the FrameBuffer and waits for the user to
// ask for the next one or to quit.
type Viewer struct {
	buffer  *FrameBuffer
	catalog *catalog.Catalog
	display Display
	keys    KeySource
	title   string
	logger  *logger.Logger
}

// NewViewer creates a viewer presenting through display and reading keys.
func NewViewer(buffer *FrameBuffer, cat *catalog.Catalog, display Display, keys KeySource, title string, logger *logger.Logger) *Viewer {
	return &Viewer{
		buffer:  buffer,
		catalog: cat,
		display: display,
		keys:    keys,
		title:   title,
		logger:  logger,
	}
}

// Run shows frames until quit fires or the buffer closes. A quit key fires
// quit with ReasonQuitKey. It returns the number of frames shown.
func (v *Viewer) Run(quit *Quit) (int, error) {
	ctx := quit.Context()
	shown := 0

	for ctx.Err() == nil {
		frame, err := v.buffer.Consume(ctx)
		if err != nil {
			return shown, nil
		}

		name, err := v.name(frame)
		if err != nil {
			return shown, err
		}
		view := model.View{Frame: frame, Title: v.title, Color: name}
		shown++

	prompt:
		for {
			if err := v.display.Present(ctx, view); err != nil {
				if ctx.Err() != nil {
					return shown, nil
				}
				return shown, fmt.Errorf("failed to present frame %d: %w", frame.Seq, err)
			}
			v.logger.Info("Image viewer showing: %s", name)
			v.logger.Info("Press <Enter> to view next image or 'q' to quit...")

			key, err := v.keys.WaitKey(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return shown, nil
				}
				return shown, fmt.Errorf("failed to read key: %w", err)
			}

			switch key {
			case model.KeyQuit:
				quit.Fire(ReasonQuitKey, nil)
				v.buffer.Ready()
				return shown, nil
			case model.KeyNext:
				v.buffer.Ready()
				break prompt
			}
		}
	}
	return shown, nil
}

// name returns the color name the watermarker resolved for frame, falling
// back to the catalog for frames published without one.
func (v *Viewer) name(frame *model.Frame) (string, error) {
	if frame.Color != "" {
		return frame.Color, nil
	}
	name, err := v.catalog.LookupRGB(frame.RGBAt(0, 0))
	if err != nil {
		return "", fmt.Errorf("failed to name displayed frame %d: %w", frame.Seq, err)
	}
	return name, nil
}
