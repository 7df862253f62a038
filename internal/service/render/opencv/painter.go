// Package opencv renders frames with gocv: the watermark is drawn with
// Hershey fonts and frames are shown in a HighGUI window.
package opencv

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/yedell/color-challenge/internal/model"
)

const (
	font = gocv.FontHersheyDuplex
	// thicknessRadius is the marker radius per stroke pixel of the label.
	thicknessRadius = 40.0
	// scaleRadius must match the watermarker's label scale.
	scaleRadius = 60.0
)

// Painter draws through OpenCV. Frames stay RGB, so colors are handed to
// gocv with red and blue swapped.
type Painter struct{}

func NewPainter() *Painter {
	return &Painter{}
}

// scalar converts c to the BGR order gocv writes into channel 0..2.
func scalar(c model.RGB) color.RGBA {
	return color.RGBA{R: c.B, G: c.G, B: c.R, A: 255}
}

func thickness(scale float64) int {
	return max(1, int(scale*scaleRadius/thicknessRadius))
}

// withMat wraps frame in a Mat, runs fn on it and copies the pixels back.
func withMat(frame *model.Frame, fn func(mat *gocv.Mat) error) error {
	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Pix)
	if err != nil {
		return fmt.Errorf("failed to wrap frame %d: %w", frame.Seq, err)
	}
	defer mat.Close()

	if err := fn(&mat); err != nil {
		return err
	}
	copy(frame.Pix, mat.ToBytes())
	return nil
}

func (p *Painter) DrawMarker(frame *model.Frame, center image.Point, radius int, c model.RGB) error {
	return withMat(frame, func(mat *gocv.Mat) error {
		if err := gocv.Circle(mat, center, radius, scalar(c), -1); err != nil {
			return fmt.Errorf("failed to draw circle: %w", err)
		}
		return nil
	})
}

func (p *Painter) LabelSize(text string, scale float64) image.Point {
	return gocv.GetTextSize(text, font, scale, thickness(scale))
}

func (p *Painter) DrawLabel(frame *model.Frame, text string, origin image.Point, c model.RGB, scale float64) error {
	return withMat(frame, func(mat *gocv.Mat) error {
		if err := gocv.PutText(mat, text, origin, font, scale, scalar(c), thickness(scale)); err != nil {
			return fmt.Errorf("failed to draw text: %w", err)
		}
		return nil
	})
}
