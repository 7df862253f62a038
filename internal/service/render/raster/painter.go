// Package raster draws watermarks in pure Go, for headless runs and tests.
package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/yedell/color-challenge/internal/model"
)

// glyphScale stretches the 13px basic face so that a label at scale 1 is
// about as tall as an OpenCV Hershey label at scale 1.
const glyphScale = 22.0 / 13.0

// Painter draws markers and labels onto frames with golang.org/x/image.
type Painter struct {
	face font.Face
}

func NewPainter() *Painter {
	return &Painter{face: basicfont.Face7x13}
}

// DrawMarker fills every pixel within radius of center.
func (p *Painter) DrawMarker(frame *model.Frame, center image.Point, radius int, c model.RGB) error {
	if radius < 0 {
		return fmt.Errorf("negative marker radius %d", radius)
	}
	r2 := radius * radius
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= r2 {
				frame.SetRGB(x, y, c)
			}
		}
	}
	return nil
}

// nativeSize is the label size at the face's own pixel size.
func (p *Painter) nativeSize(text string) image.Point {
	return image.Pt(font.MeasureString(p.face, text).Ceil(), p.face.Metrics().Ascent.Ceil())
}

// LabelSize returns the scaled width and cap height of text.
func (p *Painter) LabelSize(text string, scale float64) image.Point {
	native := p.nativeSize(text)
	f := scale * glyphScale
	return image.Pt(int(math.Round(float64(native.X)*f)), int(math.Round(float64(native.Y)*f)))
}

// DrawLabel renders text at native size into a mask, scales the mask with
// nearest-neighbour sampling and composites it onto frame. origin is the
// bottom-left corner of the label; parts outside the frame are clipped.
func (p *Painter) DrawLabel(frame *model.Frame, text string, origin image.Point, c model.RGB, scale float64) error {
	size := p.LabelSize(text, scale)
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}

	native := p.nativeSize(text)
	mask := image.NewAlpha(image.Rect(0, 0, native.X, native.Y))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: p.face,
		Dot:  fixed.P(0, native.Y),
	}
	d.DrawString(text)

	scaled := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	dst := image.Rect(origin.X, origin.Y-size.Y, origin.X+size.X, origin.Y)
	draw.DrawMask(frame, dst, image.NewUniform(c), image.Point{}, scaled, image.Point{}, draw.Over)
	return nil
}
