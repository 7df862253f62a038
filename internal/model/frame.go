package model

import (
	"image"
	"image/color"
)

// Frame is a row-major RGB raster passed between pipeline stages.
// len(Pix) is always Width*Height*3.
type Frame struct {
	// Seq is the 1-based generation order of the frame.
	Seq uint64
	// Color is the catalog name of the fill, set once the frame is
	// watermarked. Empty until then.
	Color  string
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a black width x height frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Fill paints every pixel with c.
func (f *Frame) Fill(c RGB) {
	for i := 0; i+2 < len(f.Pix); i += 3 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
}

func (f *Frame) offset(x, y int) int {
	return (y*f.Width + x) * 3
}

// RGBAt returns the pixel at (x, y). Out of range coordinates return black.
func (f *Frame) RGBAt(x, y int) RGB {
	if !(image.Point{X: x, Y: y}).In(f.Bounds()) {
		return RGB{}
	}
	i := f.offset(x, y)
	return RGB{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

// SetRGB writes the pixel at (x, y); writes outside the frame are dropped.
func (f *Frame) SetRGB(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}).In(f.Bounds()) {
		return
	}
	i := f.offset(x, y)
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{Seq: f.Seq, Color: f.Color, Width: f.Width, Height: f.Height, Pix: make([]uint8, len(f.Pix))}
	copy(out.Pix, f.Pix)
	return out
}

// RGBModel converts any color to an opaque RGB value.
var RGBModel = color.ModelFunc(func(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
})

// ColorModel, Bounds, At and Set make a Frame usable with image/draw.

func (f *Frame) ColorModel() color.Model { return RGBModel }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) At(x, y int) color.Color { return f.RGBAt(x, y) }

func (f *Frame) Set(x, y int, c color.Color) {
	f.SetRGB(x, y, RGBModel.Convert(c).(RGB))
}
