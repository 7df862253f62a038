package model

import "fmt"

// RGB is a 24-bit color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Complement returns the per-channel complement, (255,255,255) minus c.
func (c RGB) Complement() RGB {
	return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// RGBA implements color.Color. RGB values are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}
