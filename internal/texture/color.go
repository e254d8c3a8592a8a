// Package texture holds wall textures and the color type they are made of.
package texture

import "image/color"

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Shade darkens a color by halving every channel with floor division.
func Shade(c Color) Color {
	return Color{R: c.R >> 1, G: c.G >> 1, B: c.B >> 1}
}

// Packed returns the color as 0xRRGGBB, the layout of hex color values.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA converts to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromStd converts any image/color value, dropping alpha. Premultiplied
// channels are used as-is, which is exact for opaque pixels.
func FromStd(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
