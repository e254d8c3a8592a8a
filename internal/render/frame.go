// Package render draws first-person views and minimaps into frame buffers.
package render

import (
	"image"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncaster/internal/texture"
)

// Frame is a fixed-size pixel buffer. Writes outside the buffer are
// dropped and counted. Concurrent writers are safe as long as they touch
// different pixels.
type Frame struct {
	width, height int
	pix           []texture.Color
	rejected      atomic.Int64
	log           *zap.Logger
}

// NewFrame allocates a black frame. A nil logger discards rejection logs.
func NewFrame(width, height int, log *zap.Logger) *Frame {
	if log == nil {
		log = zap.NewNop()
	}
	width, height = max(width, 0), max(height, 0)
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]texture.Color, width*height),
		log:    log,
	}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Bounds returns the frame rectangle.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.width, f.height) }

// Resize reallocates the buffer if the size changed. The contents are not kept.
func (f *Frame) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height
	f.pix = make([]texture.Color, width*height)
}

// Set writes one pixel. It returns false, and writes nothing, when (x, y)
// is outside the frame.
func (f *Frame) Set(x, y int, c texture.Color) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		f.rejected.Add(1)
		f.log.Warn("frame write out of bounds",
			zap.Int("x", x),
			zap.Int("y", y),
			zap.Int("width", f.width),
			zap.Int("height", f.height),
		)
		return false
	}
	f.pix[y*f.width+x] = c
	return true
}

// At returns the pixel at (x, y), or black outside the frame.
func (f *Frame) At(x, y int) texture.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return texture.Color{}
	}
	return f.pix[y*f.width+x]
}

// Fill paints the whole frame.
func (f *Frame) Fill(c texture.Color) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

// FillRect paints the part of r that overlaps the frame.
func (f *Frame) FillRect(r image.Rectangle, c texture.Color) {
	r = r.Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.pix[y*f.width : (y+1)*f.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c
		}
	}
}

// Rejected returns how many writes fell outside the frame.
func (f *Frame) Rejected() int64 { return f.rejected.Load() }

// Digest hashes the packed RGB pixels. Equal frames have equal digests.
func (f *Frame) Digest() uint64 {
	buf := make([]byte, 0, len(f.pix)*3)
	for _, c := range f.pix {
		buf = append(buf, c.R, c.G, c.B)
	}
	return xxhash.Sum64(buf)
}

// Image copies the frame into an opaque RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, c := range f.pix {
		img.SetRGBA(i%f.width, i/f.width, c.RGBA())
	}
	return img
}
