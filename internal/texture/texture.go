package texture

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension is returned when an image is not the declared square size.
	ErrDimension = errors.New("texture has wrong dimensions")
	// ErrAlpha is returned by strict decoding for images with an alpha channel.
	ErrAlpha = errors.New("texture has an alpha channel")
	// ErrFormat is returned for data that cannot be decoded as an image.
	ErrFormat = errors.New("unsupported texture format")
)

// Texture is an immutable square grid of texels stored row-major.
type Texture struct {
	Name   string
	size   int
	texels []Color
}

// New wraps a row-major texel list. len(texels) must be size*size.
func New(name string, size int, texels []Color) (*Texture, error) {
	if size < 1 {
		return nil, fmt.Errorf("texture %s: size %d must be positive", name, size)
	}
	if len(texels) != size*size {
		return nil, fmt.Errorf("%w: texture %s has %d texels, want %d", ErrDimension, name, len(texels), size*size)
	}
	owned := make([]Color, len(texels))
	copy(owned, texels)
	return &Texture{Name: name, size: size, texels: owned}, nil
}

// Size returns the side length in texels.
func (t *Texture) Size() int { return t.size }

// At returns the texel at (col, row). Both coordinates wrap.
func (t *Texture) At(col, row int) Color {
	col %= t.size
	if col < 0 {
		col += t.size
	}
	row %= t.size
	if row < 0 {
		row += t.size
	}
	return t.texels[row*t.size+col]
}

// Checker builds a two-color checkerboard with cells of size/8 texels.
func Checker(name string, size int, a, b Color) *Texture {
	block := max(size/8, 1)
	texels := make([]Color, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if (col/block+row/block)%2 == 0 {
				texels[row*size+col] = a
			} else {
				texels[row*size+col] = b
			}
		}
	}
	return &Texture{Name: name, size: size, texels: texels}
}

// Solid builds a single-color texture.
func Solid(name string, size int, c Color) *Texture {
	texels := make([]Color, size*size)
	for i := range texels {
		texels[i] = c
	}
	return &Texture{Name: name, size: size, texels: texels}
}
