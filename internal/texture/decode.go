package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// DecodeOptions controls how strictly images are checked.
type DecodeOptions struct {
	// Strict rejects images that carry an alpha channel.
	Strict bool
}

// Decode reads a PNG texture of the given square size. Source pixels are
// converted from the image's channel order into Color; alpha is dropped.
func Decode(name string, r io.Reader, size int, opts DecodeOptions) (*Texture, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	return FromImage(name, img, size, opts)
}

// FromImage converts a decoded image into a texture.
func FromImage(name string, img image.Image, size int, opts DecodeOptions) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrDimension, name, b.Dx(), b.Dy(), size, size)
	}
	if opts.Strict && hasAlpha(img) {
		return nil, fmt.Errorf("%w: %s", ErrAlpha, name)
	}

	texels := make([]Color, 0, size*size)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			texels = append(texels, FromStd(img.At(x, y)))
		}
	}
	return &Texture{Name: name, size: size, texels: texels}, nil
}

// hasAlpha reports whether the image stores transparency. The PNG decoder
// returns RGBA for truecolor files without alpha, so those only count when
// a pixel is actually translucent.
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.RGBA:
		return !m.Opaque()
	case *image.RGBA64:
		return !m.Opaque()
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		return false
	}
}
