package gamedata

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/dungeoncaster/internal/texture"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "#F00") to a texture.Color.
func ParseHexColor(hex string) (texture.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return texture.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return texture.RGB(r, g, b), nil
}

// MustParseHexColor converts a hex color string to texture.Color, panicking on error.
func MustParseHexColor(hex string) texture.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
