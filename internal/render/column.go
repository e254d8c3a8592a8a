package render

import (
	"math"

	"github.com/samdwyer/dungeoncaster/internal/raycast"
	"github.com/samdwyer/dungeoncaster/internal/texture"
)

// maxColumnHeight keeps projected heights finite when a ray starts on a wall.
const maxColumnHeight = 1e12

// Column is the strip of frame columns [X, X+Width) filled by one ray.
type Column struct {
	Index int
	X     int
	Width int
}

// Columns splits a frame width between rays. Every frame column belongs to
// exactly one ray; strips differ in width by at most one.
func Columns(width, rays int) []Column {
	if rays < 1 || width < 1 {
		return nil
	}
	rays = min(rays, width)
	cols := make([]Column, rays)
	for i := range cols {
		x0 := i * width / rays
		x1 := (i + 1) * width / rays
		cols[i] = Column{Index: i, X: x0, Width: x1 - x0}
	}
	return cols
}

// WallHeight is the projected height of a wall at the given distance.
func WallHeight(scale, screenHeight, distance float64) float64 {
	h := scale * screenHeight / distance
	if !(h < maxColumnHeight) {
		return maxColumnHeight
	}
	return h
}

// RenderColumn draws the wall slice for one hit. The wall is centered
// vertically and split into one segment per texture row; segments share
// their end points and cover pixels whose centers fall inside them, so
// consecutive segments never overlap or leave a gap. Pixels off the top or
// bottom are clipped. It returns the number of frame rows written.
func RenderColumn(f *Frame, hit raycast.Hit, col Column, scale float64, textures *texture.Store) int {
	if !hit.Wall() || col.Width < 1 || textures == nil {
		return 0
	}
	tex, ok := textures.ForCell(int(hit.Cell))
	if !ok {
		return 0
	}

	size := tex.Size()
	screenH := float64(f.Height())
	h := WallHeight(scale, screenH, hit.Distance)
	offset := screenH/2 - h/2
	seg := h / float64(size)

	texCol := int(math.Mod(math.Floor(hit.TextureCoord()/(scale/float64(size))), float64(size)))
	shaded := hit.Axis.Shaded()

	x0 := max(col.X, 0)
	x1 := min(col.X+col.Width, f.Width())

	// Each segment starts where the previous one ended.
	rows := 0
	end := offset
	for r := 0; r < size; r++ {
		start := end
		end = start + seg
		if end <= 0 {
			continue
		}
		if start >= screenH {
			break
		}
		y0 := int(math.Ceil(math.Max(start, 0) - 0.5))
		y1 := int(math.Ceil(math.Min(end, screenH) - 0.5))
		y0, y1 = max(y0, 0), min(y1, f.Height())
		if y0 >= y1 {
			continue
		}

		c := tex.At(texCol, r)
		if shaded {
			c = texture.Shade(c)
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				f.Set(x, y, c)
			}
		}
		rows += y1 - y0
	}
	return rows
}
