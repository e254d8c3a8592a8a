package render

import (
	"image"
	"math"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/raycast"
	"github.com/samdwyer/dungeoncaster/internal/texture"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// Minimap colors.
var (
	MapWall   = texture.RGB(255, 255, 255)
	MapOpen   = texture.RGB(0, 0, 0)
	MapPlayer = texture.RGB(0, 255, 0)
	MapRay    = texture.RGB(0, 0, 255)
)

// DrawMinimap draws a top-down view of the grid inside rect: walls, the
// player and the rays of the last sweep. Nothing is drawn outside rect.
// It returns the cell size in pixels, 0 if rect is too small.
func DrawMinimap(f *Frame, g *world.Grid, p entity.Player, hits []raycast.Hit, rect image.Rectangle) int {
	rect = rect.Intersect(f.Bounds())
	n := g.Size()
	cell := min(rect.Dx(), rect.Dy()) / n
	if cell < 1 {
		return 0
	}

	gap := 0
	if cell >= 4 {
		gap = 1
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c, _ := g.At(col, row)
			color := MapOpen
			if c != world.CellOpen {
				color = MapWall
			}
			x, y := rect.Min.X+col*cell, rect.Min.Y+row*cell
			f.FillRect(image.Rect(x, y, x+cell-gap, y+cell-gap), color)
		}
	}

	clip := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+n*cell, rect.Min.Y+n*cell)
	toMap := func(wx, wy float64) image.Point {
		return image.Pt(
			rect.Min.X+int(wx/g.Scale()*float64(cell)),
			rect.Min.Y+int(wy/g.Scale()*float64(cell)),
		)
	}
	origin := toMap(p.X, p.Y)
	limit := g.Extent() * 2
	for _, h := range hits {
		// Boundary stops can sit far outside the map.
		if !(math.Abs(h.X) < limit && math.Abs(h.Y) < limit) {
			continue
		}
		line(f, clip, origin, toMap(h.X, h.Y), MapRay)
	}

	dot := max(cell/2, 1)
	f.FillRect(image.Rect(origin.X-dot/2, origin.Y-dot/2, origin.X-dot/2+dot, origin.Y-dot/2+dot).Intersect(clip), MapPlayer)
	return cell
}

// line draws a Bresenham line, skipping points outside clip.
func line(f *Frame, clip image.Rectangle, a, b image.Point, c texture.Color) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	for {
		if a.In(clip) {
			f.Set(a.X, a.Y, c)
		}
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
