// Package raycast finds the nearest wall along a ray by stepping across
// the grid's row lines and column lines independently.
package raycast

import (
	"math"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// Epsilon pulls up- and left-facing sample points off the grid line so they land
// inside the neighboring cell instead of on its boundary.
const Epsilon = 0.00001

// MaxDistance caps reported distances. Near-degenerate angles can push a
// sample point to infinity; hits never report more than this.
const MaxDistance = math.MaxFloat64

// Axis identifies the family of grid lines a hit was found on.
type Axis int

const (
	// Horizontal hits lie on a row line (constant y).
	Horizontal Axis = iota
	// Vertical hits lie on a column line (constant x).
	Vertical
)

// String returns a human-readable axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Shaded reports whether walls found on this axis are drawn darker.
// Row-line hits are shaded, column-line hits never are.
func (a Axis) Shaded() bool {
	return a == Horizontal
}

// Hit is the result of one search.
type Hit struct {
	Distance float64
	X, Y     float64    // Sample point that ended the search
	Cell     world.Cell // Wall code, or 0 if no wall was found
	Axis     Axis
	Steps    int  // Grid lines examined
	Boundary bool // Search stopped because the sample point left the map
}

// Wall reports whether the hit found a textured wall.
func (h Hit) Wall() bool {
	return h.Cell != world.CellOpen
}

// TextureCoord returns the coordinate that runs along the wall face:
// X for row-line hits, Y for column-line hits.
func (h Hit) TextureCoord() float64 {
	if h.Axis == Horizontal {
		return h.X
	}
	return h.Y
}

// Caster casts rays against a grid. It only reads the grid, so one caster
// may serve concurrent casts as long as nothing mutates the grid meanwhile.
type Caster struct {
	grid *world.Grid
	dof  int
}

// New creates a caster. Each search gives up after 2N grid lines.
func New(g *world.Grid) *Caster {
	return &Caster{grid: g, dof: 2 * g.Size()}
}

// DOF returns the maximum number of grid lines each search will examine.
func (c *Caster) DOF() int { return c.dof }

// Grid returns the grid the caster reads.
func (c *Caster) Grid() *world.Grid { return c.grid }

// Cast returns the nearer of the row-line and column-line hits. When the
// column-line hit is not strictly farther it wins the tie.
func (c *Caster) Cast(ox, oy, angle float64) Hit {
	rows, cols := c.Search(ox, oy, angle)
	return nearest(rows, cols)
}

// CastFrom casts from the player's position at an absolute angle.
func (c *Caster) CastFrom(p entity.Player, angle float64) Hit {
	return c.Cast(p.X, p.Y, angle)
}

// Search runs both line-family searches and returns each result with its
// distance filled in.
func (c *Caster) Search(ox, oy, angle float64) (rows, cols Hit) {
	a := entity.NormalizeAngle(angle)
	rows = c.searchRows(ox, oy, a)
	cols = c.searchCols(ox, oy, a)
	rows.Distance = distance(ox, oy, rows.X, rows.Y)
	cols.Distance = distance(ox, oy, cols.X, cols.Y)
	return rows, cols
}

func nearest(rows, cols Hit) Hit {
	if cols.Distance > rows.Distance {
		return rows
	}
	return cols
}

// searchRows steps across row lines using cot(angle) as the x advance.
func (c *Caster) searchRows(ox, oy, a float64) Hit {
	scale := c.grid.Scale()
	h := Hit{Axis: Horizontal}
	var xo, yo float64

	switch {
	case a == 0 || a == math.Pi:
		// Parallel to the rows: no intersection.
		h.X = ox + float64(c.dof)*scale
		h.Y = oy
		return h
	case a > math.Pi:
		// Up
		aTan := -1 / math.Tan(a)
		h.Y = math.Trunc(oy/scale)*scale - Epsilon
		h.X = (oy-h.Y)*aTan + ox
		yo = -scale
		xo = -yo * aTan
	default:
		// Down
		aTan := -1 / math.Tan(a)
		h.Y = math.Trunc(oy/scale)*scale + scale
		h.X = (oy-h.Y)*aTan + ox
		yo = scale
		xo = -yo * aTan
	}
	return c.march(h, xo, yo, world.BoundFull)
}

// searchCols steps across column lines using tan(angle) as the y advance.
func (c *Caster) searchCols(ox, oy, a float64) Hit {
	scale := c.grid.Scale()
	h := Hit{Axis: Vertical}
	nTan := -math.Tan(a)
	var xo, yo float64

	switch {
	case a == math.Pi*0.5 || a == math.Pi*1.5:
		// Parallel to the columns: no intersection.
		h.X = ox
		h.Y = oy + float64(c.dof)*scale
		return h
	case a > math.Pi*0.5 && a < math.Pi*1.5:
		// Left
		h.X = math.Trunc(ox/scale)*scale - Epsilon
		h.Y = (ox-h.X)*nTan + oy
		xo = -scale
		yo = -xo * nTan
	default:
		// Right
		h.X = math.Trunc(ox/scale)*scale + scale
		h.Y = (ox-h.X)*nTan + oy
		xo = scale
		yo = -xo * nTan
	}
	// The column search never reports the last map cell.
	return c.march(h, xo, yo, world.BoundExcludeLast)
}

// march advances the sample point one grid line at a time until it finds a wall,
// leaves the map or runs out of depth.
func (c *Caster) march(h Hit, xo, yo float64, bound world.Bound) Hit {
	for h.Steps < c.dof {
		cell, ok := c.grid.Lookup(h.X, h.Y, bound)
		h.Steps++
		if !ok {
			h.Boundary = true
			return h
		}
		if cell != world.CellOpen {
			h.Cell = cell
			return h
		}
		h.X += xo
		h.Y += yo
	}
	return h
}

func distance(ax, ay, bx, by float64) float64 {
	d := math.Hypot(bx-ax, by-ay)
	if !(d < MaxDistance) {
		return MaxDistance
	}
	return d
}
