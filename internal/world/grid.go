package world

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when the flat cell list is not size*size long.
	ErrSizeMismatch = errors.New("grid cell count does not match size")
	// ErrInvalidCell is returned for negative cell codes.
	ErrInvalidCell = errors.New("invalid cell code")
)

// Bound selects which flat indices a lookup accepts.
type Bound int

const (
	// BoundFull accepts every index in [0, N*N).
	BoundFull Bound = iota
	// BoundExcludeLast accepts [0, N*N-1). The column-line search and
	// movement use it; the last map cell is never reported by them.
	BoundExcludeLast
)

// Grid is a square map of cell codes stored row-major.
// Doors are the only cells that change after load.
type Grid struct {
	size     int
	scale    float64
	doorCode Cell
	cells    []Cell
}

// NewGrid validates a flat row-major cell list and wraps it in a Grid.
// scale is the number of world units per cell side.
func NewGrid(size int, scale float64, doorCode Cell, cells []Cell) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("grid size %d: must be at least 1", size)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("grid scale %v: must be positive", scale)
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: got %d cells, want %d for size %d", ErrSizeMismatch, len(cells), size*size, size)
	}
	owned := make([]Cell, len(cells))
	for i, c := range cells {
		if c < 0 {
			return nil, fmt.Errorf("%w: %d at index %d", ErrInvalidCell, c, i)
		}
		owned[i] = c
	}
	return &Grid{
		size:     size,
		scale:    scale,
		doorCode: doorCode,
		cells:    owned,
	}, nil
}

// Size returns the number of cells along one side.
func (g *Grid) Size() int { return g.size }

// Scale returns world units per cell.
func (g *Grid) Scale() float64 { return g.scale }

// Extent returns the side length of the map in world units.
func (g *Grid) Extent() float64 { return float64(g.size) * g.scale }

// DoorCode returns the code of cells that can be opened.
func (g *Grid) DoorCode() Cell { return g.doorCode }

// Index returns the flat index of a cell. It does not bounds-check.
func (g *Grid) Index(col, row int) int {
	return row*g.size + col
}

// InBounds returns true if the cell lies inside the map.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.size && row >= 0 && row < g.size
}

// At returns the code of the cell at (col, row).
func (g *Grid) At(col, row int) (Cell, bool) {
	if !g.InBounds(col, row) {
		return CellOpen, false
	}
	return g.cells[g.Index(col, row)], true
}

// Passable returns true if the cell is inside the map and open.
func (g *Grid) Passable(col, row int) bool {
	c, ok := g.At(col, row)
	return ok && c.IsPassable()
}

// Locate converts world coordinates to a cell. Coordinates are truncated
// toward zero, so values in (-scale, 0) land in column or row 0.
func (g *Grid) Locate(x, y float64) (col, row int, ok bool) {
	fc := x / g.scale
	fr := y / g.scale
	n := float64(g.size)
	// Written so NaN fails too.
	if !(fc > -1 && fc < n && fr > -1 && fr < n) {
		return 0, 0, false
	}
	return int(fc), int(fr), true
}

// Lookup returns the cell containing a world coordinate. ok is false when
// the coordinate falls outside the range accepted by bound.
func (g *Grid) Lookup(x, y float64, bound Bound) (Cell, bool) {
	col, row, ok := g.Locate(x, y)
	if !ok {
		return CellOpen, false
	}
	i := g.Index(col, row)
	limit := len(g.cells)
	if bound == BoundExcludeLast {
		limit--
	}
	if i < 0 || i >= limit {
		return CellOpen, false
	}
	return g.cells[i], true
}

// SetCell overwrites a cell code. It returns false if the cell is outside the map.
func (g *Grid) SetCell(col, row int, c Cell) bool {
	if !g.InBounds(col, row) || c < 0 {
		return false
	}
	g.cells[g.Index(col, row)] = c
	return true
}

// OpenDoor clears a door cell. Any other cell is left alone.
func (g *Grid) OpenDoor(col, row int) bool {
	c, ok := g.At(col, row)
	if !ok || c == CellOpen || c != g.doorCode {
		return false
	}
	return g.SetCell(col, row, CellOpen)
}

// Cells returns a copy of the row-major cell list.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:     g.size,
		scale:    g.scale,
		doorCode: g.doorCode,
		cells:    g.Cells(),
	}
}

// Count returns how many cells carry the given code.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}
