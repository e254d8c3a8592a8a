// Package world provides the dungeon grid, door handling and level generation.
package world

// Cell is a grid cell code. Zero is open floor; any positive value is
// impassable and selects the texture at index code-1.
type Cell int

const (
	// CellOpen is walkable floor that rays pass through.
	CellOpen Cell = 0
	// CellWall is the plain wall code used by generated levels.
	CellWall Cell = 1
	// CellDoorLeft and CellDoorRight frame a door in generated levels.
	CellDoorLeft  Cell = 2
	CellDoorRight Cell = 4
	// CellDoor is the default door code. Levels may declare another one.
	CellDoor Cell = 3
)

// IsPassable returns true if the cell can be walked on.
func (c Cell) IsPassable() bool {
	return c == CellOpen
}

// Rune returns the character used when drawing the cell on a map overlay.
func (c Cell) Rune() rune {
	switch {
	case c == CellOpen:
		return '.'
	case c == CellDoor:
		return '+'
	default:
		return '#'
	}
}
