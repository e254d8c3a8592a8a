package world

import "math"

// Direction is one of the four neighbors a player can face.
type Direction int

const (
	// DirRight is the neighbor at column+1.
	DirRight Direction = iota
	// DirUp is the neighbor at row-1 (index - N). Rows grow with y, so
	// this is the way a player heading toward negative y faces.
	DirUp
	// DirLeft is the neighbor at column-1.
	DirLeft
	// DirDown is the neighbor at row+1 (index + N).
	DirDown
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Offset returns the column and row delta of the neighbor.
func (d Direction) Offset() (dc, dr int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	default:
		return 1, 0
	}
}

// Facing buckets an angle in [0, 2π) into 90 degree quadrants around the
// player's heading (cos, sin). Upper boundaries are inclusive: exactly π/4
// still faces right.
func Facing(angle float64) Direction {
	switch {
	case angle > math.Pi/4 && angle <= 3*math.Pi/4:
		return DirDown
	case angle > 3*math.Pi/4 && angle <= 5*math.Pi/4:
		return DirLeft
	case angle > 5*math.Pi/4 && angle <= 7*math.Pi/4:
		return DirUp
	default:
		return DirRight
	}
}

// DoorStatus is the outcome of a door toggle.
type DoorStatus int

const (
	// DoorOpened means the faced door was removed from the map.
	DoorOpened DoorStatus = iota
	// DoorNone means the faced cell is not a door.
	DoorNone
	// DoorOutOfBounds means the faced cell is outside the map.
	DoorOutOfBounds
)

// String returns a human-readable status name.
func (s DoorStatus) String() string {
	switch s {
	case DoorOpened:
		return "opened"
	case DoorNone:
		return "none"
	case DoorOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// DoorResult describes which cell a toggle inspected.
type DoorResult struct {
	Status    DoorStatus
	Col, Row  int
	Cell      Cell // Code found before the toggle
	Direction Direction
}

// ToggleDoor opens the door the player at (x, y) is facing. Opening is
// one-way: the door cell becomes open floor and cannot be closed again, so a
// repeated toggle at the same spot is a no-op.
func (g *Grid) ToggleDoor(x, y, angle float64) DoorResult {
	dir := Facing(angle)
	col, row, ok := g.Locate(x, y)
	if !ok {
		return DoorResult{Status: DoorOutOfBounds, Col: col, Row: row, Direction: dir}
	}
	dc, dr := dir.Offset()
	col, row = col+dc, row+dr

	c, ok := g.At(col, row)
	res := DoorResult{Col: col, Row: row, Cell: c, Direction: dir}
	switch {
	case !ok:
		res.Status = DoorOutOfBounds
	case g.OpenDoor(col, row):
		res.Status = DoorOpened
	default:
		res.Status = DoorNone
	}
	return res
}
