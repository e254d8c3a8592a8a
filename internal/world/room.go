package world

// Room is a rectangular carved area, in cell coordinates.
type Room struct {
	X, Y          int // Top-left cell
	Width, Height int
}

// Center returns the center cell of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given cell is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// OnEdge returns true if the cell lies on the ring just outside the room.
func (r Room) OnEdge(x, y int) bool {
	outer := Room{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}
	return outer.Contains(x, y) && !r.Contains(x, y)
}
