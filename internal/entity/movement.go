package entity

import (
	"math"

	"github.com/samdwyer/dungeoncaster/internal/world"
)

// Movement holds per-command step sizes.
type Movement struct {
	Speed         float64 // World units per move command
	RotationSpeed float64 // Radians per rotate command
}

// Action is a player command the movement model understands.
type Action int

const (
	ActionRotateLeft Action = iota
	ActionRotateRight
	ActionForward
	ActionBackward
)

// Apply performs one action against the grid.
func (m Movement) Apply(p *Player, g *world.Grid, a Action) {
	switch a {
	case ActionRotateLeft:
		p.Rotate(-m.RotationSpeed)
	case ActionRotateRight:
		p.Rotate(m.RotationSpeed)
	case ActionForward:
		dx, dy := p.Heading(m.Speed)
		p.MoveRelative(g, dx, dy)
	case ActionBackward:
		dx, dy := p.Heading(m.Speed)
		p.MoveRelative(g, -dx, -dy)
	}
}

// MoveRelative moves the player by (dx, dy), resolving each axis on its own
// so the player slides along walls. The X candidate is checked against the
// current row, then the Y candidate against the possibly updated column.
// Cells outside the map count as blocked.
func (p *Player) MoveRelative(g *world.Grid, dx, dy float64) {
	if newX := p.X + dx; open(g, newX, p.Y) {
		p.X = newX
	}
	if newY := p.Y + dy; open(g, p.X, newY) {
		p.Y = newY
	}

	extent := g.Extent()
	p.X = math.Max(0, math.Min(p.X, extent))
	p.Y = math.Max(0, math.Min(p.Y, extent))
	p.Angle = NormalizeAngle(p.Angle)
}

func open(g *world.Grid, x, y float64) bool {
	c, ok := g.Lookup(x, y, world.BoundExcludeLast)
	return ok && c.IsPassable()
}

// ToggleDoor opens the door the player faces, if any.
func (p Player) ToggleDoor(g *world.Grid) world.DoorResult {
	return g.ToggleDoor(p.X, p.Y, NormalizeAngle(p.Angle))
}
