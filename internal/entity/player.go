// Package entity provides the player and its movement through the grid.
package entity

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Player is the viewer's position in world units and heading in radians.
type Player struct {
	X, Y  float64
	Angle float64 // Always in [0, 2π) after any method call
}

// NewPlayer creates a player at the given world position.
func NewPlayer(x, y, angle float64) Player {
	return Player{X: x, Y: y, Angle: NormalizeAngle(angle)}
}

// NormalizeAngle wraps an angle into [0, 2π). Non-finite input yields 0.
func NormalizeAngle(a float64) float64 {
	if a >= 0 && a < Tau {
		return a
	}
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	// Tiny negatives round up to exactly Tau after the addition.
	if a >= Tau {
		a = 0
	}
	return a
}

// Rotate turns the player by delta radians.
func (p *Player) Rotate(delta float64) {
	p.Angle = NormalizeAngle(p.Angle + delta)
}

// Heading returns the per-step movement delta at the given speed.
func (p Player) Heading(speed float64) (dx, dy float64) {
	return math.Cos(p.Angle) * speed, math.Sin(p.Angle) * speed
}
