package game

import (
	"time"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/render"
	"github.com/samdwyer/dungeoncaster/internal/texture"
)

// Config holds game configuration options.
type Config struct {
	Movement entity.Movement
	// Render.Ceiling and Render.Floor are replaced by the level colors
	// unless an override is set below.
	Render render.Options
	// Nil uses the level's color.
	Ceiling, Floor *texture.Color
	// Tick is the frame period of the terminal loop.
	Tick time.Duration
	// Minimap overlays the top-down map on the first-person view.
	Minimap bool
}

// DefaultTick is used when Config.Tick is not positive.
const DefaultTick = 50 * time.Millisecond
