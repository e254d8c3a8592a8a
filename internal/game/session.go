package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/gamedata"
	"github.com/samdwyer/dungeoncaster/internal/raycast"
	"github.com/samdwyer/dungeoncaster/internal/render"
	"github.com/samdwyer/dungeoncaster/internal/telemetry"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// DoorListener is told about every door a session opens.
type DoorListener interface {
	DoorOpened(col, row int)
}

// StepResult reports what happened during one frame.
type StepResult struct {
	Frame uint64
	// Door is set when the frame included a toggle.
	Door *world.DoorResult
}

// Session is the window-free core of the game: one level, one player and
// the frame they are drawn into. It is not safe for concurrent use.
type Session struct {
	level    *gamedata.Level
	grid     *world.Grid
	player   entity.Player
	movement entity.Movement
	renderer *render.Renderer
	frame    *render.Frame
	hits     []raycast.Hit
	frames   uint64
	doors    DoorListener
	log      *zap.Logger
}

// NewSession creates a session that renders into a width x height frame.
func NewSession(lvl *gamedata.Level, cfg Config, width, height int, log *zap.Logger) (*Session, error) {
	if lvl == nil || lvl.Grid == nil {
		return nil, errors.New("session: nil level")
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts := cfg.Render
	opts.Ceiling, opts.Floor = lvl.Ceiling, lvl.Floor
	if cfg.Ceiling != nil {
		opts.Ceiling = *cfg.Ceiling
	}
	if cfg.Floor != nil {
		opts.Floor = *cfg.Floor
	}
	// Doors opened in this session must not leak into the loaded level.
	grid := lvl.Grid.Clone()
	r, err := render.NewRenderer(grid, lvl.Textures, opts, log)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return &Session{
		level:    lvl,
		grid:     grid,
		player:   lvl.Spawn,
		movement: cfg.Movement,
		renderer: r,
		frame:    render.NewFrame(width, height, log),
		log:      log,
	}, nil
}

// SetDoorListener registers l for door openings. Nil removes it.
func (s *Session) SetDoorListener(l DoorListener) { s.doors = l }

// Player returns the current player state.
func (s *Session) Player() entity.Player { return s.player }

// Grid returns the session's grid. Open doors show up here, not in Level.
func (s *Session) Grid() *world.Grid { return s.grid }

// Level returns the loaded level.
func (s *Session) Level() *gamedata.Level { return s.level }

// Frame returns the frame drawn by the last Step.
func (s *Session) Frame() *render.Frame { return s.frame }

// Hits returns the rays cast by the last Step.
func (s *Session) Hits() []raycast.Hit { return s.hits }

// Resize changes the frame size for the next Step.
func (s *Session) Resize(width, height int) { s.frame.Resize(width, height) }

// Step applies the frame's commands and redraws. Rotations run first, then
// moves, then door toggles, each group in the order given; all of them
// finish before the sweep reads the grid.
func (s *Session) Step(ctx context.Context, cmds []Command) (StepResult, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.step")
	defer span.End()

	ordered := slices.Clone(cmds)
	slices.SortStableFunc(ordered, func(a, b Command) int { return a.phase() - b.phase() })

	var res StepResult
	for _, cmd := range ordered {
		if a, ok := cmd.action(); ok {
			s.movement.Apply(&s.player, s.grid, a)
			continue
		}
		if cmd == ToggleDoor {
			door := s.toggleDoor(ctx)
			res.Door = &door
		}
	}

	hits, err := s.renderer.Draw(ctx, s.frame, s.player)
	if err != nil {
		return res, err
	}
	s.hits = hits
	s.frames++
	res.Frame = s.frames

	span.SetAttributes(
		attribute.Int64("session.frame", int64(s.frames)),
		attribute.Int("session.commands", len(cmds)),
	)
	return res, nil
}

func (s *Session) toggleDoor(ctx context.Context) world.DoorResult {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "door.toggle")
	defer span.End()

	res := s.player.ToggleDoor(s.grid)
	span.SetAttributes(
		attribute.String("door.status", res.Status.String()),
		attribute.String("door.direction", res.Direction.String()),
		attribute.Int("door.col", res.Col),
		attribute.Int("door.row", res.Row),
	)

	switch res.Status {
	case world.DoorOpened:
		s.log.Info("door opened", zap.Int("col", res.Col), zap.Int("row", res.Row))
		if s.doors != nil {
			s.doors.DoorOpened(res.Col, res.Row)
		}
	default:
		s.log.Debug("nothing to do",
			zap.Stringer("status", res.Status),
			zap.Stringer("facing", res.Direction),
			zap.Int("cell", int(res.Cell)),
		)
	}
	return res
}
