package game

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/dungeoncaster/internal/gamedata"
	"github.com/samdwyer/dungeoncaster/internal/render"
	"github.com/samdwyer/dungeoncaster/internal/telemetry"
	"github.com/samdwyer/dungeoncaster/internal/ui"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// Game drives a Session from a terminal screen.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	tick     time.Duration
	view     ViewMode
	minimap  bool
	pending  []Command
	status   string
	fps      fpsCounter
	running  bool
	log      *zap.Logger
}

// New creates a game for a loaded level on an initialized screen.
func New(screen *ui.Screen, lvl *gamedata.Level, cfg Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	renderer := ui.NewRenderer(screen)
	w, h := renderer.FrameSize()
	session, err := NewSession(lvl, cfg, w, h, log)
	if err != nil {
		return nil, err
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Game{
		screen:   screen,
		renderer: renderer,
		session:  session,
		tick:     tick,
		view:     ViewFirstPerson,
		minimap:  cfg.Minimap,
		running:  true,
		log:      log,
	}, nil
}

// Session returns the session the game drives.
func (g *Game) Session() *Session { return g.session }

// View returns the current view mode.
func (g *Game) View() ViewMode { return g.view }

// SetDoorListener forwards to the session.
func (g *Game) SetDoorListener(l DoorListener) { g.session.SetDoorListener(l) }

// Run executes the main game loop until the player quits or ctx ends.
// Input is read on its own goroutine; commands received between ticks are
// applied together on the next frame.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	_, initSpan := tracer.Start(ctx, "game.init")
	lvl := g.session.Level()
	p := g.session.Player()
	initSpan.SetAttributes(
		attribute.String("level.name", lvl.Name),
		attribute.Int("level.size", lvl.Grid.Size()),
		attribute.Int("level.doors", lvl.Grid.Count(lvl.Grid.DoorCode())),
		attribute.Float64("player.start_x", p.X),
		attribute.Float64("player.start_y", p.Y),
	)
	initSpan.End()
	g.log.Info("game started",
		zap.String("level", lvl.Name),
		zap.Duration("tick", g.tick),
	)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	if err := g.frame(ctx); err != nil {
		return err
	}
	for g.running {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.handleEvent(ev)
		case <-ticker.C:
			if err := g.frame(ctx); err != nil {
				return err
			}
		}
	}
	g.log.Info("game stopped", zap.Uint64("frames", g.session.frames))
	return nil
}

func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent queues commands or reacts to driver-level input.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cmd, ok := KeyCommand(ev)
		if !ok {
			return
		}
		switch cmd {
		case Quit:
			g.running = false
		case ToggleMap:
			g.view = g.view.Next()
			g.log.Debug("view changed", zap.Stringer("view", g.view))
		default:
			g.pending = append(g.pending, cmd)
		}
	case *tcell.EventResize:
		g.screen.Sync()
		g.session.Resize(g.renderer.FrameSize())
	}
}

// frame steps the session with the queued commands and redraws the screen.
func (g *Game) frame(ctx context.Context) error {
	cmds := g.pending
	g.pending = nil

	res, err := g.session.Step(ctx, cmds)
	if err != nil {
		return fmt.Errorf("frame %d: %w", g.session.frames+1, err)
	}
	if res.Door != nil {
		g.status = doorMessage(*res.Door)
	}
	g.fps.tick(time.Now())

	switch g.view {
	case ViewMap:
		g.renderer.RenderMap(g.session.Grid(), g.session.Player())
	default:
		f := g.session.Frame()
		if g.minimap {
			side := min(f.Width(), f.Height()) / 3
			render.DrawMinimap(f, g.session.Grid(), g.session.Player(), g.session.Hits(), image.Rect(0, 0, side, side))
		}
		g.renderer.Present(f)
	}

	_, h := g.screen.Size()
	g.renderer.RenderMessage(g.statusLine(), h-1)
	g.renderer.Show()
	return nil
}

func (g *Game) statusLine() string {
	p := g.session.Player()
	line := fmt.Sprintf("%s | %.0f fps | x %.1f y %.1f a %.2f", g.view, g.fps.rate, p.X, p.Y, p.Angle)
	if g.status != "" {
		line += " | " + g.status
	}
	return line
}

func doorMessage(res world.DoorResult) string {
	switch res.Status {
	case world.DoorOpened:
		return fmt.Sprintf("door opened at %d,%d", res.Col, res.Row)
	case world.DoorOutOfBounds:
		return "nothing there"
	default:
		return "nothing to open"
	}
}

// fpsCounter averages the frame rate over one-second windows.
type fpsCounter struct {
	start  time.Time
	frames int
	rate   float64
}

func (c *fpsCounter) tick(now time.Time) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	if elapsed := now.Sub(c.start); elapsed >= time.Second {
		c.rate = float64(c.frames) / elapsed.Seconds()
		c.start = now
		c.frames = 0
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
