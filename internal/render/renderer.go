package render

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/raycast"
	"github.com/samdwyer/dungeoncaster/internal/telemetry"
	"github.com/samdwyer/dungeoncaster/internal/texture"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// DefaultFOV is the horizontal field of view in radians.
const DefaultFOV = 1.0

// Options configures a Renderer.
type Options struct {
	FOV     float64
	Rays    int // Rays per frame; 0 means one per frame column
	Workers int // Concurrent column batches; 1 or less renders sequentially
	Ceiling texture.Color
	Floor   texture.Color
}

// Renderer draws first-person frames of a grid.
type Renderer struct {
	grid     *world.Grid
	caster   *raycast.Caster
	textures *texture.Store
	opts     Options
	log      *zap.Logger
}

// NewRenderer creates a renderer for a grid and its textures.
func NewRenderer(g *world.Grid, textures *texture.Store, opts Options, log *zap.Logger) (*Renderer, error) {
	if g == nil {
		return nil, errors.New("renderer: nil grid")
	}
	if textures == nil {
		return nil, errors.New("renderer: nil texture store")
	}
	if opts.FOV <= 0 {
		opts.FOV = DefaultFOV
	}
	if opts.Rays < 0 {
		return nil, fmt.Errorf("renderer: rays %d must not be negative", opts.Rays)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		grid:     g,
		caster:   raycast.New(g),
		textures: textures,
		opts:     opts,
		log:      log,
	}, nil
}

// Caster returns the caster used for sweeps.
func (r *Renderer) Caster() *raycast.Caster { return r.caster }

// Rays returns the number of rays cast for a frame of the given width.
func (r *Renderer) Rays(width int) int {
	if r.opts.Rays == 0 || r.opts.Rays > width {
		return width
	}
	return r.opts.Rays
}

// RayAngle returns the absolute angle of ray i out of rays. Ray 0 is the
// leftmost edge of the field of view.
func (r *Renderer) RayAngle(p entity.Player, i, rays int) float64 {
	return p.Angle + (float64(i)/float64(rays))*r.opts.FOV - r.opts.FOV/2
}

// Draw fills the ceiling and floor, then casts one ray per column strip and
// draws the wall slices. The grid must not change while Draw runs. It
// returns the hits in ray order.
func (r *Renderer) Draw(ctx context.Context, f *Frame, p entity.Player) ([]raycast.Hit, error) {
	tracer := telemetry.Tracer("render")
	ctx, span := tracer.Start(ctx, "render.frame")
	defer span.End()

	half := f.Height() / 2
	f.FillRect(image.Rect(0, 0, f.Width(), half), r.opts.Ceiling)
	f.FillRect(image.Rect(0, half, f.Width(), f.Height()), r.opts.Floor)

	cols := Columns(f.Width(), r.Rays(f.Width()))
	hits := make([]raycast.Hit, len(cols))
	before := f.Rejected()

	var err error
	if r.opts.Workers > 1 && len(cols) > 1 {
		err = r.sweepParallel(ctx, f, p, cols, hits)
	} else {
		err = r.sweep(ctx, f, p, cols, hits)
	}

	span.SetAttributes(
		attribute.Int("render.rays", len(cols)),
		attribute.Int("render.dof", r.caster.DOF()),
		attribute.Int("render.workers", max(r.opts.Workers, 1)),
		attribute.Int("render.width", f.Width()),
		attribute.Int("render.height", f.Height()),
	)
	if rejected := f.Rejected() - before; rejected > 0 {
		r.log.Warn("frame had out-of-bounds writes", zap.Int64("count", rejected))
	}
	if err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	return hits, nil
}

func (r *Renderer) sweep(ctx context.Context, f *Frame, p entity.Player, cols []Column, hits []raycast.Hit) error {
	for i, col := range cols {
		if err := ctx.Err(); err != nil {
			return err
		}
		hits[i] = r.drawColumn(f, p, col, len(cols))
	}
	return nil
}

// sweepParallel splits the columns into one batch per worker. Each column
// owns its strip of the frame and its slot in hits.
func (r *Renderer) sweepParallel(ctx context.Context, f *Frame, p entity.Player, cols []Column, hits []raycast.Hit) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	batch := (len(cols) + r.opts.Workers - 1) / r.opts.Workers
	for lo := 0; lo < len(cols); lo += batch {
		hi := min(lo+batch, len(cols))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				hits[i] = r.drawColumn(f, p, cols[i], len(cols))
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Renderer) drawColumn(f *Frame, p entity.Player, col Column, rays int) raycast.Hit {
	hit := r.caster.CastFrom(p, r.RayAngle(p, col.Index, rays))
	RenderColumn(f, hit, col, r.grid.Scale(), r.textures)
	return hit
}
