package raycast

import (
	"math"
	"testing"

	"github.com/samdwyer/dungeoncaster/internal/world"
)

const tolerance = 1e-9

func mustGrid(t *testing.T, size int, scale float64, cells []world.Cell) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(size, scale, world.CellDoor, cells)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	return g
}

// cell returns a 3x3 map that is solid apart from the center.
func cell(t *testing.T) *world.Grid {
	return mustGrid(t, 3, 10, []world.Cell{
		1, 1, 1,
		1, 0, 1,
		1, 1, 1,
	})
}

func TestCastFromCenterOfClosedCell(t *testing.T) {
	c := New(cell(t))

	tests := []struct {
		name  string
		angle float64
		want  float64
		axis  Axis
	}{
		{"right", 0, 5, Vertical},
		{"down", math.Pi / 2, 5, Horizontal},
		{"left", math.Pi, 5 + Epsilon, Vertical},
		{"up", math.Pi * 1.5, 5 + Epsilon, Horizontal},
	}
	for _, tt := range tests {
		hit := c.Cast(15, 15, tt.angle)
		if math.Abs(hit.Distance-tt.want) > tolerance {
			t.Errorf("%s: Cast() distance = %v, want %v", tt.name, hit.Distance, tt.want)
		}
		if hit.Axis != tt.axis {
			t.Errorf("%s: Cast() axis = %v, want %v", tt.name, hit.Axis, tt.axis)
		}
		if hit.Cell != world.CellWall || hit.Boundary {
			t.Errorf("%s: Cast() = %+v, want a wall hit", tt.name, hit)
		}
	}
}

func TestCastEpsilonKeepsSampleInsideNeighbor(t *testing.T) {
	// The wall to the left starts exactly at x=10. Without the epsilon the
	// sample point would sit on the line and read the open center cell.
	g := mustGrid(t, 3, 10, []world.Cell{
		1, 1, 1,
		6, 0, 1,
		1, 1, 1,
	})
	hit := New(g).Cast(17, 15, math.Pi)
	if hit.Cell != 6 {
		t.Fatalf("Cast() cell = %v, want 6", hit.Cell)
	}
	if want := 7 + Epsilon; math.Abs(hit.Distance-want) > tolerance {
		t.Errorf("Cast() distance = %v, want %v", hit.Distance, want)
	}
	if math.Abs(hit.X-(10-Epsilon)) > tolerance {
		t.Errorf("Cast() X = %v, want %v", hit.X, 10-Epsilon)
	}
}

func TestCastDiagonalDistance(t *testing.T) {
	g := mustGrid(t, 4, 10, []world.Cell{
		1, 1, 1, 1,
		1, 0, 0, 1,
		1, 0, 0, 1,
		1, 1, 1, 1,
	})
	hit := New(g).Cast(15, 15, math.Pi/4)
	// The ray leaves through the corner at (30,30).
	want := math.Hypot(15, 15)
	if math.Abs(hit.Distance-want) > 1e-6 {
		t.Errorf("Cast(π/4) distance = %v, want %v", hit.Distance, want)
	}
}

func TestCastNormalizesAngle(t *testing.T) {
	c := New(cell(t))
	base := c.Cast(12, 17, 0.3)
	for _, a := range []float64{0.3 + 2*math.Pi, 0.3 - 2*math.Pi, 0.3 + 8*math.Pi} {
		got := c.Cast(12, 17, a)
		if math.Abs(got.Distance-base.Distance) > 1e-9 || got.Axis != base.Axis || got.Cell != base.Cell {
			t.Errorf("Cast(%v) = %+v, want %+v", a, got, base)
		}
	}
}

func TestCastDeterministic(t *testing.T) {
	g := mustGrid(t, 5, 24, []world.Cell{
		1, 1, 1, 1, 1,
		1, 0, 0, 2, 1,
		1, 0, 0, 0, 1,
		1, 3, 0, 0, 1,
		1, 1, 1, 1, 1,
	})
	c := New(g)
	for i := 0; i < 360; i++ {
		a := float64(i) * math.Pi / 180
		first := c.Cast(50, 61, a)
		second := c.Cast(50, 61, a)
		if first != second {
			t.Fatalf("Cast(%v) not repeatable: %+v then %+v", a, first, second)
		}
		if first.Axis.Shaded() != (first.Axis == Horizontal) {
			t.Fatalf("Cast(%v) axis %v has inconsistent shading", a, first.Axis)
		}
	}
}

func TestCastDepthOfFieldInOpenMap(t *testing.T) {
	const n = 8
	g := mustGrid(t, n, 10, make([]world.Cell, n*n))
	c := New(g)
	if c.DOF() != 2*n {
		t.Fatalf("DOF() = %d, want %d", c.DOF(), 2*n)
	}

	// Both searches stop within DOF lines of an origin inside the map.
	extent := float64(c.DOF()) * g.Scale() * math.Sqrt2
	for i := 0; i < 720; i++ {
		a := float64(i) * math.Pi / 360
		rows, cols := c.Search(40, 40, a)
		if rows.Steps > c.DOF() || cols.Steps > c.DOF() {
			t.Fatalf("Search(%v) steps = (%d,%d), exceeds DOF %d", a, rows.Steps, cols.Steps, c.DOF())
		}
		hit := c.Cast(40, 40, a)
		if math.IsInf(hit.Distance, 0) || math.IsNaN(hit.Distance) {
			t.Fatalf("Cast(%v) distance = %v, want finite", a, hit.Distance)
		}
		if hit.Distance > extent {
			t.Errorf("Cast(%v) distance = %v, exceeds extent %v", a, hit.Distance, extent)
		}
		if hit.Wall() {
			t.Errorf("Cast(%v) found wall %v in an open map", a, hit.Cell)
		}
	}
}

func TestCastDegenerateExhaustsDepth(t *testing.T) {
	const n = 4
	g := mustGrid(t, n, 10, make([]world.Cell, n*n))
	c := New(g)

	rows, _ := c.Search(15, 15, 0)
	if rows.Steps != 0 || rows.Boundary {
		t.Errorf("row search along a row = %+v, want no lookups", rows)
	}
	if want := float64(2*n) * 10; math.Abs(rows.Distance-want) > tolerance {
		t.Errorf("row search distance = %v, want %v", rows.Distance, want)
	}

	_, cols := c.Search(15, 15, math.Pi/2)
	if cols.Steps != 0 {
		t.Errorf("column search along a column took %d steps, want 0", cols.Steps)
	}
	if want := float64(2*n) * 10; math.Abs(cols.Distance-want) > tolerance {
		t.Errorf("column search distance = %v, want %v", cols.Distance, want)
	}
}

func TestCastNearDegenerateStaysFinite(t *testing.T) {
	c := New(cell(t))
	for _, a := range []float64{5e-324, 1e-300, math.Pi - 1e-16, math.Pi/2 + 1e-16, 2*math.Pi - 1e-16} {
		hit := c.Cast(15, 15, a)
		if math.IsInf(hit.Distance, 0) || math.IsNaN(hit.Distance) {
			t.Errorf("Cast(%v) distance = %v, want finite", a, hit.Distance)
		}
		if !hit.Wall() {
			t.Errorf("Cast(%v) = %+v, want the adjacent wall", a, hit)
		}
	}
}

func TestCastOriginOutsideGrid(t *testing.T) {
	c := New(cell(t))
	hit := c.Cast(-100, 15, 0.2)
	if !hit.Boundary {
		t.Errorf("Cast() from outside = %+v, want a boundary stop", hit)
	}
	if hit.Steps != 1 {
		t.Errorf("Cast() from outside took %d steps, want 1", hit.Steps)
	}
}

func TestCastBoundaryAsymmetry(t *testing.T) {
	// Only the last flat cell is a wall. The row search sees it, the
	// column search treats it as out of range.
	g := mustGrid(t, 2, 10, []world.Cell{
		0, 0,
		0, 5,
	})
	c := New(g)

	fromAbove := c.Cast(15, 5, math.Pi/2)
	if fromAbove.Axis != Horizontal || fromAbove.Cell != 5 {
		t.Errorf("Cast down into last cell = %+v, want horizontal hit on 5", fromAbove)
	}
	if math.Abs(fromAbove.Distance-5) > tolerance {
		t.Errorf("Cast down distance = %v, want 5", fromAbove.Distance)
	}

	fromLeft := c.Cast(5, 15, 0)
	if fromLeft.Axis != Vertical || fromLeft.Wall() || !fromLeft.Boundary {
		t.Errorf("Cast right into last cell = %+v, want vertical boundary stop", fromLeft)
	}
}

func TestCastUnboundedMapStopsAtBoundary(t *testing.T) {
	// No bordering wall: leaving the map ends the search like a hit, with
	// no cell code, well before the depth bound.
	g := mustGrid(t, 3, 10, make([]world.Cell, 9))
	c := New(g)

	hit := c.Cast(15, 15, 0.3)
	if !hit.Boundary || hit.Wall() || hit.Cell != world.CellOpen {
		t.Fatalf("Cast() = %+v, want a boundary stop without a wall", hit)
	}
	if hit.Axis != Vertical || hit.Steps != 2 {
		t.Errorf("Cast() axis = %v steps = %d, want vertical after 2 steps", hit.Axis, hit.Steps)
	}
	if want := math.Hypot(15, 15*math.Tan(0.3)); math.Abs(hit.Distance-want) > tolerance {
		t.Errorf("Cast() distance = %v, want %v", hit.Distance, want)
	}

	// At the excluded last cell the column search stops short and its
	// nearer boundary stop wins over the wall the row search finds.
	g = mustGrid(t, 4, 10, []world.Cell{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 7,
		0, 0, 0, 0,
	})
	c = New(g)
	rows, cols := c.Search(25, 35, -0.6)
	if rows.Cell != 7 || !cols.Boundary {
		t.Fatalf("Search() = rows %+v, cols %+v, want a wall and a boundary stop", rows, cols)
	}
	if cols.Distance >= rows.Distance {
		t.Fatalf("boundary distance %v not nearer than wall %v", cols.Distance, rows.Distance)
	}
	if got := c.Cast(25, 35, -0.6); !got.Boundary || got.Wall() {
		t.Errorf("Cast() = %+v, want the nearer boundary stop", got)
	}
}

func TestNearestTieBreak(t *testing.T) {
	rows := Hit{Axis: Horizontal, Distance: 7, Cell: 1}
	cols := Hit{Axis: Vertical, Distance: 7, Cell: 2}

	if got := nearest(rows, cols); got.Axis != Vertical {
		t.Errorf("nearest() on a tie = %v, want vertical", got.Axis)
	}
	cols.Distance = 7.0000001
	if got := nearest(rows, cols); got.Axis != Horizontal {
		t.Errorf("nearest() with farther column hit = %v, want horizontal", got.Axis)
	}
	cols.Distance = 6.9
	if got := nearest(rows, cols); got.Axis != Vertical {
		t.Errorf("nearest() with nearer column hit = %v, want vertical", got.Axis)
	}
}

func TestHitTextureCoord(t *testing.T) {
	h := Hit{X: 3, Y: 4, Axis: Horizontal}
	if h.TextureCoord() != 3 {
		t.Errorf("horizontal TextureCoord() = %v, want 3", h.TextureCoord())
	}
	h.Axis = Vertical
	if h.TextureCoord() != 4 {
		t.Errorf("vertical TextureCoord() = %v, want 4", h.TextureCoord())
	}
}

func TestAxisString(t *testing.T) {
	tests := []struct {
		axis Axis
		want string
	}{
		{Horizontal, "horizontal"},
		{Vertical, "vertical"},
		{Axis(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.axis.String(); got != tt.want {
			t.Errorf("Axis(%d).String() = %q, want %q", tt.axis, got, tt.want)
		}
	}
}
