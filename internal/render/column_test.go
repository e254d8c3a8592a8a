package render

import (
	"math"
	"testing"

	"github.com/samdwyer/dungeoncaster/internal/raycast"
	"github.com/samdwyer/dungeoncaster/internal/texture"
)

var sentinel = texture.RGB(255, 0, 255)

// gradient encodes the texel column in R and the row in G.
func gradient(t *testing.T, size int) *texture.Store {
	t.Helper()
	texels := make([]texture.Color, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			texels[row*size+col] = texture.RGB(uint8(100+col*10), uint8(100+row*10), 200)
		}
	}
	tex, err := texture.New("gradient", size, texels)
	if err != nil {
		t.Fatalf("texture.New() error = %v", err)
	}
	s, err := texture.NewStore(size, tex)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestColumnsCoverWidth(t *testing.T) {
	for _, tc := range []struct{ width, rays int }{{10, 10}, {10, 3}, {640, 120}, {7, 9}, {1, 1}} {
		cols := Columns(tc.width, tc.rays)
		x := 0
		for i, c := range cols {
			if c.Index != i || c.X != x || c.Width < 1 {
				t.Fatalf("Columns(%d,%d)[%d] = %+v, want start %d", tc.width, tc.rays, i, c, x)
			}
			x += c.Width
		}
		if x != tc.width {
			t.Errorf("Columns(%d,%d) covers %d columns, want %d", tc.width, tc.rays, x, tc.width)
		}
	}
	if Columns(10, 0) != nil {
		t.Error("Columns(10,0) != nil")
	}
}

func TestRenderColumnSegments(t *testing.T) {
	// h = 10*10/30 = 3.33, so the wall spans pixel centers 3.5 to 6.5 and
	// each of the four texture rows lands on exactly one pixel.
	f := NewFrame(1, 10, nil)
	f.Fill(sentinel)
	hit := raycast.Hit{Distance: 30, X: 0, Y: 12.5, Cell: 1, Axis: raycast.Vertical}

	if n := RenderColumn(f, hit, Column{Width: 1}, 10, gradient(t, 4)); n != 4 {
		t.Fatalf("RenderColumn() = %d rows, want 4", n)
	}
	for y := 0; y < 10; y++ {
		got := f.At(0, y)
		if y < 3 || y > 6 {
			if got != sentinel {
				t.Errorf("row %d = %v, want untouched", y, got)
			}
			continue
		}
		// Y=12.5 with 2.5 units per texel is texture column 1.
		want := texture.RGB(110, uint8(100+(y-3)*10), 200)
		if got != want {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
	if f.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", f.Rejected())
	}
}

func TestRenderColumnShadesHorizontalHits(t *testing.T) {
	f := NewFrame(1, 10, nil)
	hit := raycast.Hit{Distance: 30, X: 12.5, Y: 0, Cell: 1, Axis: raycast.Horizontal}
	RenderColumn(f, hit, Column{Width: 1}, 10, gradient(t, 4))

	want := texture.Shade(texture.RGB(110, 100, 200))
	if got := f.At(0, 3); got != want {
		t.Errorf("row 3 = %v, want shaded %v", got, want)
	}
}

func TestRenderColumnNoGapsOrOverlap(t *testing.T) {
	const size = 8
	store := gradient(t, size)
	for _, height := range []int{10, 33, 64} {
		for _, dist := range []float64{0.5, 3, 7, 10, 13.7, 30, 99.9, 250} {
			f := NewFrame(1, height, nil)
			f.Fill(sentinel)
			hit := raycast.Hit{Distance: dist, Cell: 1, Axis: raycast.Vertical}
			rows := RenderColumn(f, hit, Column{Width: 1}, 10, store)

			screenH := float64(height)
			h := WallHeight(10, screenH, dist)
			offset := screenH/2 - h/2
			end := offset + float64(size)*(h/float64(size))
			first := min(max(int(math.Ceil(math.Max(offset, 0)-0.5)), 0), height)
			last := min(max(int(math.Ceil(math.Min(end, screenH)-0.5)), 0), height)

			written, prev := 0, -1
			for y := 0; y < height; y++ {
				c := f.At(0, y)
				inside := y >= first && y < last
				if (c != sentinel) != inside {
					t.Fatalf("H=%d d=%v: row %d written=%v, want %v", height, dist, y, c != sentinel, inside)
				}
				if !inside {
					continue
				}
				written++
				row := int(c.G-100) / 10
				if row < prev {
					t.Fatalf("H=%d d=%v: texture row %d above row %d", height, dist, row, prev)
				}
				prev = row
			}
			if rows != written {
				t.Errorf("H=%d d=%v: RenderColumn() = %d rows, %d distinct pixels", height, dist, rows, written)
			}
			if f.Rejected() != 0 {
				t.Errorf("H=%d d=%v: Rejected() = %d, want 0", height, dist, f.Rejected())
			}
		}
	}
}

func TestRenderColumnChainsSegmentEnds(t *testing.T) {
	// Segment r covers the pixel centers in [start, end), where start is
	// the previous segment's end and the first starts at the wall's top.
	const size, height = 7, 33
	store := gradient(t, size)
	for _, dist := range []float64{9.3, 13.7, 21.1} {
		f := NewFrame(1, height, nil)
		f.Fill(sentinel)
		RenderColumn(f, raycast.Hit{Distance: dist, Cell: 1, Axis: raycast.Vertical}, Column{Width: 1}, 10, store)

		h := WallHeight(10, height, dist)
		seg := h / size
		end := float64(height)/2 - h/2
		for r := 0; r < size; r++ {
			start := end
			end = start + seg
			for y := 0; y < height; y++ {
				center := float64(y) + 0.5
				if center < start || center >= end {
					continue
				}
				if got := int(f.At(0, y).G-100) / 10; got != r {
					t.Errorf("d=%v: row %d shows texture row %d, want %d", dist, y, got, r)
				}
			}
		}
	}
}

func TestRenderColumnReplicatesAcrossStrip(t *testing.T) {
	f := NewFrame(7, 10, nil)
	f.Fill(sentinel)
	hit := raycast.Hit{Distance: 5, Y: 3, Cell: 1, Axis: raycast.Vertical}
	RenderColumn(f, hit, Column{Index: 1, X: 2, Width: 3}, 10, gradient(t, 4))

	for y := 0; y < 10; y++ {
		want := f.At(2, y)
		for x := 3; x < 5; x++ {
			if got := f.At(x, y); got != want {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
		if f.At(1, y) != sentinel || f.At(5, y) != sentinel {
			t.Errorf("row %d drawn outside the strip", y)
		}
	}
}

func TestRenderColumnSkipsBoundaryAndUnknownCodes(t *testing.T) {
	store := gradient(t, 4)
	for _, hit := range []raycast.Hit{
		{Distance: 5, Cell: 0, Boundary: true},
		{Distance: 5, Cell: 9},
	} {
		f := NewFrame(1, 10, nil)
		f.Fill(sentinel)
		if n := RenderColumn(f, hit, Column{Width: 1}, 10, store); n != 0 {
			t.Errorf("RenderColumn(%+v) = %d rows, want 0", hit, n)
		}
		for y := 0; y < 10; y++ {
			if f.At(0, y) != sentinel {
				t.Fatalf("RenderColumn(%+v) wrote row %d", hit, y)
			}
		}
	}
}

func TestRenderColumnAtZeroDistance(t *testing.T) {
	f := NewFrame(1, 10, nil)
	f.Fill(sentinel)
	hit := raycast.Hit{Distance: 0, Cell: 1, Axis: raycast.Vertical}
	RenderColumn(f, hit, Column{Width: 1}, 10, gradient(t, 4))
	for y := 0; y < 10; y++ {
		if f.At(0, y) == sentinel {
			t.Errorf("row %d not drawn for a wall at distance 0", y)
		}
	}
	if f.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", f.Rejected())
	}
}
