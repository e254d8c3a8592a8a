package render

import (
	"image"
	"testing"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/raycast"
)

func TestDrawMinimap(t *testing.T) {
	g := room(t, 4)
	f := NewFrame(40, 40, nil)
	p := entity.NewPlayer(15, 15, 0)

	cell := DrawMinimap(f, g, p, nil, f.Bounds())
	if cell != 10 {
		t.Fatalf("DrawMinimap() cell = %d, want 10", cell)
	}
	if got := f.At(5, 5); got != MapWall {
		t.Errorf("wall pixel = %v, want %v", got, MapWall)
	}
	if got := f.At(25, 25); got != MapOpen {
		t.Errorf("open pixel = %v, want %v", got, MapOpen)
	}
	if got := f.At(15, 15); got != MapPlayer {
		t.Errorf("player pixel = %v, want %v", got, MapPlayer)
	}
	if f.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", f.Rejected())
	}
}

func TestDrawMinimapRays(t *testing.T) {
	g := room(t, 4)
	f := NewFrame(40, 40, nil)
	p := entity.NewPlayer(15, 15, 0)
	hit := raycast.New(g).CastFrom(p, 0)

	DrawMinimap(f, g, p, []raycast.Hit{hit}, f.Bounds())
	if got := f.At(24, 15); got != MapRay {
		t.Errorf("ray pixel = %v, want %v", got, MapRay)
	}
}

func TestDrawMinimapClipsToFrame(t *testing.T) {
	g := room(t, 4)
	f := NewFrame(20, 20, nil)
	p := entity.NewPlayer(35, 35, 0)
	hits := []raycast.Hit{{X: 1e6, Y: -1e6, Distance: 1}}

	if cell := DrawMinimap(f, g, p, hits, image.Rect(0, 0, 40, 40)); cell != 5 {
		t.Errorf("DrawMinimap() cell = %d, want 5", cell)
	}
	if f.Rejected() != 0 {
		t.Errorf("Rejected() = %d, want 0", f.Rejected())
	}
	if cell := DrawMinimap(NewFrame(3, 3, nil), g, p, nil, image.Rect(0, 0, 3, 3)); cell != 0 {
		t.Errorf("DrawMinimap() on a tiny frame cell = %d, want 0", cell)
	}
}
