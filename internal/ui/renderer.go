package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/render"
	"github.com/samdwyer/dungeoncaster/internal/texture"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// halfBlock paints the upper half of a cell in the foreground color and the
// lower half in the background color.
const halfBlock = '▀'

// StatusRows is the number of terminal rows kept below the view.
const StatusRows = 1

// Renderer handles drawing frames and maps to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// FrameSize returns the frame dimensions that fill the screen above the
// status line. Each terminal cell shows two frame rows.
func (r *Renderer) FrameSize() (width, height int) {
	w, h := r.screen.Size()
	return w, max(h-StatusRows, 0) * 2
}

// Present copies a frame onto the screen, two pixel rows per cell.
func (r *Renderer) Present(f *render.Frame) {
	w, h := r.screen.Size()
	rows := min((f.Height()+1)/2, max(h-StatusRows, 0))
	cols := min(f.Width(), w)
	for cy := 0; cy < rows; cy++ {
		for x := 0; x < cols; x++ {
			top := f.At(x, cy*2)
			bottom := f.At(x, cy*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			r.screen.SetContent(x, cy, halfBlock, style)
		}
	}
}

// RenderMap draws the grid as text with the player on top.
func (r *Renderer) RenderMap(g *world.Grid, p entity.Player) {
	r.screen.Clear()

	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c, _ := g.At(col, row)
			r.screen.SetContent(col, row, c.Rune(), r.getCellStyle(c, g.DoorCode()))
		}
	}

	col, row, ok := g.Locate(p.X, p.Y)
	if !ok {
		return
	}
	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(col, row, PlayerRune(p.Angle), playerStyle)
}

// PlayerRune returns an arrow for the quadrant the player faces.
func PlayerRune(angle float64) rune {
	switch world.Facing(angle) {
	case world.DirDown:
		return 'v'
	case world.DirLeft:
		return '<'
	case world.DirUp:
		return '^'
	default:
		return '>'
	}
}

// getCellStyle returns the appropriate style for a cell code.
func (r *Renderer) getCellStyle(c, door world.Cell) tcell.Style {
	switch {
	case c == world.CellOpen:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case c == door:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
}

// RenderMessage displays a message on row y, padding the rest of the row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	w, _ := r.screen.Size()
	x := 0
	for _, ch := range msg {
		if x >= w {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}

// Show flushes the screen.
func (r *Renderer) Show() {
	r.screen.Show()
}

func toTcell(c texture.Color) tcell.Color {
	return tcell.NewHexColor(int32(c.Packed()))
}
