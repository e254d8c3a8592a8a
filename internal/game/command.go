package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncaster/internal/entity"
)

// Command is one input issued for a frame.
type Command int

const (
	RotateLeft Command = iota
	RotateRight
	MoveForward
	MoveBackward
	ToggleDoor
	// ToggleMap and Quit are handled by the driver, never by a Session.
	ToggleMap
	Quit
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case MoveForward:
		return "move_forward"
	case MoveBackward:
		return "move_backward"
	case ToggleDoor:
		return "toggle_door"
	case ToggleMap:
		return "toggle_map"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// phase orders commands within a frame: rotation, then movement, then doors.
func (c Command) phase() int {
	switch c {
	case RotateLeft, RotateRight:
		return 0
	case MoveForward, MoveBackward:
		return 1
	case ToggleDoor:
		return 2
	default:
		return 3
	}
}

func (c Command) action() (entity.Action, bool) {
	switch c {
	case RotateLeft:
		return entity.ActionRotateLeft, true
	case RotateRight:
		return entity.ActionRotateRight, true
	case MoveForward:
		return entity.ActionForward, true
	case MoveBackward:
		return entity.ActionBackward, true
	default:
		return 0, false
	}
}

// KeyCommand maps a key press to a command.
func KeyCommand(ev *tcell.EventKey) (Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit, true
	case tcell.KeyLeft:
		return RotateLeft, true
	case tcell.KeyRight:
		return RotateRight, true
	case tcell.KeyUp:
		return MoveForward, true
	case tcell.KeyDown:
		return MoveBackward, true
	case tcell.KeyTab:
		return ToggleMap, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return RotateLeft, true
		case 'd', 'D':
			return RotateRight, true
		case 'w', 'W':
			return MoveForward, true
		case 's', 'S':
			return MoveBackward, true
		case ' ', 'e', 'E':
			return ToggleDoor, true
		case 'm', 'M':
			return ToggleMap, true
		case 'q', 'Q':
			return Quit, true
		}
	}
	return 0, false
}
