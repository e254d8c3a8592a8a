// Package game provides the frame loop, input mapping and view modes.
package game

// ViewMode selects what the terminal shows.
type ViewMode int

const (
	// ViewFirstPerson is the raycast view, optionally with the minimap overlay.
	ViewFirstPerson ViewMode = iota
	// ViewMap is the full-screen text map.
	ViewMap
)

// String returns a human-readable view name.
func (v ViewMode) String() string {
	switch v {
	case ViewFirstPerson:
		return "first_person"
	case ViewMap:
		return "map"
	default:
		return "unknown"
	}
}

// Next cycles to the other view.
func (v ViewMode) Next() ViewMode {
	if v == ViewFirstPerson {
		return ViewMap
	}
	return ViewFirstPerson
}
