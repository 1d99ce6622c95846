// Package render reconciles the layout engine's visible node set against
// persistent visual elements owned by a host environment, and drives the
// interaction state machine (drag, pin, collapse/expand).
//
// The host is anything that can create boxes on a screen, measure them,
// and deliver pointer events: a terminal canvas, a test double, or the
// virtual host used for static export. The engine never talks to a
// concrete screen directly.
package render

import "time"

// ElementState carries the display state derived from a node's place in
// the tree. Hosts map it to styling (depth tiers, pinned and collapsed
// markers, toggle affordance).
type ElementState struct {
	Depth     int
	Pinned    bool
	Collapsed bool
	HasToggle bool
}

// Element is a persistent visual box managed by the host. Elements live
// across renders; the engine repositions and restyles them but only the
// host creates and destroys them.
type Element interface {
	// SetText replaces the displayed label.
	SetText(text string)
	// SetState applies tree-derived display state.
	SetState(state ElementState)
	// MoveTo places the element's center at (x, y) in container
	// coordinates. The host converts to top-left using its own
	// measured size.
	MoveTo(x, y float64)
	// Position returns the element's current center.
	Position() (x, y float64)
	// Size returns the measured box extent. ok is false while the
	// element cannot be measured yet; callers skip it for that tick.
	Size() (w, h float64, ok bool)
	// FadeIn animates the element to full visibility.
	FadeIn(d time.Duration)
	// FadeOut animates the element away, then calls done exactly once.
	FadeOut(d time.Duration, done func())
}

// Segment is one straight link between two node centers, redrawn by the
// host every tick.
type Segment struct {
	FromID, ToID   string
	X1, Y1, X2, Y2 float64
}

// Host is the environment the engine renders into.
type Host interface {
	// CreateElement makes a new visual element for the node id.
	CreateElement(id string) Element
	// RemoveElement destroys the element for id. Called after the exit
	// fade completes.
	RemoveElement(id string)
	// Bounds returns the container extent in container coordinates.
	Bounds() (w, h float64)
	// SetLinks replaces the drawn link set for the current tick.
	SetLinks(segments []Segment)
}
