package tui

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/mindweave/pkg/render"
)

type fadePhase int

const (
	fadeNone fadePhase = iota
	fadeIn
	fadeOut
)

// boxElement is a one-row node box on the terminal canvas. Terminals have
// no opacity, so fades degrade to a faint style until the deadline passes;
// exit fades additionally hold the element on screen until the deadline,
// then fire the completion callback from the frame sweep.
type boxElement struct {
	id    string
	text  string
	state render.ElementState

	x, y   float64
	placed bool

	phase    fadePhase
	deadline time.Time
	onDone   func()
}

func (e *boxElement) SetText(text string) { e.text = text }

func (e *boxElement) SetState(state render.ElementState) { e.state = state }

func (e *boxElement) MoveTo(x, y float64) {
	e.x, e.y = x, y
	e.placed = true
}

func (e *boxElement) Position() (float64, float64) { return e.x, e.y }

func (e *boxElement) Size() (float64, float64, bool) {
	return float64(runewidth.StringWidth(e.label())), 1, true
}

func (e *boxElement) FadeIn(d time.Duration) {
	e.phase = fadeIn
	e.deadline = time.Now().Add(d)
	// An interrupted exit fade must not fire its completion later.
	e.onDone = nil
}

func (e *boxElement) FadeOut(d time.Duration, done func()) {
	e.phase = fadeOut
	e.deadline = time.Now().Add(d)
	e.onDone = done
}

// sweep resolves a finished fade. Returns true when the element just
// completed an exit fade and has been removed.
func (e *boxElement) sweep(now time.Time) bool {
	if e.phase == fadeNone || now.Before(e.deadline) {
		return false
	}
	phase := e.phase
	e.phase = fadeNone
	if phase == fadeOut && e.onDone != nil {
		done := e.onDone
		e.onDone = nil
		done()
		return true
	}
	return false
}

func (e *boxElement) fading() bool { return e.phase != fadeNone }

// label composes the on-screen text: pin marker, node text, and the
// collapse toggle, padded one cell each side.
func (e *boxElement) label() string {
	s := " "
	if e.state.Pinned {
		s += "● "
	}
	s += e.text
	if e.state.HasToggle {
		if e.state.Collapsed {
			s += " +"
		} else {
			s += " −"
		}
	}
	return s + " "
}

// toggleHit reports whether a cell offset into the label (0-based from
// the box's left edge) lands on the collapse toggle.
func (e *boxElement) toggleHit(offset int) bool {
	if !e.state.HasToggle {
		return false
	}
	w := runewidth.StringWidth(e.label())
	return offset >= w-3 && offset < w
}

// hit reports whether the canvas cell (col, row) is inside the box and,
// if so, the column offset into it.
func (e *boxElement) hit(col, row int) (int, bool) {
	if !e.placed {
		return 0, false
	}
	w, _, _ := e.Size()
	left := int(e.x - w/2)
	top := int(e.y)
	if row != top || col < left || col >= left+int(w) {
		return 0, false
	}
	return col - left, true
}
