// Package selector implements the interactive region picker: a pure
// drag-selection state machine, the overlay frame painter, and the shiny
// session that runs them over a frozen screen capture.
package selector

import "image"

// State is the lifecycle of one selection session.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Selector tracks one drag-to-select interaction. Completed and Cancelled
// are terminal; a new capture needs a fresh Selector.
type Selector struct {
	state State
	start image.Point
	end   image.Point
}

func New() *Selector {
	return &Selector{}
}

func (s *Selector) State() State { return s.state }

// Selecting reports whether a drag is in progress.
func (s *Selector) Selecting() bool { return s.state == StateSelecting }

// Begin anchors a drag at p. Ignored unless the selector is idle.
func (s *Selector) Begin(p image.Point) {
	if s.state != StateIdle {
		return
	}
	s.start = p
	s.end = p
	s.state = StateSelecting
}

// Move extends the drag to p. Ignored unless a drag is in progress.
func (s *Selector) Move(p image.Point) {
	if s.state != StateSelecting {
		return
	}
	s.end = p
}

// Release ends the drag at p. A drag spanning at least one pixel in both
// dimensions completes the session and yields the normalized rectangle.
// A degenerate drag (an accidental click) reverts to idle so the user can
// try again; it is not an error.
func (s *Selector) Release(p image.Point) (image.Rectangle, bool) {
	if s.state != StateSelecting {
		return image.Rectangle{}, false
	}
	s.end = p
	r := image.Rect(s.start.X, s.start.Y, s.end.X, s.end.Y)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		s.start = image.Point{}
		s.end = image.Point{}
		s.state = StateIdle
		return image.Rectangle{}, false
	}
	s.state = StateCompleted
	return r, true
}

// Cancel aborts the session from idle or mid-drag. Completed sessions
// stay completed.
func (s *Selector) Cancel() {
	if s.state == StateCompleted || s.state == StateCancelled {
		return
	}
	s.state = StateCancelled
}

// Rect returns the normalized rectangle spanned so far. It reports false
// before the first Begin and after a cancel, so callers never see a
// meaningless anchor pair.
func (s *Selector) Rect() (image.Rectangle, bool) {
	if s.state != StateSelecting && s.state != StateCompleted {
		return image.Rectangle{}, false
	}
	return image.Rect(s.start.X, s.start.Y, s.end.X, s.end.Y), true
}
