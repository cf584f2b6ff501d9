// Package capture implements the polygon capture state machine.
//
// State values are never mutated in place: Apply returns a new State and
// leaves the old one, including its slices, untouched.
package capture

import (
	"fmt"

	"map-digitizer/pkg/geometry"
)

// MinVertices is the smallest vertex count a closed polygon can have.
const MinVertices = 3

// Polygon is an open ring of pixel vertices in click order. The first vertex
// is the closure anchor.
type Polygon []geometry.Point2D

// Clone returns a copy of the polygon.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Mode identifies the state machine state.
type Mode int

const (
	Idle    Mode = iota // No in-progress polygon
	Drawing             // At least one vertex in progress
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Drawing:
		return "Drawing"
	default:
		return "Unknown"
	}
}

// State is the polygon set of a session: completed polygons plus at most one
// in-progress polygon.
type State struct {
	completed  []Polygon
	inProgress Polygon
}

// NewState returns a state holding copies of the given completed polygons
// and no in-progress polygon.
func NewState(completed []Polygon) State {
	s := State{}
	for _, p := range completed {
		s.completed = append(s.completed, p.Clone())
	}
	return s
}

// Mode reports Idle or Drawing.
func (s State) Mode() Mode {
	if len(s.inProgress) == 0 {
		return Idle
	}
	return Drawing
}

// Completed returns a copy of the completed polygons in completion order.
func (s State) Completed() []Polygon {
	out := make([]Polygon, len(s.completed))
	for i, p := range s.completed {
		out[i] = p.Clone()
	}
	return out
}

// CompletedCount returns the number of completed polygons.
func (s State) CompletedCount() int {
	return len(s.completed)
}

// InProgress returns a copy of the in-progress vertices, nil when Idle.
func (s State) InProgress() Polygon {
	return s.inProgress.Clone()
}

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// AddPoint places a vertex at P, or closes the in-progress polygon when P is
// closer than Tolerance to its first vertex and it already has MinVertices.
type AddPoint struct {
	P         geometry.Point2D
	Tolerance float64
}

// UndoPoint removes the last in-progress vertex, or recalls the most recently
// completed polygon for editing when nothing is in progress.
type UndoPoint struct{}

func (AddPoint) isEvent()  {}
func (UndoPoint) isEvent() {}

// CommandKind identifies what a Command asks of the display.
type CommandKind int

const (
	// CmdRedraw asks the display to redraw the polygon overlay.
	CmdRedraw CommandKind = iota
	// CmdStatus carries a human-readable status line.
	CmdStatus
)

// Command is an output of the state machine toward its collaborators.
type Command struct {
	Kind    CommandKind
	Message string
}

// Redraw is the command emitted by every mutating transition.
func Redraw() Command { return Command{Kind: CmdRedraw} }

// Status wraps a status line.
func Status(format string, args ...interface{}) Command {
	return Command{Kind: CmdStatus, Message: fmt.Sprintf(format, args...)}
}

// Apply runs one transition. Events that change nothing return the same
// state and no redraw.
func Apply(s State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case AddPoint:
		return s.addPoint(e)
	case UndoPoint:
		return s.undoPoint()
	default:
		return s, nil
	}
}

func (s State) addPoint(e AddPoint) (State, []Command) {
	if !e.P.IsFinite() {
		return s, []Command{Status("Ignored point outside the image")}
	}

	if len(s.inProgress) >= MinVertices && e.P.Distance(s.inProgress[0]) < e.Tolerance {
		next := State{
			completed: appendPolygon(s.completed, s.inProgress.Clone()),
		}
		return next, []Command{
			Redraw(),
			Status("Polygon closed (%d vertices, %d total)", len(s.inProgress), len(next.completed)),
		}
	}

	next := State{
		completed:  s.completed,
		inProgress: appendPoint(s.inProgress, e.P),
	}
	return next, []Command{Redraw()}
}

func (s State) undoPoint() (State, []Command) {
	if len(s.inProgress) > 0 {
		rest := s.inProgress[:len(s.inProgress)-1].Clone()
		if len(rest) == 0 {
			rest = nil
		}
		next := State{completed: s.completed, inProgress: rest}
		return next, []Command{Redraw(), Status("Point removed")}
	}

	if len(s.completed) == 0 {
		return s, []Command{Status("Nothing to undo")}
	}

	last := len(s.completed) - 1
	next := State{
		completed:  s.completed[:last:last],
		inProgress: s.completed[last].Clone(),
	}
	return next, []Command{
		Redraw(),
		Status("Recalled polygon %d for editing (%d vertices)", last+1, len(next.inProgress)),
	}
}

// appendPolygon returns completed with p appended, never sharing capacity
// with the input slice.
func appendPolygon(completed []Polygon, p Polygon) []Polygon {
	out := make([]Polygon, len(completed), len(completed)+1)
	copy(out, completed)
	return append(out, p)
}

func appendPoint(p Polygon, pt geometry.Point2D) Polygon {
	out := make(Polygon, len(p), len(p)+1)
	copy(out, p)
	return append(out, pt)
}
