package capture

import (
	"math"
	"testing"

	"map-digitizer/pkg/geometry"
)

var (
	ptA = geometry.Point2D{X: 0, Y: 0}
	ptB = geometry.Point2D{X: 100, Y: 0}
	ptC = geometry.Point2D{X: 100, Y: 100}
)

const tol = 10

func run(t *testing.T, s State, events ...Event) (State, []Command) {
	t.Helper()
	var all []Command
	for _, ev := range events {
		var cmds []Command
		s, cmds = Apply(s, ev)
		all = append(all, cmds...)
	}
	return s, all
}

func add(p geometry.Point2D) Event { return AddPoint{P: p, Tolerance: tol} }

func hasRedraw(cmds []Command) bool {
	for _, c := range cmds {
		if c.Kind == CmdRedraw {
			return true
		}
	}
	return false
}

func samePolygon(a, b Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCloseOnFirstVertex(t *testing.T) {
	s, _ := run(t, State{}, add(ptA), add(ptB), add(ptC))
	if s.Mode() != Drawing || len(s.InProgress()) != 3 {
		t.Fatalf("after 3 points: mode %v, %d vertices", s.Mode(), len(s.InProgress()))
	}

	s, cmds := run(t, s, add(ptA))
	if s.Mode() != Idle {
		t.Errorf("mode = %v, want Idle", s.Mode())
	}
	if s.InProgress() != nil {
		t.Errorf("in-progress = %v, want empty", s.InProgress())
	}
	done := s.Completed()
	if len(done) != 1 || !samePolygon(done[0], Polygon{ptA, ptB, ptC}) {
		t.Errorf("completed = %v", done)
	}
	if !hasRedraw(cmds) {
		t.Error("closing did not request a redraw")
	}
}

func TestCloseWithinTolerance(t *testing.T) {
	s, _ := run(t, State{}, add(ptA), add(ptB), add(ptC), add(geometry.Point2D{X: 3, Y: -4}))
	if s.CompletedCount() != 1 || s.Mode() != Idle {
		t.Fatalf("point 5px from anchor did not close: %d completed, mode %v", s.CompletedCount(), s.Mode())
	}
	if got := s.Completed()[0]; !samePolygon(got, Polygon{ptA, ptB, ptC}) {
		t.Errorf("closing click was recorded as a vertex: %v", got)
	}
}

func TestNoCloseOutsideTolerance(t *testing.T) {
	far := geometry.Point2D{X: 0, Y: tol}
	s, _ := run(t, State{}, add(ptA), add(ptB), add(ptC), add(far))
	if s.CompletedCount() != 0 || len(s.InProgress()) != 4 {
		t.Errorf("point at exactly tolerance closed the polygon")
	}
}

func TestNoCloseBelowMinVertices(t *testing.T) {
	s, _ := run(t, State{}, add(ptA), add(ptB), add(ptA))
	if s.CompletedCount() != 0 {
		t.Fatal("two-vertex polygon closed")
	}
	if got := s.InProgress(); !samePolygon(got, Polygon{ptA, ptB, ptA}) {
		t.Errorf("in-progress = %v", got)
	}
}

func TestUndoRemovesLastVertex(t *testing.T) {
	s, _ := run(t, State{}, add(ptA), add(ptB))
	s, cmds := run(t, s, UndoPoint{})
	if got := s.InProgress(); !samePolygon(got, Polygon{ptA}) {
		t.Errorf("in-progress = %v", got)
	}
	if !hasRedraw(cmds) {
		t.Error("undo did not request a redraw")
	}
	s, _ = run(t, s, UndoPoint{})
	if s.Mode() != Idle {
		t.Errorf("mode = %v after removing last vertex", s.Mode())
	}
}

func TestUndoRecallsLastPolygon(t *testing.T) {
	first := Polygon{ptA, ptB, ptC}
	second := Polygon{{X: 500, Y: 500}, {X: 600, Y: 500}, {X: 600, Y: 600}, {X: 500, Y: 600}}
	s := NewState([]Polygon{first, second})

	s, cmds := run(t, s, UndoPoint{})
	if s.Mode() != Drawing {
		t.Fatalf("mode = %v, want Drawing", s.Mode())
	}
	if !samePolygon(s.InProgress(), second) {
		t.Errorf("recalled %v, want %v", s.InProgress(), second)
	}
	if s.CompletedCount() != 1 || !samePolygon(s.Completed()[0], first) {
		t.Errorf("completed = %v", s.Completed())
	}
	if !hasRedraw(cmds) {
		t.Error("recall did not request a redraw")
	}

	s, _ = run(t, s, UndoPoint{})
	if !samePolygon(s.InProgress(), second[:3]) {
		t.Errorf("after second undo in-progress = %v", s.InProgress())
	}
	if s.CompletedCount() != 1 {
		t.Errorf("second undo touched completed set")
	}
}

func TestRecalledPolygonCanBeClosedAgain(t *testing.T) {
	s := NewState([]Polygon{{ptA, ptB, ptC}})
	s, _ = run(t, s, UndoPoint{}, add(geometry.Point2D{X: 0, Y: 100}), add(ptA))
	if s.CompletedCount() != 1 || s.Mode() != Idle {
		t.Fatalf("state = %d completed, mode %v", s.CompletedCount(), s.Mode())
	}
	if n := len(s.Completed()[0]); n != 4 {
		t.Errorf("re-closed polygon has %d vertices, want 4", n)
	}
}

func TestUndoOnEmptyIsNoop(t *testing.T) {
	s, cmds := Apply(State{}, UndoPoint{})
	if s.Mode() != Idle || s.CompletedCount() != 0 {
		t.Error("undo on empty state changed it")
	}
	if hasRedraw(cmds) {
		t.Error("no-op undo requested a redraw")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base, _ := run(t, State{}, add(ptA), add(ptB), add(ptC))
	snapshot := base.InProgress()

	closed, _ := Apply(base, add(ptA))
	_, _ = Apply(base, UndoPoint{})
	_, _ = Apply(base, add(geometry.Point2D{X: 50, Y: 50}))

	if !samePolygon(base.InProgress(), snapshot) || base.CompletedCount() != 0 {
		t.Error("Apply mutated the input state")
	}

	recalled, _ := Apply(closed, UndoPoint{})
	_, _ = Apply(recalled, add(geometry.Point2D{X: 7, Y: 7}))
	if closed.CompletedCount() != 1 || !samePolygon(closed.Completed()[0], snapshot) {
		t.Error("recall mutated the source state")
	}
}

func TestNonFinitePointIgnored(t *testing.T) {
	s, cmds := Apply(State{}, add(geometry.Point2D{X: math.NaN(), Y: 1}))
	if s.Mode() != Idle || hasRedraw(cmds) {
		t.Error("NaN point was accepted")
	}
}

func TestCompletedReturnsCopies(t *testing.T) {
	s := NewState([]Polygon{{ptA, ptB, ptC}})
	got := s.Completed()
	got[0][0] = geometry.Point2D{X: 42, Y: 42}
	if s.Completed()[0][0] != ptA {
		t.Error("Completed exposed internal storage")
	}
}
