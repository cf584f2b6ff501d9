package geometry

import (
	"math"
	"testing"
)

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name string
		tr   AffineTransform
		in   Point2D
		want Point2D
	}{
		{"identity", AffineTransform{A: 1, D: 1}, Point2D{3, 4}, Point2D{3, 4}},
		{"translation", AffineTransform{A: 1, D: 1, TX: 10, TY: -2}, Point2D{1, 1}, Point2D{11, -1}},
		{"scale", AffineTransform{A: 2, D: 3}, Point2D{1, 1}, Point2D{2, 3}},
		{"shear", AffineTransform{A: 1, B: 2, TX: 3, C: 4, D: 5, TY: 6}, Point2D{7, -1}, Point2D{8, 29}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(tt.in)
			if got.Distance(tt.want) > 1e-12 {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromMatrix3x2(t *testing.T) {
	m := [3][2]float64{{1, 4}, {2, 5}, {3, 6}}
	tr := FromMatrix3x2(m)

	// [x y 1] * M must agree with Apply.
	p := Point2D{7, -1}
	x := p.X*m[0][0] + p.Y*m[1][0] + m[2][0]
	y := p.X*m[0][1] + p.Y*m[1][1] + m[2][1]
	if got := tr.Apply(p); got.X != x || got.Y != y {
		t.Fatalf("Apply = %v, matrix product = (%v, %v)", got, x, y)
	}
	if want := (AffineTransform{A: 1, B: 2, TX: 3, C: 4, D: 5, TY: 6}); tr != want {
		t.Errorf("FromMatrix3x2 = %+v, want %+v", tr, want)
	}
}

func TestCloseAndOpenRing(t *testing.T) {
	open := []Point2D{{0, 0}, {1, 0}, {1, 1}}

	closed := CloseRing(open)
	if len(closed) != 4 || closed[3] != open[0] {
		t.Fatalf("CloseRing = %v", closed)
	}
	if again := CloseRing(closed); len(again) != 4 {
		t.Errorf("CloseRing on closed ring added a point: %v", again)
	}
	if len(open) != 3 {
		t.Errorf("CloseRing mutated its input")
	}

	reopened := OpenRing(closed)
	if len(reopened) != 3 {
		t.Fatalf("OpenRing = %v", reopened)
	}
	for i := range open {
		if reopened[i] != open[i] {
			t.Errorf("OpenRing[%d] = %v, want %v", i, reopened[i], open[i])
		}
	}
	if got := OpenRing(open); len(got) != 3 {
		t.Errorf("OpenRing on open ring dropped a point: %v", got)
	}
	if got := CloseRing(nil); len(got) != 0 {
		t.Errorf("CloseRing(nil) = %v", got)
	}
}

func TestCollinear(t *testing.T) {
	if !Collinear([]Point2D{{0, 0}, {1, 1}, {2, 2}, {5, 5}}, 1e-9) {
		t.Error("diagonal points reported non-collinear")
	}
	if Collinear([]Point2D{{0, 0}, {1, 0}, {0, 1}}, 1e-9) {
		t.Error("right triangle reported collinear")
	}
	if !Collinear([]Point2D{{2, 2}, {2, 2}, {2, 2}}, 1e-9) {
		t.Error("coincident points reported non-collinear")
	}
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	pts := []Point2D{{1, 5}, {-2, 3}, {4, -1}}
	bb := BoundingBox(pts)
	if bb != (Rect{X: -2, Y: -1, Width: 6, Height: 6}) {
		t.Errorf("BoundingBox = %+v", bb)
	}
	if c := bb.Center(); c != (Point2D{1, 2}) {
		t.Errorf("Center = %v", c)
	}
	if c := Centroid(pts); c.Distance(Point2D{1, 7.0 / 3}) > 1e-12 {
		t.Errorf("Centroid = %v", c)
	}
}

func TestPointHelpers(t *testing.T) {
	p := Point2D{3, 4}
	if p.Swap() != (Point2D{4, 3}) {
		t.Errorf("Swap = %v", p.Swap())
	}
	if d := p.Distance(Point2D{}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if !p.IsFinite() || (Point2D{math.NaN(), 0}).IsFinite() || (Point2D{0, math.Inf(1)}).IsFinite() {
		t.Error("IsFinite mismatch")
	}
}
