package geometry

import "math"

// CloseRing returns a copy of the ring with the first point appended if the
// last point differs from it. Rings with fewer than one point are returned as is.
func CloseRing(ring []Point2D) []Point2D {
	out := make([]Point2D, len(ring), len(ring)+1)
	copy(out, ring)
	if len(out) == 0 {
		return out
	}
	if out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

// OpenRing returns a copy of the ring without its closing duplicate, if any.
func OpenRing(ring []Point2D) []Point2D {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	out := make([]Point2D, n)
	copy(out, ring[:n])
	return out
}

// Collinear reports whether all points lie on one line within tol, measured
// as the largest triangle area spanned with the first point and the point
// farthest from it.
func Collinear(points []Point2D, tol float64) bool {
	if len(points) < 3 {
		return true
	}

	origin := points[0]
	far := origin
	var farDist float64
	for _, p := range points[1:] {
		if d := origin.Distance(p); d > farDist {
			far, farDist = p, d
		}
	}
	if farDist == 0 {
		return true
	}

	for _, p := range points[1:] {
		// Distance of p from the line origin-far.
		if math.Abs(crossProduct(origin, far, p))/farDist > tol {
			return false
		}
	}
	return true
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
