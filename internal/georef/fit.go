// Package georef fits and applies the affine transforms that tie scan pixels
// to geographic coordinates.
package georef

import (
	"errors"
	"fmt"
	"math"

	"map-digitizer/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewPoints is returned when fewer than three pairs are supplied.
	ErrTooFewPoints = errors.New("need at least 3 control points")
	// ErrLengthMismatch is returned when source and destination differ in length.
	ErrLengthMismatch = errors.New("control point count mismatch")
	// ErrDegenerate is returned when the source points cannot determine an
	// affine map (coincident or collinear points, singular solve).
	ErrDegenerate = errors.New("degenerate control points")
)

// collinearityRel is the perpendicular spread, relative to the source extent,
// below which the source points count as lying on one line.
const collinearityRel = 1e-9

// Fit computes the least-squares affine transform mapping src onto dst.
//
// The design matrix holds one padded row [x y 1] per source point and the
// solution M (3x2) minimises ||A*M - B||^2 where B holds the destination
// points. The result is M expressed as an AffineTransform.
func Fit(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	if len(src) != len(dst) {
		return geometry.AffineTransform{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(src), len(dst))
	}
	n := len(src)
	if n < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("%w, got %d", ErrTooFewPoints, n)
	}

	bb := geometry.BoundingBox(src)
	extent := math.Hypot(bb.Width, bb.Height)
	if extent == 0 || geometry.Collinear(src, collinearityRel*extent) {
		return geometry.AffineTransform{}, fmt.Errorf("%w: source points are collinear", ErrDegenerate)
	}

	A := mat.NewDense(n, 3, nil)
	B := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		A.Set(i, 0, src[i].X)
		A.Set(i, 1, src[i].Y)
		A.Set(i, 2, 1)
		B.Set(i, 0, dst[i].X)
		B.Set(i, 1, dst[i].Y)
	}

	// Solve using QR decomposition
	var qr mat.QR
	qr.Factorize(A)

	var M mat.Dense
	if err := qr.SolveTo(&M, false, B); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	var m [3][2]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 2; c++ {
			m[r][c] = M.At(r, c)
		}
	}
	return geometry.FromMatrix3x2(m), nil
}

// Apply transforms every point by t. An empty input yields an empty,
// non-nil result.
func Apply(points []geometry.Point2D, t geometry.AffineTransform) []geometry.Point2D {
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// MeanResidual returns the mean distance between t(src[i]) and dst[i].
func MeanResidual(src, dst []geometry.Point2D, t geometry.AffineTransform) float64 {
	if len(src) != len(dst) || len(src) == 0 {
		return math.Inf(1)
	}

	var total float64
	for i := range src {
		total += t.Apply(src[i]).Distance(dst[i])
	}
	return total / float64(len(src))
}
