package canvas

import (
	"image"
	"strconv"

	"map-digitizer/internal/capture"
	"map-digitizer/internal/viewport"
	"map-digitizer/pkg/colorutil"
	"map-digitizer/pkg/geometry"
)

const (
	edgeThickness   = 2
	markerRadius    = 3.0
	pickCrossSize   = 6
	pickLabelScale  = 2
	pickLabelOffset = 8
)

// Overlay is what gets drawn over the scan, in image pixel coordinates.
type Overlay struct {
	Completed  []capture.Polygon
	InProgress capture.Polygon

	// Picks are numbered crosses for control point picking.
	Picks []geometry.Point2D
}

// OverlayFromState extracts the drawable polygons from a capture state.
func OverlayFromState(s capture.State) Overlay {
	return Overlay{Completed: s.Completed(), InProgress: s.InProgress()}
}

func toDevice(v viewport.Viewport, pts []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		x, y := v.ImageToDevice(p)
		out[i] = geometry.Point2D{X: x, Y: y}
	}
	return out
}

// DrawOverlay renders the overlay onto output, mapping image coordinates
// through v. v's display size must match output's bounds.
//
// Completed polygons are filled blue at FillAlpha with yellow edges. The
// in-progress polygon is an open red polyline with a marker on each vertex.
func DrawOverlay(output *image.RGBA, v viewport.Viewport, ov Overlay) {
	for _, poly := range ov.Completed {
		pts := toDevice(v, poly)
		fillPolygon(output, pts, colorutil.CompletedFill, colorutil.FillAlpha)
		drawPolyline(output, pts, colorutil.CompletedEdge, edgeThickness, true)
	}

	if len(ov.InProgress) > 0 {
		pts := toDevice(v, ov.InProgress)
		drawPolyline(output, pts, colorutil.InProgress, edgeThickness, false)
		for _, p := range pts {
			drawMarker(output, p.X, p.Y, markerRadius, colorutil.InProgress)
		}
	}

	for i, p := range toDevice(v, ov.Picks) {
		cx, cy := int(p.X), int(p.Y)
		drawCross(output, cx, cy, pickCrossSize, colorutil.Red)
		drawNumber(output, strconv.Itoa(i+1), cx+pickLabelOffset, cy+pickLabelOffset, pickLabelScale, colorutil.Red)
	}
}
