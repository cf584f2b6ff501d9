// Package preview renders completed polygons over the scan as a static image.
package preview

import (
	"errors"
	"fmt"
	"image"

	"map-digitizer/internal/capture"
	"map-digitizer/pkg/colorutil"
	"map-digitizer/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrEmptyImage is returned when the scan cannot be read.
var ErrEmptyImage = errors.New("image is empty or unreadable")

const edgeThickness = 2

// Points rounds polygon vertices to whole pixels. Polygons with fewer than
// three vertices are dropped.
func Points(polygons []capture.Polygon) [][]image.Point {
	out := make([][]image.Point, 0, len(polygons))
	for _, poly := range polygons {
		if len(poly) < capture.MinVertices {
			continue
		}
		pts := make([]image.Point, len(poly))
		for i, p := range poly {
			pts[i] = image.Pt(int(p.X+0.5), int(p.Y+0.5))
		}
		out = append(out, pts)
	}
	return out
}

// Label returns the text drawn on polygon i and where it goes.
func Label(i int, poly capture.Polygon) (string, image.Point) {
	c := geometry.Centroid(poly)
	return fmt.Sprintf("%d (%d)", i+1, len(poly)), image.Pt(int(c.X), int(c.Y))
}

// Render returns a copy of img with the polygons filled blue at
// colorutil.FillAlpha, outlined in yellow and numbered. The caller closes
// the result.
func Render(img gocv.Mat, polygons []capture.Polygon) gocv.Mat {
	dst := img.Clone()
	pts := Points(polygons)
	if len(pts) == 0 {
		return dst
	}

	pv := gocv.NewPointsVectorFromPoints(pts)
	defer pv.Close()

	fill := img.Clone()
	defer fill.Close()
	gocv.FillPoly(&fill, pv, colorutil.CompletedFill)
	gocv.AddWeighted(fill, colorutil.FillAlpha, img, 1-colorutil.FillAlpha, 0, &dst)

	gocv.Polylines(&dst, pv, true, colorutil.CompletedEdge, edgeThickness)
	for i, poly := range polygons {
		if len(poly) < capture.MinVertices {
			continue
		}
		text, at := Label(i, poly)
		gocv.PutText(&dst, text, at, gocv.FontHersheySimplex, 1.0, colorutil.Black, 2)
	}
	return dst
}

// WriteFile reads the scan at imagePath, renders the polygons over it and
// writes the result to outPath. The output format follows outPath's
// extension.
func WriteFile(imagePath, outPath string, polygons []capture.Polygon) error {
	img := gocv.IMRead(imagePath, gocv.IMReadColor)
	if img.Empty() {
		return fmt.Errorf("%w: %s", ErrEmptyImage, imagePath)
	}
	defer img.Close()

	out := Render(img, polygons)
	defer out.Close()

	if ok := gocv.IMWrite(outPath, out); !ok {
		return fmt.Errorf("failed to write preview %s", outPath)
	}
	return nil
}
