// Package canvas provides drawing primitives for the map canvas.
package canvas

import (
	"image"
	"image/color"
	"sort"

	"map-digitizer/pkg/colorutil"
	"map-digitizer/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

func setPixel(output *image.RGBA, x, y int, col color.RGBA) {
	if (image.Point{X: x, Y: y}).In(output.Bounds()) {
		output.SetRGBA(x, y, col)
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				setPixel(output, x1+s, y1+t, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillPolygon blends col over the polygon interior using a scanline fill.
// Points are in output pixel coordinates.
func fillPolygon(output *image.RGBA, points []geometry.Point2D, col color.RGBA, alpha float64) {
	if len(points) < 3 {
		return
	}
	bounds := output.Bounds()
	bb := geometry.BoundingBox(points)

	minY, maxY := int(bb.Y), int(bb.Y+bb.Height)
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY >= bounds.Max.Y {
		maxY = bounds.Max.Y - 1
	}

	n := len(points)
	var xs []float64
	for y := minY; y <= maxY; y++ {
		// Sample at the pixel centre.
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				t := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x1, x2 := int(xs[i]+0.5), int(xs[i+1]+0.5)
			if x1 < bounds.Min.X {
				x1 = bounds.Min.X
			}
			if x2 > bounds.Max.X {
				x2 = bounds.Max.X
			}
			for x := x1; x < x2; x++ {
				output.SetRGBA(x, y, colorutil.Blend(output.RGBAAt(x, y), col, alpha))
			}
		}
	}
}

// drawPolyline strokes consecutive points, closing the ring when closed is
// set.
func drawPolyline(output *image.RGBA, points []geometry.Point2D, col color.RGBA, thickness int, closed bool) {
	n := len(points)
	if n < 2 {
		return
	}
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		p1 := points[i]
		p2 := points[(i+1)%n]
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), col, thickness)
	}
}

// drawMarker draws a filled disc of the given radius.
func drawMarker(output *image.RGBA, cx, cy float64, radius float64, col color.RGBA) {
	r2 := radius * radius
	for y := int(cy - radius - 1); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius - 1); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				setPixel(output, x, y, col)
			}
		}
	}
}

// drawCross draws a plus-shaped marker centred on (cx, cy).
func drawCross(output *image.RGBA, cx, cy, size int, col color.RGBA) {
	drawLine(output, cx-size, cy, cx+size, cy, col, 2)
	drawLine(output, cx, cy-size, cx, cy+size, col, 2)
}

// drawNumber draws a decimal label with its top-left corner at (x, y).
// Characters other than digits are skipped.
func drawNumber(output *image.RGBA, label string, x, y, scale int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	charWidth := 3 * scale
	spacing := scale

	for i, ch := range label {
		if ch < '0' || ch > '9' {
			continue
		}
		pattern := digitPatterns[ch-'0']
		charX := x + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						setPixel(output, charX+c*scale+dx, y+row*scale+dy, col)
					}
				}
			}
		}
	}
}
