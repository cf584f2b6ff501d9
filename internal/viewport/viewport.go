// Package viewport tracks the visible window over the scan and maps device
// input positions to image pixel coordinates.
package viewport

import (
	"math"

	"map-digitizer/pkg/geometry"
)

const (
	// DefaultZoomStep is the per-notch scale factor for wheel zoom.
	DefaultZoomStep = 1.1

	// minVisibleWidth stops zoom-in once this many image pixels span the view.
	minVisibleWidth = 8.0
	// maxVisibleFactor stops zoom-out at this multiple of the image extent.
	maxVisibleFactor = 4.0
)

// Viewport is an immutable description of which part of the image is shown
// and how large the display surface is. The image is y-down with its origin
// at the top-left corner, as in the raster.
type Viewport struct {
	// Visible image region, in image pixels.
	XMin, XMax float64
	YMin, YMax float64

	// Display surface size, in device units.
	DisplayW, DisplayH float64

	// Full image size, in pixels.
	ImageW, ImageH float64
}

// New returns a viewport that shows the whole image on a display of the
// given size.
func New(imageW, imageH, displayW, displayH float64) Viewport {
	v := Viewport{ImageW: imageW, ImageH: imageH, DisplayW: displayW, DisplayH: displayH}
	return v.Fit()
}

// Fit shows the full image with equal horizontal and vertical scale, centred.
func (v Viewport) Fit() Viewport {
	if v.ImageW <= 0 || v.ImageH <= 0 || v.DisplayW <= 0 || v.DisplayH <= 0 {
		v.XMin, v.XMax = 0, v.ImageW
		v.YMin, v.YMax = 0, v.ImageH
		return v
	}

	// Device units per image pixel, limited by the tighter dimension.
	scale := v.DisplayW / v.ImageW
	if s := v.DisplayH / v.ImageH; s < scale {
		scale = s
	}
	w := v.DisplayW / scale
	h := v.DisplayH / scale
	cx, cy := v.ImageW/2, v.ImageH/2
	v.XMin, v.XMax = cx-w/2, cx+w/2
	v.YMin, v.YMax = cy-h/2, cy+h/2
	return v
}

// VisibleWidth returns the width of the visible region in image pixels.
func (v Viewport) VisibleWidth() float64 {
	return v.XMax - v.XMin
}

// VisibleHeight returns the height of the visible region in image pixels.
func (v Viewport) VisibleHeight() float64 {
	return v.YMax - v.YMin
}

// Visible returns the visible region as a rectangle in image pixels.
func (v Viewport) Visible() geometry.Rect {
	return geometry.NewRect(v.XMin, v.YMin, v.VisibleWidth(), v.VisibleHeight())
}

// ClosureTolerance converts a fraction of the visible width into image
// pixels, so the snap distance stays constant on screen across zoom levels.
func (v Viewport) ClosureTolerance(fraction float64) float64 {
	return fraction * v.VisibleWidth()
}

// DeviceToImage maps a display position to image pixel coordinates.
func (v Viewport) DeviceToImage(dx, dy float64) geometry.Point2D {
	if v.DisplayW <= 0 || v.DisplayH <= 0 {
		return geometry.Point2D{X: v.XMin, Y: v.YMin}
	}
	return geometry.Point2D{
		X: v.XMin + dx*v.VisibleWidth()/v.DisplayW,
		Y: v.YMin + dy*v.VisibleHeight()/v.DisplayH,
	}
}

// ImageToDevice maps image pixel coordinates to a display position.
func (v Viewport) ImageToDevice(p geometry.Point2D) (dx, dy float64) {
	w, h := v.VisibleWidth(), v.VisibleHeight()
	if w == 0 || h == 0 {
		return 0, 0
	}
	dx = (p.X - v.XMin) / w * v.DisplayW
	dy = (p.Y - v.YMin) / h * v.DisplayH
	return dx, dy
}

// ZoomAt scales the visible region by factor about the image point under the
// device position (dx, dy); factor < 1 zooms in. The point under the cursor
// stays under the cursor.
func (v Viewport) ZoomAt(dx, dy, factor float64) Viewport {
	w, h := v.VisibleWidth(), v.VisibleHeight()
	if factor <= 0 || w <= 0 || h <= 0 {
		return v
	}
	newW, newH := w*factor, h*factor

	if newW < minVisibleWidth {
		factor = minVisibleWidth / w
	}
	if limit := maxVisibleFactor * max(v.ImageW, v.ImageH); limit > 0 && max(newW, newH) > limit {
		factor = limit / max(w, h)
	}
	newW, newH = w*factor, h*factor

	anchor := v.DeviceToImage(dx, dy)
	relX := (v.XMax - anchor.X) / w
	relY := (v.YMax - anchor.Y) / h

	v.XMin, v.XMax = anchor.X-newW*(1-relX), anchor.X+newW*relX
	v.YMin, v.YMax = anchor.Y-newH*(1-relY), anchor.Y+newH*relY
	return v
}

// Scroll zooms in (steps > 0) or out (steps < 0) by step per notch about the
// device position.
func (v Viewport) Scroll(dx, dy float64, steps int, step float64) Viewport {
	if steps == 0 || step <= 1 {
		return v
	}
	return v.ZoomAt(dx, dy, math.Pow(step, -float64(steps)))
}

// Pan moves the view so the image follows a drag of (ddx, ddy) device units.
func (v Viewport) Pan(ddx, ddy float64) Viewport {
	if v.DisplayW <= 0 || v.DisplayH <= 0 {
		return v
	}
	sx := ddx / v.DisplayW * v.VisibleWidth()
	sy := ddy / v.DisplayH * v.VisibleHeight()
	v.XMin, v.XMax = v.XMin-sx, v.XMax-sx
	v.YMin, v.YMax = v.YMin-sy, v.YMax-sy
	return v
}

// Resize changes the display size while keeping the centre and the scale.
func (v Viewport) Resize(displayW, displayH float64) Viewport {
	if displayW <= 0 || displayH <= 0 {
		return v
	}
	if v.DisplayW <= 0 || v.DisplayH <= 0 || v.VisibleWidth() <= 0 {
		v.DisplayW, v.DisplayH = displayW, displayH
		return v.Fit()
	}
	scale := v.DisplayW / v.VisibleWidth()
	c := v.Visible().Center()
	w, h := displayW/scale, displayH/scale
	v.DisplayW, v.DisplayH = displayW, displayH
	v.XMin, v.XMax = c.X-w/2, c.X+w/2
	v.YMin, v.YMax = c.Y-h/2, c.Y+h/2
	return v
}
