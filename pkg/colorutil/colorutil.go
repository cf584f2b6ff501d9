// Package colorutil provides the overlay palette and alpha blending shared by
// the on-screen canvas and exported previews.
package colorutil

import (
	"image/color"
)

// Overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Polygon styling.
const (
	// FillAlpha is the opacity of completed polygon fills.
	FillAlpha = 0.3
)

var (
	CompletedFill = Blue
	CompletedEdge = Yellow
	InProgress    = Red
)

// Blend mixes src over dst with the given opacity in [0, 1]. The result is
// opaque.
func Blend(dst, src color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return color.RGBA{R: src.R, G: src.G, B: src.B, A: 255}
	}
	inv := 1 - alpha
	mix := func(d, s uint8) uint8 {
		return uint8(float64(s)*alpha + float64(d)*inv + 0.5)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
