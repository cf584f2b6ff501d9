package georef

import (
	"fmt"

	"map-digitizer/pkg/geometry"
)

// ControlPointPair ties a scan pixel to the geographic location it depicts.
// Geo is stored as (X: latitude, Y: longitude).
type ControlPointPair struct {
	Name  string
	Pixel geometry.Point2D
	Geo   geometry.Point2D
}

// Residual is the fit error for one control point, in geographic units.
type Residual struct {
	Name  string
	Error float64
}

// Georeference holds the two transforms of a session.
//
// PixelToGeo and GeoToPixel are independent least-squares fits over the same
// correspondences in opposite directions. GeoToPixel is deliberately not the
// matrix inverse of PixelToGeo.
type Georeference struct {
	Pairs      []ControlPointPair
	PixelToGeo geometry.AffineTransform
	GeoToPixel geometry.AffineTransform
}

// New fits both directions from the given pairs.
func New(pairs []ControlPointPair) (*Georeference, error) {
	px := make([]geometry.Point2D, len(pairs))
	geo := make([]geometry.Point2D, len(pairs))
	for i, p := range pairs {
		px[i] = p.Pixel
		geo[i] = p.Geo
	}

	toGeo, err := Fit(px, geo)
	if err != nil {
		return nil, fmt.Errorf("fit pixel->geo: %w", err)
	}
	toPx, err := Fit(geo, px)
	if err != nil {
		return nil, fmt.Errorf("fit geo->pixel: %w", err)
	}

	kept := make([]ControlPointPair, len(pairs))
	copy(kept, pairs)
	return &Georeference{Pairs: kept, PixelToGeo: toGeo, GeoToPixel: toPx}, nil
}

// ToGeo maps pixel points to (lat, lon).
func (g *Georeference) ToGeo(points []geometry.Point2D) []geometry.Point2D {
	return Apply(points, g.PixelToGeo)
}

// ToPixel maps (lat, lon) points to pixels.
func (g *Georeference) ToPixel(points []geometry.Point2D) []geometry.Point2D {
	return Apply(points, g.GeoToPixel)
}

// Residuals reports how far each control pixel lands from its geographic
// position under PixelToGeo.
func (g *Georeference) Residuals() []Residual {
	out := make([]Residual, len(g.Pairs))
	for i, p := range g.Pairs {
		out[i] = Residual{Name: p.Name, Error: g.PixelToGeo.Apply(p.Pixel).Distance(p.Geo)}
	}
	return out
}

// MeanResidual is the mean of Residuals.
func (g *Georeference) MeanResidual() float64 {
	px := make([]geometry.Point2D, len(g.Pairs))
	geo := make([]geometry.Point2D, len(g.Pairs))
	for i, p := range g.Pairs {
		px[i] = p.Pixel
		geo[i] = p.Geo
	}
	return MeanResidual(px, geo, g.PixelToGeo)
}
