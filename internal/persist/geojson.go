// Package persist stores completed polygons as a GeoJSON FeatureCollection
// in geographic coordinates and restores them in pixel space.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"map-digitizer/internal/capture"
	"map-digitizer/internal/georef"
	"map-digitizer/pkg/geometry"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrMalformed is returned when a persisted file exists but cannot be read
// as a FeatureCollection of polygons.
var ErrMalformed = errors.New("malformed GeoJSON")

// Store reads and writes one GeoJSON file.
type Store struct {
	Path string
}

// NewStore creates a store for the given path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// featureDoc keeps an empty properties object on output; orb writes null
// for an empty property map.
type featureDoc struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   *geojson.Geometry      `json:"geometry"`
}

type collectionDoc struct {
	Type     string       `json:"type"`
	Features []featureDoc `json:"features"`
}

// Marshal converts pixel polygons to a FeatureCollection using pxToGeo.
// Each transformed (lat, lon) vertex is written as [lon, lat] and every
// ring is closed.
func Marshal(polygons []capture.Polygon, pxToGeo geometry.AffineTransform) ([]byte, error) {
	doc := collectionDoc{Type: "FeatureCollection", Features: make([]featureDoc, 0, len(polygons))}

	for _, poly := range polygons {
		if len(poly) == 0 {
			continue
		}
		geo := georef.Apply(poly, pxToGeo)

		ring := make(orb.Ring, 0, len(geo)+1)
		for _, latLon := range geometry.CloseRing(geo) {
			lonLat := latLon.Swap()
			ring = append(ring, orb.Point{lonLat.X, lonLat.Y})
		}

		doc.Features = append(doc.Features, featureDoc{
			Type:       "Feature",
			Properties: map[string]interface{}{},
			Geometry:   geojson.NewGeometry(orb.Polygon{ring}),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses a FeatureCollection and maps each Polygon's outer ring
// back to pixel space using geoToPx. Non-polygon geometries and polygons
// with fewer than three distinct ring vertices are skipped.
func Unmarshal(data []byte, geoToPx geometry.AffineTransform) ([]capture.Polygon, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: top-level type %q", ErrMalformed, probe.Type)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var out []capture.Polygon
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			continue
		}
		if len(poly) == 0 {
			log.Printf("Skipping feature %d: polygon has no rings", i)
			continue
		}

		latLon := make([]geometry.Point2D, 0, len(poly[0]))
		for _, pt := range poly[0] {
			latLon = append(latLon, geometry.Point2D{X: pt[1], Y: pt[0]})
		}
		latLon = geometry.OpenRing(latLon)
		if len(latLon) < capture.MinVertices {
			log.Printf("Skipping feature %d: ring has %d vertices", i, len(latLon))
			continue
		}

		out = append(out, capture.Polygon(georef.Apply(latLon, geoToPx)))
	}
	return out, nil
}

// Save writes the polygons to the store's file.
func (s *Store) Save(polygons []capture.Polygon, pxToGeo geometry.AffineTransform) error {
	data, err := Marshal(polygons, pxToGeo)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.Path, err)
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// Load reads polygons from the store's file. A missing file yields no
// polygons and no error.
func (s *Store) Load(geoToPx geometry.AffineTransform) ([]capture.Polygon, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	polys, err := Unmarshal(data, geoToPx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return polys, nil
}

// Exists reports whether the store's file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
