// Package labeling names digitized polygons by the reference places they
// contain.
package labeling

import (
	"fmt"
	"os"

	"map-digitizer/internal/config"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Region is one polygon with the name it was assigned.
type Region struct {
	ID      int
	Name    string
	Matched bool
	// Candidates lists every place inside the polygon, in table order.
	Candidates []string
	Polygon    orb.Polygon
}

// Result is the outcome of a labeling pass.
type Result struct {
	Regions []Region
	Places  []config.Place
}

// Unmatched returns the regions that contain no reference place.
func (r *Result) Unmatched() []Region {
	var out []Region
	for _, reg := range r.Regions {
		if !reg.Matched {
			out = append(out, reg)
		}
	}
	return out
}

// Ambiguous returns the regions that contain more than one reference place.
func (r *Result) Ambiguous() []Region {
	var out []Region
	for _, reg := range r.Regions {
		if len(reg.Candidates) > 1 {
			out = append(out, reg)
		}
	}
	return out
}

// Label assigns each polygon feature the first place (in table order) it
// contains. Features that are not polygons are ignored; IDs are the index of
// the feature in the input collection.
func Label(fc *geojson.FeatureCollection, places []config.Place) *Result {
	res := &Result{Places: places}
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			continue
		}

		reg := Region{ID: i, Polygon: poly}
		for _, p := range places {
			// GeoJSON order: X is longitude.
			if planar.PolygonContains(poly, orb.Point{p.Lon, p.Lat}) {
				reg.Candidates = append(reg.Candidates, p.Name)
			}
		}
		if len(reg.Candidates) > 0 {
			reg.Name = reg.Candidates[0]
			reg.Matched = true
		}
		res.Regions = append(res.Regions, reg)
	}
	return res
}

// FeatureCollection returns the labeled regions with "name" and "id"
// properties. Unmatched regions carry a null name.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, reg := range r.Regions {
		f := geojson.NewFeature(reg.Polygon)
		if reg.Matched {
			f.Properties["name"] = reg.Name
		} else {
			f.Properties["name"] = nil
		}
		f.Properties["id"] = reg.ID
		fc.Append(f)
	}
	return fc
}

// ReadFile parses a GeoJSON FeatureCollection.
func ReadFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fc, nil
}

// WriteFile writes a FeatureCollection to path.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
