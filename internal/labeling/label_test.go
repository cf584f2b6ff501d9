package labeling

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"map-digitizer/internal/config"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func square(lon, lat, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{lon, lat}, {lon + size, lat}, {lon + size, lat + size}, {lon, lat + size}, {lon, lat},
	}}
}

func collection(geoms ...orb.Geometry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range geoms {
		fc.Append(geojson.NewFeature(g))
	}
	return fc
}

var places = []config.Place{
	{Name: "Poltava", Lat: 49.5894, Lon: 34.5511},
	{Name: "Lubny", Lat: 50.0161, Lon: 32.9886},
	{Name: "Khorol", Lat: 49.7822, Lon: 33.2741},
}

func TestLabelAssignsContainedPlace(t *testing.T) {
	fc := collection(
		square(34, 49, 1),       // Poltava
		square(32.5, 49.5, 1),   // Lubny and Khorol
		square(20, 20, 1),       // nothing
		orb.Point{34.55, 49.58}, // skipped
	)

	res := Label(fc, places)
	if len(res.Regions) != 3 {
		t.Fatalf("regions = %d, want 3", len(res.Regions))
	}
	if r := res.Regions[0]; !r.Matched || r.Name != "Poltava" || r.ID != 0 {
		t.Errorf("region 0 = %+v", r)
	}
	if r := res.Regions[1]; r.Name != "Lubny" || len(r.Candidates) != 2 {
		t.Errorf("region 1 = %+v, want first match in table order", r)
	}
	if um := res.Unmatched(); len(um) != 1 || um[0].ID != 2 {
		t.Errorf("unmatched = %+v", um)
	}
	if amb := res.Ambiguous(); len(amb) != 1 || amb[0].ID != 1 {
		t.Errorf("ambiguous = %+v", amb)
	}
}

func TestFeatureCollectionProperties(t *testing.T) {
	res := Label(collection(square(34, 49, 1), square(0, 0, 1)), places)

	data, err := res.FeatureCollection().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var doc struct {
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Features) != 2 {
		t.Fatalf("features = %d", len(doc.Features))
	}
	if doc.Features[0].Properties["name"] != "Poltava" || doc.Features[0].Properties["id"] != float64(0) {
		t.Errorf("feature 0 properties = %v", doc.Features[0].Properties)
	}
	name, ok := doc.Features[1].Properties["name"]
	if !ok || name != nil {
		t.Errorf("unmatched name = %v (present %v), want null", name, ok)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.geojson")
	res := Label(collection(square(34, 49, 1)), places)
	if err := WriteFile(path, res.FeatureCollection()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(fc.Features) != 1 || fc.Features[0].Properties.MustString("name", "") != "Poltava" {
		t.Errorf("round trip lost the name: %+v", fc.Features)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.geojson")); err == nil {
		t.Error("expected error for missing file")
	}
}
