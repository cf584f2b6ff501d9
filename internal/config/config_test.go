package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.ControlPoints) != 5 {
		t.Errorf("control points = %d, want 5", len(cfg.ControlPoints))
	}
	if cfg.ControlPoints[0].Pixel != [2]float64{3351, 2787} || cfg.ControlPoints[0].Geo != [2]float64{49.5883, 34.5514} {
		t.Errorf("first control point = %+v", cfg.ControlPoints[0])
	}
	if len(cfg.Places) != 15 {
		t.Errorf("places = %d, want 15", len(cfg.Places))
	} else if p := cfg.Places[10]; p.Name != "Полтавський" || p.Lat != 49.5894 || p.Lon != 34.5511 {
		t.Errorf("Places[10] = %+v", p)
	}
	if cfg.ClosureTolerance != 0.02 || cfg.OnMalformed != OnMalformedAbort {
		t.Errorf("tolerance %v policy %q", cfg.ClosureTolerance, cfg.OnMalformed)
	}

	pairs := cfg.Pairs()
	if pairs[4].Name != "Pryluky" || pairs[4].Pixel.X != 1881 || pairs[4].Geo.Y != 32.3876 {
		t.Errorf("Pairs()[4] = %+v", pairs[4])
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digitizer.yaml")
	body := `
image_path: scans/map.tif
geojson_path: out/regions.geojson
closure_tolerance: 0.05
on_malformed: empty
control_points:
  - {name: a, pixel: [0, 0], geo: [0, 0]}
  - {name: b, pixel: [1, 0], geo: [2, 0]}
  - {name: c, pixel: [0, 1], geo: [0, 2]}
chart:
  title: Test
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImagePath != "scans/map.tif" || cfg.GeoJSONPath != "out/regions.geojson" {
		t.Errorf("paths = %q, %q", cfg.ImagePath, cfg.GeoJSONPath)
	}
	if cfg.ClosureTolerance != 0.05 || cfg.OnMalformed != OnMalformedEmpty {
		t.Errorf("tolerance %v policy %q", cfg.ClosureTolerance, cfg.OnMalformed)
	}
	if len(cfg.ControlPoints) != 3 || cfg.ControlPoints[1].Geo != [2]float64{2, 0} {
		t.Errorf("control points = %+v", cfg.ControlPoints)
	}
	if cfg.Chart.Title != "Test" || cfg.Chart.Width != 700 {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.ZoomStep != 1.1 {
		t.Errorf("zoom step default lost: %v", cfg.ZoomStep)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digitizer.yaml")
	if err := os.WriteFile(path, []byte("image_path: a.jpg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DIGITIZER_IMAGE_PATH", "b.jpg")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ImagePath != "b.jpg" {
		t.Errorf("image_path = %q, want env override", cfg.ImagePath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.ImagePath = ""
	cfg.ControlPoints = cfg.ControlPoints[:2]
	cfg.ClosureTolerance = 0
	cfg.ZoomStep = 1
	cfg.OnMalformed = "ignore"
	cfg.Places = append(cfg.Places, Place{})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"image_path", "control_points", "closure_tolerance", "zoom_step", "on_malformed", "places[15]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s:\n%v", want, err)
		}
	}
}

func TestValidateLatitudeRange(t *testing.T) {
	cfg := Default()
	cfg.ControlPoints[0].Geo = [2]float64{134.55, 49.58}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "latitude") {
		t.Errorf("swapped lat/lon not caught: %v", err)
	}
}
