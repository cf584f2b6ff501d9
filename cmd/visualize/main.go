// Command visualize labels the digitized regions and writes an interactive
// HTML map of them.
package main

import (
	"flag"
	"log"

	"map-digitizer/internal/chart"
	"map-digitizer/internal/config"
	"map-digitizer/internal/labeling"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to digitizer.yaml")
	in := flag.String("in", "", "digitized regions (default: geojson_path)")
	out := flag.String("out", "", "HTML output (default: chart_path)")
	named := flag.Bool("named", false, "also write named_geojson_path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *in == "" {
		*in = cfg.GeoJSONPath
	}
	if *out == "" {
		*out = cfg.ChartPath
	}

	fc, err := labeling.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read regions: %v", err)
	}
	res := labeling.Label(fc, cfg.Places)
	if um := res.Unmatched(); len(um) > 0 {
		log.Printf("%d regions were not assigned a name", len(um))
	}

	if *named {
		if err := labeling.WriteFile(cfg.NamedGeoJSONPath, res.FeatureCollection()); err != nil {
			log.Fatalf("Failed to write %s: %v", cfg.NamedGeoJSONPath, err)
		}
	}

	opts := chart.Options{Title: cfg.Chart.Title, Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	if err := chart.WriteFile(*out, res, opts); err != nil {
		log.Fatalf("Failed to write chart: %v", err)
	}
	log.Printf("Interactive map saved as %s", *out)
}
