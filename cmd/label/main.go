// Command label names the digitized regions by the reference places they
// contain and writes the named FeatureCollection.
package main

import (
	"flag"
	"log"

	"map-digitizer/internal/config"
	"map-digitizer/internal/labeling"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to digitizer.yaml")
	in := flag.String("in", "", "digitized regions (default: geojson_path)")
	out := flag.String("out", "", "named output (default: named_geojson_path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *in == "" {
		*in = cfg.GeoJSONPath
	}
	if *out == "" {
		*out = cfg.NamedGeoJSONPath
	}

	fc, err := labeling.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read regions: %v", err)
	}

	res := labeling.Label(fc, cfg.Places)
	report(res)

	if err := labeling.WriteFile(*out, res.FeatureCollection()); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d named regions to %s", len(res.Regions), *out)
}

func report(res *labeling.Result) {
	for _, r := range res.Ambiguous() {
		log.Printf("Region %d contains %v, named %s", r.ID, r.Candidates, r.Name)
	}
	if um := res.Unmatched(); len(um) > 0 {
		log.Printf("%d regions were not assigned a name", len(um))
		for _, r := range um {
			log.Printf("  region %d", r.ID)
		}
	}
}
