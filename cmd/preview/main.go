// Command preview draws the saved regions over the scan and writes the
// result as an image.
package main

import (
	"flag"
	"log"

	"map-digitizer/internal/config"
	"map-digitizer/internal/georef"
	"map-digitizer/internal/persist"
	"map-digitizer/internal/preview"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to digitizer.yaml")
	out := flag.String("out", "", "output image (default: preview_path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *out == "" {
		*out = cfg.PreviewPath
	}

	geo, err := georef.New(cfg.Pairs())
	if err != nil {
		log.Fatalf("Failed to fit georeference: %v", err)
	}

	polys, err := persist.NewStore(cfg.GeoJSONPath).Load(geo.GeoToPixel)
	if err != nil {
		log.Fatalf("Failed to load regions: %v", err)
	}
	if len(polys) == 0 {
		log.Printf("No regions in %s", cfg.GeoJSONPath)
	}

	if err := preview.WriteFile(cfg.ImagePath, *out, polys); err != nil {
		log.Fatalf("Failed to render preview: %v", err)
	}
	log.Printf("Wrote %d regions over %s to %s", len(polys), cfg.ImagePath, *out)
}
