// Package main provides the entry point for the map digitizer.
package main

import (
	"flag"
	"fmt"
	"log"

	"map-digitizer/internal/app"
	"map-digitizer/internal/config"
	mapimage "map-digitizer/internal/image"
	"map-digitizer/internal/version"
	"map-digitizer/ui/mainwindow"
	"map-digitizer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appTitle = "Map Digitizer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to digitizer.yaml (default: search . and ./configs)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String(appTitle))
		return
	}
	log.Printf("Starting %s", version.String(appTitle))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	scan, err := mapimage.Load(cfg.ImagePath)
	if err != nil {
		log.Fatalf("Failed to load map image %s: %v", cfg.ImagePath, err)
	}
	log.Printf("Loaded %s (%dx%d, %s)", scan.Path, scan.Width(), scan.Height(), scan.Format)

	session, err := app.New(cfg, scan.Width(), scan.Height())
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fyneApp := fyneapp.NewWithID("io.github.map-digitizer")
	fyneApp.Settings().SetTheme(&app.DigitizerTheme{})

	win := mainwindow.New(fyneApp, session, scan, prefs.Load())
	win.ShowAndRun()

	if session.Modified() {
		log.Printf("Exited with unsaved changes to %s", cfg.GeoJSONPath)
	}
}
