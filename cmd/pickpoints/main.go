// Command pickpoints opens the scan and prints the pixel position of each
// click, for filling in control_points[].pixel.
package main

import (
	"flag"
	"fmt"
	"log"

	"map-digitizer/internal/app"
	"map-digitizer/internal/config"
	mapimage "map-digitizer/internal/image"
	"map-digitizer/ui/canvas"
	"map-digitizer/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// pickerSource adapts a picker to the canvas.
type pickerSource struct {
	*app.Picker
}

func (p pickerSource) Overlay() canvas.Overlay {
	return canvas.Overlay{Picks: p.Picks()}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to digitizer.yaml")
	imagePath := flag.String("i", "", "map image (default: image_path from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *imagePath != "" {
		cfg.ImagePath = *imagePath
	}

	scan, err := mapimage.Load(cfg.ImagePath)
	if err != nil {
		log.Fatalf("Failed to load map image %s: %v", cfg.ImagePath, err)
	}

	picker := app.NewPicker(scan.Width(), scan.Height(), cfg.ZoomStep)

	fyneApp := fyneapp.New()
	win := fyneApp.NewWindow("Pick control points - " + scan.Path)

	status := widget.NewLabel("Click a known town to print its pixel coordinates")
	mc := canvas.NewMapCanvas(scan.Image, pickerSource{picker})
	mc.OnStatus(status.SetText)
	mc.OnQuit(fyneApp.Quit)

	win.SetContent(container.NewBorder(nil, container.NewPadded(status), nil, nil, mc))
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if name, ok := mainwindow.KeyName(ev.Name); ok {
			mc.Handle(app.Key{Name: name})
		}
	})
	win.Resize(fyne.NewSize(1200, 900))
	win.ShowAndRun()

	// Ready to paste into digitizer.yaml.
	fmt.Println("control_points:")
	for i, p := range picker.Picks() {
		fmt.Printf("  - {name: point%d, pixel: [%d, %d], geo: [0, 0]}\n", i+1, int(p.X), int(p.Y))
	}
}
