// Package mainwindow provides the digitizer window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"map-digitizer/internal/app"
	mapimage "map-digitizer/internal/image"
	"map-digitizer/internal/version"
	"map-digitizer/ui/canvas"
	"map-digitizer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultWidth  = 1200
	defaultHeight = 900
)

// keyNames maps keyboard keys to session key names.
var keyNames = map[fyne.KeyName]string{
	fyne.KeyD:         app.KeyUndo,
	fyne.KeyDelete:    app.KeyDelete,
	fyne.KeyBackspace: app.KeyBackspace,
	fyne.KeyQ:         app.KeyQuit,
	fyne.KeyS:         app.KeySave,
	fyne.KeyF:         app.KeyFit,
}

// KeyName returns the session key name for a keyboard key.
func KeyName(k fyne.KeyName) (string, bool) {
	name, ok := keyNames[k]
	return name, ok
}

// sessionSource adapts a session to the canvas.
type sessionSource struct {
	*app.Session
}

func (s sessionSource) Overlay() canvas.Overlay {
	return canvas.OverlayFromState(s.State())
}

// MainWindow is the digitizer window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	session   *app.Session
	prefs     *prefs.Prefs
	title     string
	canvas    *canvas.MapCanvas
	statusBar *widget.Label
}

// New creates the window for a session over scan.
func New(fyneApp fyne.App, session *app.Session, scan *mapimage.Scan, p *prefs.Prefs) *MainWindow {
	title := "Map Digitizer - " + filepath.Base(scan.Path)
	mw := &MainWindow{
		Window:  fyneApp.NewWindow(title),
		app:     fyneApp,
		session: session,
		prefs:   p,
		title:   title,
	}

	mw.setupUI(scan)
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, defaultWidth)),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, defaultHeight)),
	))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI(scan *mapimage.Scan) {
	mw.canvas = canvas.NewMapCanvas(scan.Image, sessionSource{mw.session})
	mw.canvas.OnStatus(mw.updateStatus)
	mw.canvas.OnQuit(mw.quit)

	mw.statusBar = widget.NewLabel(mw.session.Status())
	help := widget.NewLabel("click: add point   shift+drag: pan   wheel: zoom   d/Del: undo   s: save   q: save and quit   f: fit")

	bottom := container.NewVBox(container.NewPadded(mw.statusBar), help)

	content := container.NewBorder(
		nil,       // top
		bottom,    // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)
	mw.SetContent(content)

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if name, ok := KeyName(ev.Name); ok {
			mw.canvas.Handle(app.Key{Name: name})
		}
	})
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save", func() { mw.canvas.Handle(app.Key{Name: app.KeySave}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save and Quit", func() { mw.canvas.Handle(app.Key{Name: app.KeyQuit}) }),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Point", func() { mw.canvas.Handle(app.Key{Name: app.KeyUndo}) }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Fit to Window", func() { mw.canvas.Handle(app.Key{Name: app.KeyFit}) }),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventPolygonsChanged, func(interface{}) {
		mw.SetTitle(mw.title + " *")
	})
	mw.session.On(app.EventSaved, func(interface{}) {
		mw.SetTitle(mw.title)
	})

	mw.SetCloseIntercept(func() {
		if !mw.session.Modified() {
			mw.quit()
			return
		}
		dialog.ShowConfirm("Unsaved polygons",
			"Save polygons before closing?",
			func(save bool) {
				if save {
					// Quits only when the save succeeds.
					mw.canvas.Handle(app.Key{Name: app.KeyQuit})
					return
				}
				mw.quit()
			}, mw.Window)
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) quit() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
	mw.app.Quit()
}

func (mw *MainWindow) onAbout() {
	geo := mw.session.Georeference()
	dialog.ShowInformation("About Map Digitizer",
		fmt.Sprintf("%s\n\n"+
			"Digitizes region boundaries on a scanned map.\n\n"+
			"Control points: %d\n"+
			"Mean residual: %.6f",
			version.String("Map Digitizer"), len(geo.Pairs), geo.MeanResidual()),
		mw.Window)
}
