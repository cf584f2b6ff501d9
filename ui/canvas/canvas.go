// Package canvas provides the map canvas: the scan resampled to the current
// viewport with the polygon overlay drawn on top.
package canvas

import (
	"image"
	"image/color"

	"map-digitizer/internal/app"
	"map-digitizer/internal/viewport"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// background fills the area outside the scan.
var background = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}

// Source is what the canvas displays and where it sends input.
type Source interface {
	Viewport() viewport.Viewport
	Overlay() Overlay
	HandleEvent(ev app.DeviceEvent) []app.Command
}

// MapCanvas displays a scan through a Source's viewport.
type MapCanvas struct {
	widget.BaseWidget

	scan   image.Image
	source Source
	raster *fynecanvas.Raster

	// Shift state from the last mouse press; drags pan only with it held.
	shift    bool
	lastSize fyne.Size

	// Callbacks
	onStatus func(msg string)
	onQuit   func()
}

var (
	_ fyne.Tappable     = (*MapCanvas)(nil)
	_ fyne.Draggable    = (*MapCanvas)(nil)
	_ fyne.Scrollable   = (*MapCanvas)(nil)
	_ desktop.Mouseable = (*MapCanvas)(nil)
)

// NewMapCanvas creates a canvas for scan driven by source.
func NewMapCanvas(scan image.Image, source Source) *MapCanvas {
	c := &MapCanvas{scan: scan, source: source}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels
	c.ExtendBaseWidget(c)
	return c
}

// OnStatus sets a callback for status lines.
func (c *MapCanvas) OnStatus(callback func(msg string)) {
	c.onStatus = callback
}

// OnQuit sets a callback invoked after the source asks to quit.
func (c *MapCanvas) OnQuit(callback func()) {
	c.onQuit = callback
}

// Handle sends an event to the source and carries out the returned commands.
func (c *MapCanvas) Handle(ev app.DeviceEvent) {
	redraw := false
	for _, cmd := range c.source.HandleEvent(ev) {
		switch cmd.Kind {
		case app.CmdRedraw, app.CmdRedrawView:
			redraw = true
		case app.CmdStatus:
			if c.onStatus != nil {
				c.onStatus(cmd.Message)
			}
		case app.CmdQuit:
			if c.onQuit != nil {
				c.onQuit()
			}
		}
	}
	if redraw {
		c.raster.Refresh()
	}
}

// Tapped adds a point at the tap position.
func (c *MapCanvas) Tapped(ev *fyne.PointEvent) {
	// Reject clicks outside widget bounds
	size := c.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	c.Handle(app.Click{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
}

// Dragged pans the view while shift is held.
func (c *MapCanvas) Dragged(ev *fyne.DragEvent) {
	c.Handle(app.Drag{DX: float64(ev.Dragged.DX), DY: float64(ev.Dragged.DY), Shift: c.shift})
}

// DragEnd implements fyne.Draggable.
func (c *MapCanvas) DragEnd() {}

// Scrolled zooms about the cursor, one step per wheel event.
func (c *MapCanvas) Scrolled(ev *fyne.ScrollEvent) {
	steps := 0
	if ev.Scrolled.DY > 0 {
		steps = 1
	} else if ev.Scrolled.DY < 0 {
		steps = -1
	}
	c.Handle(app.Scroll{X: float64(ev.Position.X), Y: float64(ev.Position.Y), Steps: steps})
}

// MouseDown records the modifier state for the following drag.
func (c *MapCanvas) MouseDown(ev *desktop.MouseEvent) {
	c.shift = ev.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp implements desktop.Mouseable.
func (c *MapCanvas) MouseUp(*desktop.MouseEvent) {
	c.shift = false
}

// Refresh redraws the raster.
func (c *MapCanvas) Refresh() {
	c.raster.Refresh()
}

// draw is the raster drawing function. w and h are in output pixels, which
// differ from the viewport's display units on scaled screens.
func (c *MapCanvas) draw(w, h int) image.Image {
	v := c.source.Viewport()
	v.DisplayW, v.DisplayH = float64(w), float64(h)

	output := RenderView(c.scan, v, w, h)
	DrawOverlay(output, v, c.source.Overlay())
	return output
}

// RenderView resamples the visible part of scan into a w x h image. Zoomed
// in, pixels are replicated; zoomed out, they are filtered.
func RenderView(scan image.Image, v viewport.Viewport, w, h int) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(output, output.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)
	if scan == nil || v.VisibleWidth() <= 0 || v.VisibleHeight() <= 0 {
		return output
	}

	sx := float64(w) / v.VisibleWidth()
	sy := float64(h) / v.VisibleHeight()
	s2d := f64.Aff3{
		sx, 0, -v.XMin * sx,
		0, sy, -v.YMin * sy,
	}

	var interp xdraw.Interpolator = xdraw.ApproxBiLinear
	if sx >= 1 {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(output, s2d, scan, scan.Bounds(), xdraw.Src, nil)
	return output
}

// CreateRenderer implements fyne.Widget.
func (c *MapCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &mapCanvasRenderer{canvas: c}
}

type mapCanvasRenderer struct {
	canvas *MapCanvas
}

func (r *mapCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	if size.Width > 0 && size.Height > 0 && size != r.canvas.lastSize {
		r.canvas.lastSize = size
		r.canvas.Handle(app.Resize{W: float64(size.Width), H: float64(size.Height)})
	}
}

func (r *mapCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *mapCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *mapCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *mapCanvasRenderer) Destroy() {}
