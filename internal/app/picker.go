package app

import (
	"fmt"
	"log"
	"math"
	"sync"

	"map-digitizer/internal/viewport"
	"map-digitizer/pkg/geometry"
)

// Picker records clicked pixel positions on a scan. It is used to read off
// control point pixel coordinates.
type Picker struct {
	mu       sync.RWMutex
	view     viewport.Viewport
	zoomStep float64
	picks    []geometry.Point2D
}

// NewPicker creates a picker over an image of the given size.
func NewPicker(imageW, imageH int, zoomStep float64) *Picker {
	return &Picker{
		view:     viewport.New(float64(imageW), float64(imageH), 0, 0),
		zoomStep: zoomStep,
	}
}

// Viewport returns the current viewport.
func (p *Picker) Viewport() viewport.Viewport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Picks returns the picked points, truncated to whole pixels, in click order.
func (p *Picker) Picks() []geometry.Point2D {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]geometry.Point2D, len(p.picks))
	copy(out, p.picks)
	return out
}

// HandleEvent picks on click, pans on shift-drag, zooms on scroll and
// removes the last pick on the undo keys.
func (p *Picker) HandleEvent(ev DeviceEvent) []Command {
	p.mu.Lock()
	defer p.mu.Unlock()

	before := p.view
	switch e := ev.(type) {
	case Click:
		pt := p.view.DeviceToImage(e.X, e.Y)
		pt = geometry.Point2D{X: math.Floor(pt.X), Y: math.Floor(pt.Y)}
		p.picks = append(p.picks, pt)
		msg := fmt.Sprintf("Point %d: (%d, %d)", len(p.picks), int(pt.X), int(pt.Y))
		log.Print(msg)
		return []Command{{Kind: CmdRedraw}, {Kind: CmdStatus, Message: msg}}
	case Drag:
		if e.Shift {
			p.view = p.view.Pan(e.DX, e.DY)
		}
	case Scroll:
		p.view = p.view.Scroll(e.X, e.Y, e.Steps, p.zoomStep)
	case Resize:
		p.view = p.view.Resize(e.W, e.H)
	case Key:
		switch e.Name {
		case KeyFit:
			p.view = p.view.Fit()
		case KeyUndo, KeyDelete, KeyBackspace:
			if len(p.picks) == 0 {
				return []Command{{Kind: CmdStatus, Message: "Nothing to undo"}}
			}
			p.picks = p.picks[:len(p.picks)-1]
			return []Command{{Kind: CmdRedraw}, {Kind: CmdStatus, Message: fmt.Sprintf("Removed point %d", len(p.picks)+1)}}
		case KeyQuit:
			return []Command{{Kind: CmdQuit}}
		}
	}
	if p.view != before {
		return []Command{{Kind: CmdRedrawView}}
	}
	return nil
}
