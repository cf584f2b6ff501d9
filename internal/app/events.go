package app

import (
	"fmt"
	"log"

	"map-digitizer/internal/capture"
)

// DeviceEvent is a raw input from the display, in device coordinates.
type DeviceEvent interface {
	isDeviceEvent()
}

// Click is a primary button press at X, Y.
type Click struct {
	X, Y float64
}

// Drag is a pointer move of DX, DY with the button held. Only drags with
// Shift held pan the view.
type Drag struct {
	DX, DY float64
	Shift  bool
}

// Scroll is a wheel movement at X, Y. Positive Steps zoom in.
type Scroll struct {
	X, Y  float64
	Steps int
}

// Key is a key press, named as in KeyUndo and friends.
type Key struct {
	Name string
}

// Resize reports a new display surface size.
type Resize struct {
	W, H float64
}

func (Click) isDeviceEvent()  {}
func (Drag) isDeviceEvent()   {}
func (Scroll) isDeviceEvent() {}
func (Key) isDeviceEvent()    {}
func (Resize) isDeviceEvent() {}

// Key names understood by HandleEvent.
const (
	KeyUndo      = "d"
	KeyDelete    = "Delete"
	KeyBackspace = "BackSpace"
	KeyQuit      = "q"
	KeySave      = "s"
	KeyFit       = "f"
)

// CommandKind identifies what a Command asks of the front-end.
type CommandKind int

const (
	// CmdRedraw asks for the polygon overlay to be redrawn.
	CmdRedraw CommandKind = iota
	// CmdRedrawView asks for the raster to be redrawn at a new viewport.
	CmdRedrawView
	// CmdStatus carries a status line.
	CmdStatus
	// CmdQuit ends the session. It is only emitted after a successful save.
	CmdQuit
)

// Command is an output of HandleEvent.
type Command struct {
	Kind    CommandKind
	Message string
}

// HandleEvent applies one device event and returns what the front-end must
// do in response. Events are handled strictly one at a time.
func (s *Session) HandleEvent(ev DeviceEvent) []Command {
	var cmds []Command
	switch e := ev.(type) {
	case Click:
		cmds = s.applyCapture(func() capture.Event {
			return capture.AddPoint{
				P:         s.view.DeviceToImage(e.X, e.Y),
				Tolerance: s.view.ClosureTolerance(s.cfg.ClosureTolerance),
			}
		})
	case Drag:
		if !e.Shift {
			return nil
		}
		cmds = s.moveView(func() { s.view = s.view.Pan(e.DX, e.DY) })
	case Scroll:
		if e.Steps == 0 {
			return nil
		}
		cmds = s.moveView(func() { s.view = s.view.Scroll(e.X, e.Y, e.Steps, s.cfg.ZoomStep) })
	case Resize:
		cmds = s.moveView(func() { s.view = s.view.Resize(e.W, e.H) })
	case Key:
		cmds = s.handleKey(e.Name)
	}

	for _, c := range cmds {
		if c.Kind == CmdStatus {
			s.setStatus(c.Message)
		}
	}
	return cmds
}

func (s *Session) handleKey(name string) []Command {
	switch name {
	case KeyUndo, KeyDelete, KeyBackspace:
		return s.applyCapture(func() capture.Event { return capture.UndoPoint{} })
	case KeyFit:
		return s.moveView(func() { s.view = s.view.Fit() })
	case KeySave:
		if err := s.Save(); err != nil {
			log.Printf("Save failed: %v", err)
			return []Command{{Kind: CmdStatus, Message: "Save failed: " + err.Error()}}
		}
		return []Command{{Kind: CmdStatus, Message: s.savedMessage()}}
	case KeyQuit:
		if err := s.Save(); err != nil {
			log.Printf("Save failed: %v", err)
			return []Command{{Kind: CmdStatus, Message: "Save failed, not quitting: " + err.Error()}}
		}
		s.Emit(EventQuit, nil)
		return []Command{{Kind: CmdStatus, Message: s.savedMessage()}, {Kind: CmdQuit}}
	}
	return nil
}

func (s *Session) savedMessage() string {
	return fmt.Sprintf("Saved %d polygons to %s", s.State().CompletedCount(), s.store.Path)
}

// applyCapture runs one state machine transition under the lock and translates
// its commands. event is called with the lock held.
func (s *Session) applyCapture(event func() capture.Event) []Command {
	s.mu.Lock()
	next, out := capture.Apply(s.state, event())
	s.state = next
	var cmds []Command
	changed := false
	for _, c := range out {
		switch c.Kind {
		case capture.CmdRedraw:
			changed = true
			cmds = append(cmds, Command{Kind: CmdRedraw})
		case capture.CmdStatus:
			cmds = append(cmds, Command{Kind: CmdStatus, Message: c.Message})
		}
	}
	if changed {
		s.modified = true
	}
	s.mu.Unlock()

	if changed {
		s.Emit(EventPolygonsChanged, next)
	}
	return cmds
}

func (s *Session) moveView(update func()) []Command {
	s.mu.Lock()
	before := s.view
	update()
	after := s.view
	s.mu.Unlock()

	if after == before {
		return nil
	}
	s.Emit(EventViewChanged, after)
	return []Command{{Kind: CmdRedrawView}}
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	s.mu.Unlock()
	log.Print(msg)
	s.Emit(EventStatus, msg)
}
