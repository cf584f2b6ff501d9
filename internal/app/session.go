// Package app owns a digitizing session: the georeference, the polygon
// capture state, the viewport and the GeoJSON store.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"map-digitizer/internal/capture"
	"map-digitizer/internal/config"
	"map-digitizer/internal/georef"
	"map-digitizer/internal/persist"
	"map-digitizer/internal/viewport"
)

// Session is the single owner of the polygon set and the viewport. Every
// input goes through HandleEvent.
type Session struct {
	mu sync.RWMutex

	cfg   *config.Config
	geo   *georef.Georeference
	store *persist.Store

	state capture.State
	view  viewport.Viewport

	// modified is set by any polygon change and cleared by a save.
	modified bool
	status   string

	listeners map[EventType][]EventListener
}

// EventType identifies session notifications.
type EventType int

const (
	EventPolygonsChanged EventType = iota
	EventViewChanged
	EventStatus
	EventSaved
	EventQuit
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// New fits the georeference from the configured control points and restores
// any polygons saved at cfg.GeoJSONPath. A degenerate fit is an error. A
// malformed file is an error under the abort policy and is reported and
// replaced by an empty set under the empty policy.
//
// The viewport has no display size until the first Resize event, which fits
// the whole image.
func New(cfg *config.Config, imageW, imageH int) (*Session, error) {
	geo, err := georef.New(cfg.Pairs())
	if err != nil {
		return nil, fmt.Errorf("georeference: %w", err)
	}
	for _, r := range geo.Residuals() {
		log.Printf("control point %-12s residual %.6f", r.Name, r.Error)
	}
	log.Printf("mean pixel->geo residual %.6f over %d points", geo.MeanResidual(), len(geo.Pairs))

	s := &Session{
		cfg:       cfg,
		geo:       geo,
		store:     persist.NewStore(cfg.GeoJSONPath),
		view:      viewport.New(float64(imageW), float64(imageH), 0, 0),
		listeners: make(map[EventType][]EventListener),
	}

	polys, err := s.store.Load(geo.GeoToPixel)
	switch {
	case err == nil:
		s.state = capture.NewState(polys)
		if len(polys) > 0 {
			s.status = fmt.Sprintf("Loaded %d polygons from %s", len(polys), cfg.GeoJSONPath)
		} else {
			s.status = "No saved polygons, starting empty"
		}
	case errors.Is(err, persist.ErrMalformed) && cfg.OnMalformed == config.OnMalformedEmpty:
		s.status = fmt.Sprintf("Could not load saved polygons (%v), starting empty", err)
	default:
		return nil, fmt.Errorf("load polygons: %w", err)
	}
	log.Print(s.status)
	return s, nil
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Georeference returns the fitted transforms.
func (s *Session) Georeference() *georef.Georeference {
	return s.geo
}

// State returns the current capture state.
func (s *Session) State() capture.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Viewport returns the current viewport.
func (s *Session) Viewport() viewport.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Modified reports whether polygons changed since the last save.
func (s *Session) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// Status returns the most recent status line.
func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Save writes the completed polygons to the store in geographic
// coordinates. The in-progress polygon is not saved.
func (s *Session) Save() error {
	s.mu.RLock()
	polys := s.state.Completed()
	s.mu.RUnlock()

	if err := s.store.Save(polys, s.geo.PixelToGeo); err != nil {
		return fmt.Errorf("save %s: %w", s.store.Path, err)
	}

	s.mu.Lock()
	s.modified = false
	s.mu.Unlock()
	s.Emit(EventSaved, len(polys))
	return nil
}
