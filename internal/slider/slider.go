// Package slider holds the state of the before/after comparison widget.
package slider

import (
	"fmt"
	"math"
	"strconv"
	"sync"
)

// InitialPosition is where the divider starts, in percent.
const InitialPosition = 50.0

// Global release events. They are delivered to the page, not the widget,
// because the pointer can be released outside the control.
const (
	EventMouseUp  = "mouseup"
	EventTouchEnd = "touchend"
)

// Rect is the horizontal extent of the comparison container.
type Rect struct {
	Left  float64
	Width float64
}

// EventTarget is the page-level event source the slider listens on while
// mounted. Listen returns a function that removes the listener.
type EventTarget interface {
	Listen(event string, fn func()) (remove func())
}

// Slider tracks the divider position of one comparison widget.
type Slider struct {
	mu       sync.Mutex
	position float64
	dragging bool

	// OnChange, when set, receives every new position.
	OnChange func(position float64)
}

// New returns a slider at InitialPosition.
func New() *Slider {
	return &Slider{position: InitialPosition}
}

func (s *Slider) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Slider) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

// MouseDown starts a drag.
func (s *Slider) MouseDown() { s.begin() }

// TouchStart starts a drag.
func (s *Slider) TouchStart() { s.begin() }

// MouseMove moves the divider to clientX while dragging.
func (s *Slider) MouseMove(clientX float64, rect Rect) { s.move(clientX, rect) }

// TouchMove moves the divider to the first touch point while dragging.
func (s *Slider) TouchMove(clientX float64, rect Rect) { s.move(clientX, rect) }

// MouseUp ends a drag.
func (s *Slider) MouseUp() { s.end() }

// TouchEnd ends a drag.
func (s *Slider) TouchEnd() { s.end() }

func (s *Slider) begin() {
	s.mu.Lock()
	s.dragging = true
	s.mu.Unlock()
}

func (s *Slider) end() {
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

func (s *Slider) move(clientX float64, rect Rect) {
	if math.IsNaN(clientX) || math.IsNaN(rect.Left) || math.IsNaN(rect.Width) {
		return
	}
	s.mu.Lock()
	if !s.dragging {
		s.mu.Unlock()
		return
	}
	s.position = PositionAt(clientX, rect)
	position, onChange := s.position, s.OnChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(position)
	}
}

// PositionAt converts a pointer x coordinate to a percentage of rect,
// clamped to [0, 100]. A zero-width rect or a NaN input yields 0.
func PositionAt(clientX float64, rect Rect) float64 {
	if rect.Width <= 0 {
		return 0
	}
	pct := (clientX - rect.Left) / rect.Width * 100
	switch {
	case math.IsNaN(pct):
		return 0
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Mount registers the global release listeners on target and returns the
// matching cleanup.
func (s *Slider) Mount(target EventTarget) (unmount func()) {
	removers := []func(){
		target.Listen(EventMouseUp, s.MouseUp),
		target.Listen(EventTouchEnd, s.TouchEnd),
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, remove := range removers {
				remove()
			}
		})
	}
}

// ClipPath is the CSS clip-path that reveals the "after" image up to the
// divider.
func (s *Slider) ClipPath() string {
	return ClipPathAt(s.Position())
}

// ClipPathAt renders the clip-path for a given position.
func ClipPathAt(position float64) string {
	return fmt.Sprintf("inset(0 %s%% 0 0)", strconv.FormatFloat(100-position, 'f', -1, 64))
}

// HandleLeft is the CSS left offset of the divider handle.
func (s *Slider) HandleLeft() string {
	return strconv.FormatFloat(s.Position(), 'f', -1, 64) + "%"
}
