package slider

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	listeners map[string][]*func()
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{listeners: map[string][]*func(){}}
}

func (f *fakeTarget) Listen(event string, fn func()) func() {
	ref := &fn
	f.listeners[event] = append(f.listeners[event], ref)
	return func() {
		kept := f.listeners[event][:0]
		for _, l := range f.listeners[event] {
			if l != ref {
				kept = append(kept, l)
			}
		}
		f.listeners[event] = kept
	}
}

func (f *fakeTarget) dispatch(event string) {
	for _, l := range f.listeners[event] {
		(*l)()
	}
}

func (f *fakeTarget) count() int {
	n := 0
	for _, ls := range f.listeners {
		n += len(ls)
	}
	return n
}

func TestPositionClamps(t *testing.T) {
	rect := Rect{Left: 100, Width: 400}
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "left of container", x: 20, want: 0},
		{name: "left edge", x: 100, want: 0},
		{name: "middle", x: 300, want: 50},
		{name: "quarter", x: 200, want: 25},
		{name: "right edge", x: 500, want: 100},
		{name: "right of container", x: 900, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.MouseDown()
			s.MouseMove(tt.x, rect)
			assert.InDelta(t, tt.want, s.Position(), 1e-9)
		})
	}
}

func TestMoveIgnoredWhenNotDragging(t *testing.T) {
	s := New()
	s.MouseMove(0, Rect{Left: 0, Width: 100})
	assert.Equal(t, InitialPosition, s.Position())

	s.TouchStart()
	s.TouchMove(10, Rect{Left: 0, Width: 100})
	assert.InDelta(t, 10, s.Position(), 1e-9)

	s.TouchEnd()
	s.TouchMove(90, Rect{Left: 0, Width: 100})
	assert.InDelta(t, 10, s.Position(), 1e-9)
}

func TestZeroWidthContainer(t *testing.T) {
	assert.Equal(t, 0.0, PositionAt(50, Rect{Left: 0, Width: 0}))
}

func TestNaNCoordinates(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 0.0, PositionAt(nan, Rect{Left: 0, Width: 100}))
	assert.Equal(t, 0.0, PositionAt(50, Rect{Left: nan, Width: 100}))
	assert.Equal(t, 0.0, PositionAt(50, Rect{Left: 0, Width: nan}))

	s := New()
	s.MouseDown()
	s.MouseMove(25, Rect{Left: 0, Width: 100})
	s.MouseMove(nan, Rect{Left: 0, Width: 100})
	s.TouchMove(60, Rect{Left: 0, Width: nan})
	assert.InDelta(t, 25, s.Position(), 1e-9)
	assert.Equal(t, "inset(0 75% 0 0)", s.ClipPath())
}

func TestGlobalReleaseEndsDrag(t *testing.T) {
	target := newFakeTarget()
	s := New()
	unmount := s.Mount(target)
	require.Equal(t, 2, target.count())

	s.MouseDown()
	require.True(t, s.Dragging())
	target.dispatch(EventMouseUp)
	assert.False(t, s.Dragging())

	s.TouchStart()
	target.dispatch(EventTouchEnd)
	assert.False(t, s.Dragging())

	unmount()
	assert.Equal(t, 0, target.count())
	unmount()
	assert.Equal(t, 0, target.count())

	s.MouseDown()
	target.dispatch(EventMouseUp)
	assert.True(t, s.Dragging(), "listeners must be gone after unmount")
}

func TestOnChange(t *testing.T) {
	var got []float64
	s := New()
	s.OnChange = func(p float64) { got = append(got, p) }
	s.MouseDown()
	s.MouseMove(75, Rect{Left: 0, Width: 100})
	s.MouseUp()
	s.MouseMove(10, Rect{Left: 0, Width: 100})
	assert.Equal(t, []float64{75}, got)
}

func TestClipPath(t *testing.T) {
	s := New()
	assert.Equal(t, "inset(0 50% 0 0)", s.ClipPath())
	assert.Equal(t, "50%", s.HandleLeft())
	assert.Equal(t, "inset(0 0% 0 0)", ClipPathAt(100))
	assert.Equal(t, "inset(0 87.5% 0 0)", ClipPathAt(12.5))
}
