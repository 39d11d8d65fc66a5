package main

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

type recordingSink struct {
	events []string
}

func (s *recordingSink) Tap(x, y float64) {
	s.events = append(s.events, fmt.Sprintf("tap %.0f,%.0f", x, y))
}

func (s *recordingSink) DoubleTap(x, y float64) {
	s.events = append(s.events, fmt.Sprintf("double %.0f,%.0f", x, y))
}

func (s *recordingSink) DragChanged(translation Offset) {
	s.events = append(s.events, "drag "+translation.String())
}

func (s *recordingSink) DragEnded() {
	s.events = append(s.events, "drag_end")
}

func (s *recordingSink) PinchChanged(magnification float64) {
	s.events = append(s.events, fmt.Sprintf("pinch %.2f", magnification))
}

func (s *recordingSink) PinchEnded() {
	s.events = append(s.events, "pinch_end")
}

var testGestureSettings = GestureSettings{
	DragThreshold:   10,
	DoubleTapWindow: 300 * time.Millisecond,
	WheelPinchStep:  0.1,
	WheelPinchIdle:  250 * time.Millisecond,
}

// gestureScript drives a recognizer with frames at explicit millisecond offsets
type gestureScript struct {
	t     *testing.T
	start time.Time
	r     *GestureRecognizer
	sink  *recordingSink
}

func newGestureScript(t *testing.T, captures func(x, y float64) bool) *gestureScript {
	sink := &recordingSink{}
	return &gestureScript{
		t:     t,
		start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		r:     NewGestureRecognizer(testGestureSettings, sink, captures),
		sink:  sink,
	}
}

func (g *gestureScript) frame(ms int, samples ...PointerSample) {
	g.r.Update(g.start.Add(time.Duration(ms)*time.Millisecond), samples)
}

func (g *gestureScript) wheel(ms int, delta float64) {
	g.r.Wheel(g.start.Add(time.Duration(ms)*time.Millisecond), delta)
}

func (g *gestureScript) expect(want ...string) {
	g.t.Helper()
	if !reflect.DeepEqual(g.sink.events, want) && !(len(g.sink.events) == 0 && len(want) == 0) {
		g.t.Errorf("events = %q, want %q", g.sink.events, want)
	}
}

func mouseAt(x, y float64) PointerSample {
	return PointerSample{ID: mousePointerID, X: x, Y: y}
}

func touchAt(id int, x, y float64) PointerSample {
	return PointerSample{ID: id, X: x, Y: y}
}

func TestGestureTap(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, mouseAt(100, 100))
	g.frame(16, mouseAt(104, 102))
	if !g.r.Active() {
		t.Error("recognizer should be active while a pointer is down")
	}
	g.frame(50)
	g.expect("tap 100,100")
	if g.r.Active() {
		t.Error("recognizer should be idle after release")
	}
}

func TestGestureDoubleTap(t *testing.T) {
	tests := []struct {
		name       string
		secondAt   int
		secondPos  float64
		wantDouble bool
	}{
		{"within window", 150, 100, true},
		{"too slow", 500, 100, false},
		{"too far apart", 150, 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGestureScript(t, nil)
			g.frame(0, mouseAt(100, 100))
			g.frame(50)
			g.frame(tt.secondAt, mouseAt(tt.secondPos, 100))
			g.frame(tt.secondAt + 50)

			second := fmt.Sprintf("tap %.0f,100", tt.secondPos)
			if tt.wantDouble {
				g.expect("tap 100,100", second, fmt.Sprintf("double %.0f,100", tt.secondPos))
			} else {
				g.expect("tap 100,100", second)
			}
		})
	}
}

func TestGestureTripleTapIsOneDoubleTap(t *testing.T) {
	g := newGestureScript(t, nil)
	for i := 0; i < 3; i++ {
		g.frame(i*100, mouseAt(50, 50))
		g.frame(i*100 + 30)
	}
	g.expect("tap 50,50", "tap 50,50", "double 50,50", "tap 50,50")
}

func TestGestureDrag(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, mouseAt(100, 100))
	g.frame(16, mouseAt(105, 100)) // below threshold
	g.frame(32, mouseAt(130, 140))
	g.frame(48, mouseAt(130, 140)) // no movement, no event
	g.frame(64, mouseAt(90, 80))
	g.frame(80)
	g.expect("drag 30 x 40", "drag -10 x -20", "drag_end")
}

func TestGestureDragBreaksDoubleTap(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, mouseAt(100, 100))
	g.frame(30)
	g.frame(60, mouseAt(100, 100))
	g.frame(80, mouseAt(150, 100))
	g.frame(100)
	g.frame(150, mouseAt(150, 100))
	g.frame(180)
	g.expect("tap 100,100", "drag 50 x 0", "drag_end", "tap 150,100")
}

func TestGestureCapturedPress(t *testing.T) {
	overlay := func(x, y float64) bool { return x > 500 }
	g := newGestureScript(t, overlay)

	// Moving from an overlay never drags
	g.frame(0, mouseAt(600, 100))
	g.frame(16, mouseAt(700, 200))
	g.frame(32)

	// Two quick taps on an overlay are two taps
	g.frame(100, mouseAt(600, 100))
	g.frame(120)
	g.frame(200, mouseAt(600, 100))
	g.frame(220)

	g.expect("tap 600,100", "tap 600,100", "tap 600,100")
}

func TestGesturePinch(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, touchAt(1, 100, 100), touchAt(2, 200, 100))
	g.frame(16, touchAt(1, 100, 100), touchAt(2, 300, 100))
	g.frame(32, touchAt(1, 100, 100), touchAt(2, 300, 100))
	g.frame(48, touchAt(1, 100, 100), touchAt(2, 150, 100))
	g.frame(64, touchAt(1, 100, 100))
	g.frame(80)
	g.expect("pinch 2.00", "pinch 0.50", "pinch_end")
}

func TestGesturePinchEndsDrag(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, touchAt(1, 100, 100))
	g.frame(16, touchAt(1, 150, 100))
	g.frame(32, touchAt(1, 150, 100), touchAt(2, 250, 100))
	g.frame(48, touchAt(1, 150, 100), touchAt(2, 350, 100))
	g.frame(64)
	g.expect("drag 50 x 0", "drag_end", "pinch 2.00", "pinch_end")
}

func TestGesturePinchUsesLowestPointers(t *testing.T) {
	g := newGestureScript(t, nil)
	g.frame(0, touchAt(1, 0, 0), touchAt(2, 100, 0), touchAt(3, 1000, 1000))
	g.frame(16, touchAt(1, 0, 0), touchAt(2, 150, 0), touchAt(3, 0, 0))
	g.frame(32)
	g.expect("pinch 1.50", "pinch_end")
}

func TestGestureWheelPinch(t *testing.T) {
	g := newGestureScript(t, nil)
	g.wheel(0, 0)
	g.wheel(0, 1)
	g.wheel(10, 1)
	if !g.r.Active() {
		t.Error("wheel pinch should keep the recognizer active")
	}
	g.frame(100)
	g.wheel(150, -2)
	g.frame(300)
	g.frame(400)
	g.expect("pinch 1.10", "pinch 1.21", "pinch 0.97", "pinch_end")

	// A new wheel gesture starts from 1 again
	g.sink.events = nil
	g.wheel(1000, -1)
	g.frame(1300)
	g.expect("pinch 0.90", "pinch_end")
}
