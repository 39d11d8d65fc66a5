package main

import (
	"math"
	"sort"
	"time"
)

// Pointer ids: 0 is the left mouse button, touches start at 1
const mousePointerID = 0

// PointerSample is the position of one pressed pointer in a frame
type PointerSample struct {
	ID int
	X  float64
	Y  float64
}

// GestureSink receives recognized gestures
type GestureSink interface {
	Tap(x, y float64)
	DoubleTap(x, y float64)
	DragChanged(translation Offset)
	DragEnded()
	PinchChanged(magnification float64)
	PinchEnded()
}

// GestureSettings tunes the recognizer
type GestureSettings struct {
	DragThreshold   float64       // pixels before a press becomes a drag
	DoubleTapWindow time.Duration // maximum time between the two taps
	WheelPinchStep  float64       // magnification change per wheel notch
	WheelPinchIdle  time.Duration // wheel silence that ends a wheel pinch
}

type trackedPointer struct {
	startX, startY float64
	lastX, lastY   float64
}

// GestureRecognizer turns per-frame pointer samples into gestures.
// It holds no ebiten state so it can be driven by tests.
type GestureRecognizer struct {
	settings GestureSettings
	sink     GestureSink
	captures func(x, y float64) bool

	pointers map[int]*trackedPointer
	primary  int
	captured bool // primary press started on an overlay control
	consumed bool // a second pointer joined; no tap or drag until all are released
	dragging bool
	lastDrag Offset

	pinching         bool
	pinchInitialDist float64
	pinchLast        float64

	wheelPinching      bool
	wheelMagnification float64
	wheelLast          time.Time

	hasLastTap         bool
	lastTapTime        time.Time
	lastTapX, lastTapY float64
}

// NewGestureRecognizer creates a recognizer delivering gestures to sink.
// Presses starting where captures returns true yield taps but never drags or double taps.
func NewGestureRecognizer(settings GestureSettings, sink GestureSink, captures func(x, y float64) bool) *GestureRecognizer {
	if captures == nil {
		captures = func(x, y float64) bool { return false }
	}
	return &GestureRecognizer{
		settings: settings,
		sink:     sink,
		captures: captures,
		pointers: make(map[int]*trackedPointer),
		primary:  -1,
	}
}

// Update feeds the pointers that are pressed in the current frame
func (r *GestureRecognizer) Update(now time.Time, samples []PointerSample) {
	seen := make(map[int]bool, len(samples))
	for _, s := range samples {
		seen[s.ID] = true
	}

	// Releases first so a finger swap in one frame is not seen as two pointers
	for id, p := range r.pointers {
		if !seen[id] {
			r.release(now, id, p)
		}
	}

	for _, s := range samples {
		if p, ok := r.pointers[s.ID]; ok {
			p.lastX, p.lastY = s.X, s.Y
			continue
		}
		r.press(s)
	}

	r.updatePinch()
	r.updateDrag()
	r.updateWheelPinch(now)
}

// Wheel feeds a pinch-emulating wheel delta; positive zooms in
func (r *GestureRecognizer) Wheel(now time.Time, delta float64) {
	if delta == 0 {
		return
	}
	if !r.wheelPinching {
		r.wheelPinching = true
		r.wheelMagnification = 1
	}
	r.wheelMagnification *= 1 + r.settings.WheelPinchStep*delta
	if r.wheelMagnification < 0.01 {
		r.wheelMagnification = 0.01
	}
	r.wheelLast = now
	r.sink.PinchChanged(r.wheelMagnification)
}

// Active reports whether a gesture is in progress
func (r *GestureRecognizer) Active() bool {
	return len(r.pointers) > 0 || r.wheelPinching
}

func (r *GestureRecognizer) press(s PointerSample) {
	if len(r.pointers) == 0 {
		r.primary = s.ID
		r.captured = r.captures(s.X, s.Y)
		r.consumed = false
	} else {
		r.consumed = true
	}
	r.pointers[s.ID] = &trackedPointer{startX: s.X, startY: s.Y, lastX: s.X, lastY: s.Y}
}

func (r *GestureRecognizer) release(now time.Time, id int, p *trackedPointer) {
	delete(r.pointers, id)

	if id == r.primary {
		if !r.consumed {
			if r.dragging {
				r.sink.DragEnded()
			} else {
				// Taps belong to where the press landed
				r.tap(now, p.startX, p.startY)
			}
		}
		r.dragging = false
		r.lastDrag = Offset{}
		r.primary = -1
	}

	if len(r.pointers) == 0 {
		r.primary = -1
		r.consumed = false
		r.captured = false
	}
}

func (r *GestureRecognizer) tap(now time.Time, x, y float64) {
	r.sink.Tap(x, y)
	if r.captured {
		r.hasLastTap = false
		return
	}

	if r.hasLastTap && now.Sub(r.lastTapTime) <= r.settings.DoubleTapWindow &&
		math.Hypot(x-r.lastTapX, y-r.lastTapY) <= r.settings.DragThreshold*4 {
		r.hasLastTap = false
		r.sink.DoubleTap(x, y)
		return
	}

	r.hasLastTap = true
	r.lastTapTime = now
	r.lastTapX, r.lastTapY = x, y
}

func (r *GestureRecognizer) updateDrag() {
	if r.primary < 0 || r.consumed || r.captured {
		return
	}
	p, ok := r.pointers[r.primary]
	if !ok {
		return
	}

	translation := Offset{DX: p.lastX - p.startX, DY: p.lastY - p.startY}
	if !r.dragging && math.Hypot(translation.DX, translation.DY) > r.settings.DragThreshold {
		r.dragging = true
		r.hasLastTap = false
	}
	if r.dragging && translation != r.lastDrag {
		r.lastDrag = translation
		r.sink.DragChanged(translation)
	}
}

func (r *GestureRecognizer) updatePinch() {
	if len(r.pointers) < 2 {
		if r.pinching {
			r.pinching = false
			r.sink.PinchEnded()
		}
		return
	}

	if r.dragging {
		r.dragging = false
		r.lastDrag = Offset{}
		r.sink.DragEnded()
	}

	ids := make([]int, 0, len(r.pointers))
	for id := range r.pointers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	p0, p1 := r.pointers[ids[0]], r.pointers[ids[1]]
	dist := math.Hypot(p1.lastX-p0.lastX, p1.lastY-p0.lastY)

	if !r.pinching {
		r.pinching = true
		r.pinchInitialDist = dist
		r.pinchLast = 1
		return
	}
	if r.pinchInitialDist <= 0 {
		r.pinchInitialDist = dist
		return
	}

	magnification := dist / r.pinchInitialDist
	if magnification != r.pinchLast {
		r.pinchLast = magnification
		r.sink.PinchChanged(magnification)
	}
}

func (r *GestureRecognizer) updateWheelPinch(now time.Time) {
	if r.wheelPinching && now.Sub(r.wheelLast) >= r.settings.WheelPinchIdle {
		r.wheelPinching = false
		r.sink.PinchEnded()
	}
}
