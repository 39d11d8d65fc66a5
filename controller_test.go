package main

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewControllerInitialState(t *testing.T) {
	c := NewController(4)
	s := c.State()
	if s.ZoomScale != 1 || !s.PanOffset.IsZero() || s.CurrentPageIndex != 1 || s.DrawerOpen || s.EntranceAnimated {
		t.Errorf("unexpected initial state %+v", s)
	}
	if c.PageCount() != 4 {
		t.Errorf("PageCount() = %d, want 4", c.PageCount())
	}
}

func TestStepsStayInRange(t *testing.T) {
	c := NewController(1)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			c.StepUp()
		} else {
			c.StepDown()
		}
		s := c.State()
		if s.ZoomScale < minZoomScale || s.ZoomScale > maxZoomScale {
			t.Fatalf("step %d: zoom scale %v out of range", i, s.ZoomScale)
		}
		if s.ZoomScale == minZoomScale && !s.PanOffset.IsZero() {
			t.Fatalf("step %d: offset %v kept at scale 1", i, s.PanOffset)
		}
	}
}

func TestStepUpAndDown(t *testing.T) {
	c := NewController(1)
	for i := 0; i < 10; i++ {
		c.StepUp()
	}
	if got := c.State().ZoomScale; got != maxZoomScale {
		t.Errorf("after many StepUp scale = %v, want %v", got, maxZoomScale)
	}

	c.DragChanged(Offset{DX: 30, DY: -10})
	for i := 0; i < 3; i++ {
		c.StepDown()
	}
	if got := c.State(); got.ZoomScale != 2 || got.PanOffset != (Offset{DX: 30, DY: -10}) {
		t.Errorf("after 3 StepDown state = %+v", got)
	}

	c.StepDown()
	if got := c.State(); got.ZoomScale != 1 || !got.PanOffset.IsZero() {
		t.Errorf("stepping down to 1 should reset, got %+v", got)
	}
}

func TestDoubleTapToggles(t *testing.T) {
	c := NewController(1)
	c.DoubleTap()
	if got := c.State().ZoomScale; got != maxZoomScale {
		t.Fatalf("first DoubleTap scale = %v, want %v", got, maxZoomScale)
	}
	c.DragChanged(Offset{DX: 50, DY: 20})
	c.DoubleTap()
	if got := c.State(); got.ZoomScale != 1 || !got.PanOffset.IsZero() {
		t.Errorf("second DoubleTap should reset, got %+v", got)
	}

	// Any zoom other than 1 resets
	c.StepUp()
	c.DoubleTap()
	if got := c.State().ZoomScale; got != 1 {
		t.Errorf("DoubleTap at scale 2 = %v, want 1", got)
	}
}

func TestResetFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
	}{
		{"initial", func(c *Controller) {}},
		{"zoomed and panned", func(c *Controller) {
			c.StepUp()
			c.StepUp()
			c.DragChanged(Offset{DX: 100, DY: 100})
		}},
		{"pinched below range", func(c *Controller) { c.PinchChanged(0.3) }},
		{"pinched above range", func(c *Controller) { c.PinchChanged(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(2)
			tt.setup(c)
			c.Reset()
			if got := c.State(); got.ZoomScale != 1 || !got.PanOffset.IsZero() {
				t.Errorf("Reset() left %+v", got)
			}
		})
	}
}

func TestDragAtScaleOneSnapsBack(t *testing.T) {
	c := NewController(1)
	c.DragChanged(Offset{DX: 40, DY: 25})
	if got := c.State().PanOffset; got != (Offset{DX: 40, DY: 25}) {
		t.Errorf("DragChanged offset = %v", got)
	}
	c.DragEnded()
	if got := c.State().PanOffset; !got.IsZero() {
		t.Errorf("DragEnded at scale 1 offset = %v, want 0", got)
	}
}

func TestDragWhenZoomedIsKeptAndNotAdditive(t *testing.T) {
	c := NewController(1)
	c.StepUp()

	c.DragChanged(Offset{DX: 10, DY: 10})
	c.DragChanged(Offset{DX: 20, DY: 5})
	c.DragEnded()
	if got := c.State().PanOffset; got != (Offset{DX: 20, DY: 5}) {
		t.Errorf("offset after first drag = %v", got)
	}

	// A new gesture reports translation from its own start
	c.DragChanged(Offset{DX: 3, DY: 4})
	c.DragEnded()
	if got := c.State().PanOffset; got != (Offset{DX: 3, DY: 4}) {
		t.Errorf("offset after second drag = %v, want 3 x 4", got)
	}
}

func TestPinch(t *testing.T) {
	tests := []struct {
		name          string
		magnification []float64
		wantScale     float64
	}{
		{"over range clamps", []float64{6.0}, 5},
		{"under range resets", []float64{0.5}, 1},
		{"in range kept", []float64{1.5, 2.5}, 2.5},
		{"absolute not multiplicative", []float64{2, 3}, 3},
		{"stuck below range until end", []float64{0.8, 3}, 1},
		{"clamped while above range", []float64{7, 2}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(1)
			for _, m := range tt.magnification {
				c.PinchChanged(m)
			}
			c.PinchEnded()
			s := c.State()
			if s.ZoomScale != tt.wantScale {
				t.Errorf("scale = %v, want %v", s.ZoomScale, tt.wantScale)
			}
			if s.ZoomScale == 1 && !s.PanOffset.IsZero() {
				t.Errorf("offset %v kept at scale 1", s.PanOffset)
			}
		})
	}
}

func TestPinchChangedAboveRangeClamps(t *testing.T) {
	c := NewController(1)
	c.PinchChanged(8)
	if got := c.State().ZoomScale; got != 8 {
		t.Fatalf("first PinchChanged scale = %v, want 8", got)
	}
	c.PinchChanged(9)
	if got := c.State().ZoomScale; got != maxZoomScale {
		t.Errorf("PinchChanged above range = %v, want %v", got, maxZoomScale)
	}
}

func TestToggleDrawerTwice(t *testing.T) {
	c := NewController(1)
	c.ToggleDrawer()
	if !c.State().DrawerOpen {
		t.Fatal("ToggleDrawer did not open the drawer")
	}
	c.ToggleDrawer()
	if c.State().DrawerOpen {
		t.Error("ToggleDrawer twice should restore the closed drawer")
	}
}

func TestSelectPage(t *testing.T) {
	tests := []struct {
		id   int
		want int
	}{
		{3, 3},
		{1, 1},
		{4, 4},
		{0, 1},
		{-2, 1},
		{9, 4},
	}

	for _, tt := range tests {
		c := NewController(4)
		c.SelectPage(tt.id)
		s := c.State()
		if s.CurrentPageIndex != tt.want {
			t.Errorf("SelectPage(%d) page = %d, want %d", tt.id, s.CurrentPageIndex, tt.want)
		}
		if tt.want != 1 && !s.EntranceAnimated {
			t.Errorf("SelectPage(%d) did not set the entrance flag", tt.id)
		}
	}
}

func TestSelectPageKeepsZoom(t *testing.T) {
	c := NewController(4)
	c.StepUp()
	c.ToggleDrawer()
	c.SelectPage(2)
	s := c.State()
	if s.ZoomScale != 2 || !s.DrawerOpen {
		t.Errorf("SelectPage changed unrelated state: %+v", s)
	}
}

func TestNextAndPreviousPageWrap(t *testing.T) {
	c := NewController(3)
	var pages []int
	for i := 0; i < 4; i++ {
		c.NextPage()
		pages = append(pages, c.State().CurrentPageIndex)
	}
	want := []int{2, 3, 1, 2}
	for i := range want {
		if pages[i] != want[i] {
			t.Fatalf("NextPage sequence = %v, want %v", pages, want)
		}
	}

	c.SelectPage(1)
	c.PreviousPage()
	if got := c.State().CurrentPageIndex; got != 3 {
		t.Errorf("PreviousPage from 1 = %d, want 3", got)
	}
}

func TestAppearIsOneShot(t *testing.T) {
	c := NewController(2)
	var changes []StateChange
	c.Subscribe(func(change StateChange) { changes = append(changes, change) })

	c.Appear()
	c.Appear()
	if len(changes) != 1 {
		t.Fatalf("Appear notified %d times, want 1", len(changes))
	}
	if !changes[0].Current.EntranceAnimated || changes[0].Previous.EntranceAnimated {
		t.Errorf("unexpected Appear change %+v", changes[0])
	}
}

func TestSubscribe(t *testing.T) {
	c := NewController(4)
	var got []StateChange
	unsubscribe := c.Subscribe(func(change StateChange) { got = append(got, change) })

	c.StepUp()
	c.StepDown()
	c.StepDown() // no change at scale 1
	c.DragChanged(Offset{DX: 5})
	c.SelectPage(2)

	wantOps := []struct {
		op    string
		curve AnimationCurve
	}{
		{"step_up", CurveSpring},
		{"step_down", CurveSpring},
		{"drag_changed", CurveLinear},
		{"select_page", CurveEaseOut},
	}
	if len(got) != len(wantOps) {
		t.Fatalf("got %d notifications, want %d: %+v", len(got), len(wantOps), got)
	}
	for i, w := range wantOps {
		if got[i].Operation != w.op || got[i].Curve != w.curve {
			t.Errorf("notification %d = %s/%s, want %s/%s", i, got[i].Operation, got[i].Curve, w.op, w.curve)
		}
	}
	if got[0].Previous.ZoomScale != 1 || got[0].Current.ZoomScale != 2 {
		t.Errorf("step_up change = %+v", got[0])
	}

	unsubscribe()
	c.ToggleDrawer()
	if len(got) != len(wantOps) {
		t.Error("unsubscribed callback still notified")
	}
}

func TestUnsubscribeKeepsOthers(t *testing.T) {
	c := NewController(1)
	var first, second int
	unsubscribeFirst := c.Subscribe(func(StateChange) { first++ })
	c.Subscribe(func(StateChange) { second++ })

	c.ToggleDrawer()
	unsubscribeFirst()
	unsubscribeFirst()
	c.ToggleDrawer()

	if first != 1 || second != 2 {
		t.Errorf("notifications first=%d second=%d, want 1 and 2", first, second)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	c := NewController(1)
	var calls []string
	var unsubscribeFirst func()
	unsubscribeFirst = c.Subscribe(func(StateChange) {
		calls = append(calls, "first")
		unsubscribeFirst()
	})
	c.Subscribe(func(StateChange) { calls = append(calls, "second") })
	c.Subscribe(func(StateChange) { calls = append(calls, "third") })

	c.ToggleDrawer()
	c.ToggleDrawer()

	want := []string{"first", "second", "third", "second", "third"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}
