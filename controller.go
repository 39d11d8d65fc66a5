package main

// StateChange describes a transition delivered to subscribers
type StateChange struct {
	Operation string
	Previous  ViewState
	Current   ViewState
	Curve     AnimationCurve
}

type subscriber struct {
	id int
	fn func(StateChange)
}

// Controller maps gesture and button input to ViewState transitions.
// All operations are synchronous and total: out-of-range input is clamped.
type Controller struct {
	state       ViewState
	pageCount   int
	subscribers []subscriber
	nextID      int
}

// NewController creates a controller for a catalog with pageCount pages
func NewController(pageCount int) *Controller {
	if pageCount < 1 {
		pageCount = 1
	}
	return &Controller{
		state:     NewViewState(),
		pageCount: pageCount,
	}
}

// State returns a copy of the current state
func (c *Controller) State() ViewState {
	return c.state
}

// Subscribe registers fn to be called after every transition that changes the state.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(StateChange)) func() {
	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	// Removal builds a new slice so a dispatch in progress keeps its own view
	return func() {
		kept := make([]subscriber, 0, len(c.subscribers))
		for _, s := range c.subscribers {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		c.subscribers = kept
	}
}

// apply runs mutate on a copy of the state and publishes the result if it differs
func (c *Controller) apply(operation string, curve AnimationCurve, mutate func(s *ViewState)) {
	previous := c.state
	next := previous
	mutate(&next)
	if next == previous {
		return
	}
	c.state = next

	debugLog("%s: scale %.2f -> %.2f, offset %v -> %v, page %d -> %d, drawer %t -> %t",
		operation, previous.ZoomScale, next.ZoomScale, previous.PanOffset, next.PanOffset,
		previous.CurrentPageIndex, next.CurrentPageIndex, previous.DrawerOpen, next.DrawerOpen)

	change := StateChange{Operation: operation, Previous: previous, Current: next, Curve: curve}
	for _, s := range c.subscribers {
		s.fn(change)
	}
}

func resetState(s *ViewState) {
	s.ZoomScale = minZoomScale
	s.PanOffset = Offset{}
}

// Appear marks the screen as displayed, starting the entrance fade
func (c *Controller) Appear() {
	c.apply("appear", CurveEaseOut, func(s *ViewState) {
		s.EntranceAnimated = true
	})
}

// Reset restores the fitted, centred image
func (c *Controller) Reset() {
	c.apply("reset", CurveSpring, resetState)
}

// DoubleTap zooms to the maximum scale from rest and resets otherwise
func (c *Controller) DoubleTap() {
	c.apply("double_tap", CurveSpring, func(s *ViewState) {
		if s.ZoomScale == minZoomScale {
			s.ZoomScale = maxZoomScale
		} else {
			resetState(s)
		}
	})
}

// DragChanged stores the cumulative translation of the current drag gesture
func (c *Controller) DragChanged(translation Offset) {
	c.apply("drag_changed", CurveLinear, func(s *ViewState) {
		s.PanOffset = translation
	})
}

// DragEnded snaps the pan back when the image is not zoomed in
func (c *Controller) DragEnded() {
	c.apply("drag_ended", CurveSpring, func(s *ViewState) {
		if !s.IsZoomed() {
			resetState(s)
		}
	})
}

// PinchChanged assigns the gesture magnification as the zoom scale.
// Once the scale leaves [1,5] only pinchEnded brings it back.
func (c *Controller) PinchChanged(magnification float64) {
	c.apply("pinch_changed", CurveLinear, func(s *ViewState) {
		if s.ZoomScale >= minZoomScale && s.ZoomScale <= maxZoomScale {
			s.ZoomScale = magnification
		} else if s.ZoomScale > maxZoomScale {
			s.ZoomScale = maxZoomScale
		}
	})
}

// PinchEnded clamps an over-range scale and resets an under-range one
func (c *Controller) PinchEnded() {
	c.apply("pinch_ended", CurveSpring, func(s *ViewState) {
		if s.ZoomScale > maxZoomScale {
			s.ZoomScale = maxZoomScale
		} else if s.ZoomScale <= minZoomScale {
			resetState(s)
		}
	})
}

// StepDown zooms out by one step
func (c *Controller) StepDown() {
	c.apply("step_down", CurveSpring, func(s *ViewState) {
		if s.IsZoomed() {
			s.ZoomScale--
			if s.ZoomScale <= minZoomScale {
				resetState(s)
			}
		}
	})
}

// StepUp zooms in by one step
func (c *Controller) StepUp() {
	c.apply("step_up", CurveSpring, func(s *ViewState) {
		if s.ZoomScale < maxZoomScale {
			s.ZoomScale++
			if s.ZoomScale > maxZoomScale {
				s.ZoomScale = maxZoomScale
			}
		}
	})
}

// ToggleDrawer opens or closes the thumbnail drawer
func (c *Controller) ToggleDrawer() {
	c.apply("toggle_drawer", CurveEaseOut, func(s *ViewState) {
		s.DrawerOpen = !s.DrawerOpen
	})
}

// SelectPage shows the page with the given id, clamped to the catalog
func (c *Controller) SelectPage(id int) {
	if id < 1 {
		id = 1
	} else if id > c.pageCount {
		id = c.pageCount
	}
	c.apply("select_page", CurveEaseOut, func(s *ViewState) {
		s.CurrentPageIndex = id
		s.EntranceAnimated = true
	})
}

// NextPage selects the following page, wrapping to the first
func (c *Controller) NextPage() {
	c.SelectPage(c.state.CurrentPageIndex%c.pageCount + 1)
}

// PreviousPage selects the preceding page, wrapping to the last
func (c *Controller) PreviousPage() {
	id := c.state.CurrentPageIndex - 1
	if id < 1 {
		id = c.pageCount
	}
	c.SelectPage(id)
}

// PageCount returns the number of selectable pages
func (c *Controller) PageCount() int {
	return c.pageCount
}
