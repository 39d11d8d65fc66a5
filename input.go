package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// gestureRouter dispatches recognized gestures to the controller by what lies under the pointer
type gestureRouter struct {
	controller *Controller
	hitTest    func(x, y float64) Hit
}

func (g *gestureRouter) Tap(x, y float64) {
	hit := g.hitTest(x, y)
	switch hit.Kind {
	case HitControl:
		switch ControlKind(hit.Index) {
		case ControlZoomOut:
			g.controller.StepDown()
		case ControlReset:
			g.controller.Reset()
		case ControlZoomIn:
			g.controller.StepUp()
		}
	case HitHandle:
		g.controller.ToggleDrawer()
	case HitThumbnail:
		g.controller.SelectPage(hit.Index)
	}
}

func (g *gestureRouter) DoubleTap(x, y float64) {
	if g.hitTest(x, y).Kind == HitImage {
		g.controller.DoubleTap()
	}
}

func (g *gestureRouter) DragChanged(translation Offset) {
	g.controller.DragChanged(translation)
}

func (g *gestureRouter) DragEnded() {
	g.controller.DragEnded()
}

func (g *gestureRouter) PinchChanged(magnification float64) {
	g.controller.PinchChanged(magnification)
}

func (g *gestureRouter) PinchEnded() {
	g.controller.PinchEnded()
}

// capturesPointer reports whether a press at (x, y) belongs to an overlay instead of the image
func (g *gestureRouter) capturesPointer(x, y float64) bool {
	return g.hitTest(x, y).Kind != HitImage
}

// InputHandler polls keyboard, mouse and touch input once per frame
type InputHandler struct {
	inputActions        InputActions
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	recognizer          *GestureRecognizer
	samples             []PointerSample
	touchIDs            []ebiten.TouchID
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager, recognizer *GestureRecognizer) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
		recognizer:          recognizer,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any binding fired, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalPagesCount() == 0 {
		return false
	}

	now := time.Now()
	inputProcessed := h.handlePointers(now)

	for _, action := range actionNames() {
		inputProcessed = h.handleAction(action) || inputProcessed
	}
	return inputProcessed
}

func (h *InputHandler) handleAction(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions) {
		return true
	}
	return h.mousebindingManager.ExecuteAction(action, h.inputActions)
}

// handlePointers feeds the gesture recognizer; Ctrl+wheel stands in for a pinch
// and a plain wheel over the drawer scrolls it. Reports whether the drawer scrolled.
func (h *InputHandler) handlePointers(now time.Time) bool {
	settings := h.mousebindingManager.GetSettings()

	scrolled := false
	if _, wheelY := h.mousebindingManager.Wheel(); settings.EnableMouse && wheelY != 0 {
		switch mods := currentModifiers(); {
		case mods.Ctrl:
			h.recognizer.Wheel(now, wheelY)
		case mods == Modifiers{}:
			x, y := ebiten.CursorPosition()
			rows := 1
			if wheelY > 0 {
				rows = -1
			}
			scrolled = h.inputActions.ScrollDrawer(float64(x), float64(y), rows)
		}
	}

	h.samples = h.samples[:0]
	if settings.EnableMouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		h.samples = append(h.samples, PointerSample{ID: mousePointerID, X: float64(x), Y: float64(y)})
	}

	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		h.samples = append(h.samples, PointerSample{ID: int(id) + 1, X: float64(x), Y: float64(y)})
	}

	h.recognizer.Update(now, h.samples)
	return scrolled
}
