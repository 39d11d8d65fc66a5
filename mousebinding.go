package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds, also the double-tap window
	DragThreshold    int     `json:"drag_threshold"`    // pixels before a press becomes a drag
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		DragThreshold:    10,
		EnableMouse:      true,
		WheelInverted:    false,
	}
}

// MouseCombination represents a mouse button or wheel direction with modifiers.
// The left button is reserved for tap, double-tap and drag gestures.
type MouseCombination struct {
	Button      ebiten.MouseButton
	IsWheel     bool
	WheelDeltaX float64
	WheelDeltaY float64
	Modifiers
}

var mouseButtonNames = map[string]ebiten.MouseButton{
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

// parseMouseString parses "Shift+WheelUp" or "MiddleClick" into a MouseCombination
func parseMouseString(mouseStr string) (*MouseCombination, bool) {
	mods, name, ok := splitBinding(mouseStr)
	if !ok {
		return nil, false
	}

	combination := &MouseCombination{Modifiers: mods}
	switch name {
	case "WheelUp":
		combination.IsWheel, combination.WheelDeltaY = true, 1
	case "WheelDown":
		combination.IsWheel, combination.WheelDeltaY = true, -1
	case "WheelLeft":
		combination.IsWheel, combination.WheelDeltaX = true, -1
	case "WheelRight":
		combination.IsWheel, combination.WheelDeltaX = true, 1
	default:
		button, exists := mouseButtonNames[name]
		if !exists {
			return nil, false
		}
		combination.Button = button
	}

	return combination, true
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings map[string][]string
	settings      MouseSettings
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	return &MousebindingManager{
		mousebindings: mousebindings,
		settings:      settings,
	}
}

// Wheel returns the wheel movement of this frame with sensitivity and inversion applied
func (mm *MousebindingManager) Wheel() (float64, float64) {
	wheelX, wheelY := ebiten.Wheel()
	if mm.settings.WheelInverted {
		wheelY = -wheelY
	}
	return wheelX * mm.settings.WheelSensitivity, wheelY * mm.settings.WheelSensitivity
}

// isMouseActionTriggered checks if a mouse combination is triggered this frame
func (mm *MousebindingManager) isMouseActionTriggered(combination *MouseCombination) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	if currentModifiers() != combination.Modifiers {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := mm.Wheel()
		if combination.WheelDeltaX != 0 {
			return combination.WheelDeltaX*wheelX > 0
		}
		return combination.WheelDeltaY*wheelY > 0
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, mouseStr := range mm.mousebindings[action] {
		combination, valid := parseMouseString(mouseStr)
		if valid && mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
