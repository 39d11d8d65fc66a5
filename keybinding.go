package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Modifiers is the set of modifier keys a binding requires
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseModifier sets a single modifier name; it reports false for unknown names
func parseModifier(name string) (Modifiers, bool) {
	switch strings.ToLower(name) {
	case "shift":
		return Modifiers{Shift: true}, true
	case "ctrl":
		return Modifiers{Ctrl: true}, true
	case "alt":
		return Modifiers{Alt: true}, true
	}
	return Modifiers{}, false
}

// splitBinding separates "Ctrl+Shift+KeyZ" into its modifiers and the final name
func splitBinding(binding string) (Modifiers, string, bool) {
	parts := strings.Split(binding, "+")
	var mods Modifiers
	for _, part := range parts[:len(parts)-1] {
		m, ok := parseModifier(part)
		if !ok {
			return Modifiers{}, "", false
		}
		mods.Shift = mods.Shift || m.Shift
		mods.Ctrl = mods.Ctrl || m.Ctrl
		mods.Alt = mods.Alt || m.Alt
	}
	name := parts[len(parts)-1]
	return mods, name, name != ""
}

// currentModifiers polls the modifier keys held this frame
func currentModifiers() Modifiers {
	return Modifiers{
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings map[string][]string
	keyMapping  map[string]ebiten.Key
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	return &KeybindingManager{
		keybindings: keybindings,
		keyMapping:  getKeyMapping(),
	}
}

// getKeyMapping returns a mapping from string keys to Ebiten keys
func getKeyMapping() map[string]ebiten.Key {
	mapping := map[string]ebiten.Key{
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,

		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		"NumpadAdd":      ebiten.KeyNumpadAdd,
		"NumpadSubtract": ebiten.KeyNumpadSubtract,
		"NumpadEnter":    ebiten.KeyNumpadEnter,
	}

	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		mapping["Key"+string(rune('A'+k-ebiten.KeyA))] = k
	}
	for k := ebiten.Key0; k <= ebiten.Key9; k++ {
		mapping["Key"+string(rune('0'+k-ebiten.Key0))] = k
	}
	for k := ebiten.KeyNumpad0; k <= ebiten.KeyNumpad9; k++ {
		mapping["Numpad"+string(rune('0'+k-ebiten.KeyNumpad0))] = k
	}

	return mapping
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key ebiten.Key
	Modifiers
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func (km *KeybindingManager) parseKeyString(keyStr string) (*KeyCombination, bool) {
	mods, keyName, ok := splitBinding(keyStr)
	if !ok {
		return nil, false
	}
	key, exists := km.keyMapping[keyName]
	if !exists {
		return nil, false
	}
	return &KeyCombination{Key: key, Modifiers: mods}, true
}

// isKeyPressed checks if a key combination was pressed this frame with exactly its modifiers
func (km *KeybindingManager) isKeyPressed(combination *KeyCombination) bool {
	if !inpututil.IsKeyJustPressed(combination.Key) {
		return false
	}
	return currentModifiers() == combination.Modifiers
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, keyStr := range km.keybindings[action] {
		combination, valid := km.parseKeyString(keyStr)
		if valid && km.isKeyPressed(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if one of its keys was pressed
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !km.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}
