package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Window size constants
const (
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

const configFileName = ".pinch.json"

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateMousebindings validates the mouse bindings configuration
func validateMousebindings(mousebindings map[string][]string) error {
	mouseToAction := make(map[string]string)

	for action, mouseActions := range mousebindings {
		for _, mouseStr := range mouseActions {
			if _, ok := parseMouseString(mouseStr); !ok {
				return fmt.Errorf("invalid mouse action '%s' for action '%s'", mouseStr, action)
			}
			if existingAction, exists := mouseToAction[mouseStr]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existingAction, action)
			}
			mouseToAction[mouseStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	if keyStr == "" {
		return fmt.Errorf("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for _, part := range parts[:len(parts)-1] {
		if _, ok := parseModifier(part); !ok {
			return fmt.Errorf("unknown modifier: %s", part)
		}
	}

	return nil
}

// getValidKeyNames returns a set of valid key names
func getValidKeyNames() map[string]bool {
	names := make(map[string]bool)
	for name := range getKeyMapping() {
		names[name] = true
	}
	return names
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

// AnimationConfig holds animation timing in milliseconds
type AnimationConfig struct {
	SpringResponseMs int     `json:"spring_response_ms"`
	SpringDamping    float64 `json:"spring_damping"`
	GestureMs        int     `json:"gesture_ms"` // linear follow of drag and pinch
	DrawerMs         int     `json:"drawer_ms"`
	FadeMs           int     `json:"fade_ms"`
}

type Config struct {
	WindowWidth    int                 `json:"window_width"`
	WindowHeight   int                 `json:"window_height"`
	Fullscreen     bool                `json:"fullscreen"`
	FontSize       float64             `json:"font_size"`
	SortMethod     int                 `json:"sort_method"`
	CacheSize      int                 `json:"cache_size"`
	ThumbnailWidth int                 `json:"thumbnail_width"`
	ShowInfo       bool                `json:"show_info"`
	AssetDir       string              `json:"asset_dir"`
	WheelPinchStep float64             `json:"wheel_pinch_step"`
	WheelPinchIdle int                 `json:"wheel_pinch_idle_ms"`
	Animation      AnimationConfig     `json:"animation"`
	MouseSettings  MouseSettings       `json:"mouse_settings"`
	Keybindings    map[string][]string `json:"keybindings"`
	Mousebindings  map[string][]string `json:"mousebindings"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	return Config{
		WindowWidth:    defaultWidth,
		WindowHeight:   defaultHeight,
		FontSize:       20.0,
		SortMethod:     SortNatural,
		CacheSize:      16,
		ThumbnailWidth: 80,
		ShowInfo:       true,
		AssetDir:       "assets",
		WheelPinchStep: 0.1,
		WheelPinchIdle: 250,
		Animation: AnimationConfig{
			SpringResponseMs: 550,
			SpringDamping:    0.825,
			GestureMs:        1000,
			DrawerMs:         350,
			FadeMs:           500,
		},
		MouseSettings: GetDefaultMouseSettings(),
		Keybindings:   GetDefaultKeybindings(),
		Mousebindings: GetDefaultMousebindings(),
	}
}

// AnimationSettings converts the millisecond config into animator settings
func (c Config) AnimationSettings() AnimationSettings {
	s := DefaultAnimationSettings()
	s.SpringResponse = float64(c.Animation.SpringResponseMs) / 1000
	s.SpringDamping = c.Animation.SpringDamping
	s.LinearDuration = float64(c.Animation.GestureMs) / 1000
	s.EaseOutDuration = float64(c.Animation.DrawerMs) / 1000
	s.FadeDuration = float64(c.Animation.FadeMs) / 1000
	return s
}

// GestureSettings converts the config into recognizer settings
func (c Config) GestureSettings() GestureSettings {
	return GestureSettings{
		DragThreshold:   float64(c.MouseSettings.DragThreshold),
		DoubleTapWindow: time.Duration(c.MouseSettings.DoubleClickTime) * time.Millisecond,
		WheelPinchStep:  c.WheelPinchStep,
		WheelPinchIdle:  time.Duration(c.WheelPinchIdle) * time.Millisecond,
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(homeDir, configFileName)
}

func clampInt(v, lo, hi, fallback int) int {
	if v < lo || v > hi {
		return fallback
	}
	return v
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := DefaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		logger.Warnf("Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	defaults := DefaultConfig()

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Minimum 12px for readability
	if config.FontSize < 12.0 {
		config.FontSize = defaults.FontSize
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	if config.CacheSize < 1 {
		config.CacheSize = defaults.CacheSize
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	config.ThumbnailWidth = clampInt(config.ThumbnailWidth, 32, 256, defaults.ThumbnailWidth)

	if config.AssetDir == "" {
		config.AssetDir = defaults.AssetDir
	}

	if config.WheelPinchStep <= 0 || config.WheelPinchStep >= 1 {
		config.WheelPinchStep = defaults.WheelPinchStep
	}
	config.WheelPinchIdle = clampInt(config.WheelPinchIdle, 50, 2000, defaults.WheelPinchIdle)

	anim := &config.Animation
	anim.SpringResponseMs = clampInt(anim.SpringResponseMs, 50, 5000, defaults.Animation.SpringResponseMs)
	if anim.SpringDamping <= 0 || anim.SpringDamping > 1 {
		anim.SpringDamping = defaults.Animation.SpringDamping
	}
	anim.GestureMs = clampInt(anim.GestureMs, 0, 5000, defaults.Animation.GestureMs)
	anim.DrawerMs = clampInt(anim.DrawerMs, 0, 5000, defaults.Animation.DrawerMs)
	anim.FadeMs = clampInt(anim.FadeMs, 0, 5000, defaults.Animation.FadeMs)

	mouse := &config.MouseSettings
	if mouse.WheelSensitivity <= 0 {
		mouse.WheelSensitivity = defaults.MouseSettings.WheelSensitivity
	}
	mouse.DoubleClickTime = clampInt(mouse.DoubleClickTime, 100, 1000, defaults.MouseSettings.DoubleClickTime)
	mouse.DragThreshold = clampInt(mouse.DragThreshold, 1, 50, defaults.MouseSettings.DragThreshold)

	var warnings error
	config.Keybindings, warnings = mergeBindings("Keybinding", config.Keybindings, defaults.Keybindings, validateKeybindings, warnings)
	config.Mousebindings, warnings = mergeBindings("Mouse binding", config.Mousebindings, defaults.Mousebindings, validateMousebindings, warnings)

	for _, w := range multierr.Errors(warnings) {
		logger.Warnf("%v, using defaults", w)
		result.Warnings = append(result.Warnings, w.Error())
		result.Status = "Warning"
	}

	result.Config = config
	return result
}

// mergeBindings fills missing actions from defaults and falls back to defaults on invalid bindings
func mergeBindings(kind string, bindings, defaults map[string][]string, validate func(map[string][]string) error, warnings error) (map[string][]string, error) {
	if bindings == nil {
		return defaults, warnings
	}

	for action, defaultBindings := range defaults {
		if _, exists := bindings[action]; !exists {
			bindings[action] = defaultBindings
		}
	}

	if err := validate(bindings); err != nil {
		return defaults, multierr.Append(warnings, fmt.Errorf("%s errors: %w", kind, err))
	}
	return bindings, warnings
}

func saveConfigToPath(config Config, configPath string) {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		logger.Warnf("Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logger.Errorf("Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Errorf("Failed to save config to %s: %v", configPath, err)
	}
}
