package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide scale and offset panel"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{}, "Toggle fullscreen"},

	// Zoom
	{"zoom_in", []string{"Equal", "Shift+Equal", "NumpadAdd"}, []string{"Shift+WheelUp"}, "Zoom in one step"},
	{"zoom_out", []string{"Minus", "NumpadSubtract"}, []string{"Shift+WheelDown"}, "Zoom out one step"},
	{"zoom_reset", []string{"Key0", "Numpad0"}, []string{"MiddleClick"}, "Reset zoom and pan"},
	{"zoom_toggle", []string{"KeyZ"}, []string{}, "Toggle maximum zoom (same as double tap)"},

	// Pages
	{"toggle_drawer", []string{"KeyT", "Tab"}, []string{"RightClick"}, "Open/close thumbnail drawer"},
	{"next_page", []string{"Space", "KeyN", "ArrowRight", "PageDown"}, []string{"Forward"}, "Next page"},
	{"previous_page", []string{"Backspace", "KeyP", "ArrowLeft", "PageUp"}, []string{"Back"}, "Previous page"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first page"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last page"},
}

// ActionExecutor is the single place mapping action names to InputActions calls
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_reset":
		inputActions.ZoomReset()
	case "zoom_toggle":
		inputActions.ZoomToggle()
	case "toggle_drawer":
		inputActions.ToggleDrawer()
	case "next_page":
		inputActions.NavigateNext()
	case "previous_page":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToPage(1)
	case "jump_last":
		if total := inputActions.GetTotalPagesCount(); total > 0 {
			inputActions.JumpToPage(total)
		}
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// actionNames returns the action names in definition order
func actionNames() []string {
	names := make([]string, len(actionDefinitions))
	for i, action := range actionDefinitions {
		names[i] = action.Name
	}
	return names
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
