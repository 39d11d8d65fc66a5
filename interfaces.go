package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Pages
	GetPages() []Page
	GetCurrentPage() Page
	GetPageImage(page Page) *ebiten.Image
	GetThumbnail(page Page) *ebiten.Image

	// View state as stored and as currently displayed
	GetViewState() ViewState
	GetDisplayState() DisplayState
	GetLayout(screenW, screenH int) Layout
	GetImagePadding() float64

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// RenderStateSnapshot captures the state that can change without any input.
// Everything else marks the frame dirty through the controller subscription.
type RenderStateSnapshot struct {
	// Overlay message state (auto-expires after 2 seconds)
	OverlayMessage     string
	OverlayMessageTime time.Time
	OverlayActive      bool

	// Window dimensions for resize detection
	WindowWidth  int
	WindowHeight int
}

// NewRenderStateSnapshot creates a lightweight snapshot of non-input state at time now
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int, now time.Time) *RenderStateSnapshot {
	message, messageTime := state.GetOverlayMessage(), state.GetOverlayMessageTime()
	return &RenderStateSnapshot{
		OverlayMessage:     message,
		OverlayMessageTime: messageTime,
		OverlayActive:      isOverlayActive(message, messageTime, now),
		WindowWidth:        windowWidth,
		WindowHeight:       windowHeight,
	}
}

func isOverlayActive(message string, messageTime time.Time, now time.Time) bool {
	return message != "" && now.Sub(messageTime) < overlayMessageDuration
}

// Equals checks if two snapshots render the same
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}

	// Inactive overlays render nothing, whatever their text
	overlayEqual := s.OverlayActive == other.OverlayActive
	if s.OverlayActive && other.OverlayActive {
		overlayEqual = s.OverlayMessage == other.OverlayMessage &&
			s.OverlayMessageTime.Equal(other.OverlayMessageTime)
	}

	return overlayEqual &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Zoom controls
	ZoomIn()
	ZoomOut()
	ZoomReset()
	ZoomToggle()

	// Pages
	ToggleDrawer()
	NavigateNext()
	NavigatePrevious()
	JumpToPage(page int)
	ScrollDrawer(x, y float64, rows int) bool

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetTotalPagesCount() int
}
