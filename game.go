package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game wires the controller, animator, asset store and renderer into the ebiten loop
type Game struct {
	config       Config
	configPath   string
	configStatus ConfigLoadResult

	catalog *Catalog
	pages   []Page
	store   *ImageStore

	controller *Controller
	animator   *Animator
	metrics    LayoutMetrics

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer

	showHelp           bool
	showInfo           bool
	overlayMessage     string
	overlayMessageTime time.Time

	drawerRow int // first visible drawer row

	fullscreen bool
	savedWinW  int
	savedWinH  int
	screenW    int
	screenH    int
	exiting    bool

	// Frames are redrawn only when something changed
	dirty        bool
	lastSnapshot *RenderStateSnapshot
}

// NewGame builds a game showing catalog pages loaded from source, starting at startPage
func NewGame(configStatus ConfigLoadResult, configPath string, catalog *Catalog, source AssetSource, startPage int) *Game {
	config := configStatus.Config
	g := &Game{
		config:       config,
		configPath:   configPath,
		configStatus: configStatus,
		catalog:      catalog,
		pages:        catalog.Pages(),
		store:        NewImageStore(source, config.CacheSize, config.ThumbnailWidth),
		controller:   NewController(catalog.Len()),
		metrics:      DefaultLayoutMetrics(float64(config.ThumbnailWidth)),
		showInfo:     config.ShowInfo,
		fullscreen:   config.Fullscreen,
		savedWinW:    config.WindowWidth,
		savedWinH:    config.WindowHeight,
		screenW:      config.WindowWidth,
		screenH:      config.WindowHeight,
		dirty:        true,
	}

	g.store.ReserveThumbnails(len(ComputeLayout(float64(g.screenW), float64(g.screenH), catalog.Len(), 1, g.metrics).Thumbnails))

	// The animator starts from the initial state so the entrance fade plays
	g.animator = NewAnimator(config.AnimationSettings(), g.controller.State())
	g.controller.Subscribe(func(change StateChange) {
		g.animator.Apply(change)
		if change.Current.CurrentPageIndex != change.Previous.CurrentPageIndex {
			g.drawerRow = g.GetLayout(g.screenW, g.screenH).RevealRow(change.Current.CurrentPageIndex)
		}
		g.dirty = true
	})

	router := &gestureRouter{controller: g.controller, hitTest: g.hitTest}
	recognizer := NewGestureRecognizer(config.GestureSettings(), router, router.capturesPointer)

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.MouseSettings)
	g.inputHandler = NewInputHandler(g, g.keybindingManager, g.mousebindingManager, recognizer)
	g.renderer = NewRenderer(g)

	g.controller.SelectPage(startPage)
	g.controller.Appear()

	if configStatus.Status == "Warning" || configStatus.Status == "Error" {
		g.ShowOverlayMessage(fmt.Sprintf("Config %s: press ? for details", configStatus.Status))
	}
	return g
}

func (g *Game) hitTest(x, y float64) Hit {
	return g.GetLayout(g.screenW, g.screenH).HitTest(x, y, g.showInfo)
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Save the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
	}
	g.config.Fullscreen = g.fullscreen
	saveConfigToPath(g.config, g.configPath)
}

// Update advances input and animations by one tick
func (g *Game) Update() error {
	if g.inputHandler.HandleInput() {
		g.dirty = true
	}

	if g.exiting {
		g.saveCurrentWindowSize()
		return ebiten.Termination
	}

	// The frame that settles an animation still has to be drawn
	if g.animator.Active() {
		g.animator.Step(1 / float64(ebiten.TPS()))
		g.dirty = true
	}
	return nil
}

// Draw renders the frame unless nothing changed since the last one
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	snapshot := NewRenderStateSnapshot(g, w, h, time.Now())
	if !g.dirty && snapshot.Equals(g.lastSnapshot) {
		return
	}

	g.renderer.Draw(screen)
	g.lastSnapshot = snapshot
	g.dirty = false
}

// Layout uses the window size as the logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		full := ComputeLayout(float64(outsideWidth), float64(outsideHeight), g.catalog.Len(), 1, g.metrics)
		g.store.ReserveThumbnails(len(full.Thumbnails))
	}
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// RenderState implementation

func (g *Game) GetPages() []Page {
	return g.pages
}

func (g *Game) GetCurrentPage() Page {
	page, _ := g.catalog.Page(g.controller.State().CurrentPageIndex)
	return page
}

func (g *Game) GetPageImage(page Page) *ebiten.Image {
	return g.store.GetImage(page)
}

func (g *Game) GetThumbnail(page Page) *ebiten.Image {
	return g.store.GetThumbnail(page)
}

func (g *Game) GetViewState() ViewState {
	return g.controller.State()
}

func (g *Game) GetDisplayState() DisplayState {
	return g.animator.Display()
}

func (g *Game) GetLayout(screenW, screenH int) Layout {
	return ComputeScrolledLayout(float64(screenW), float64(screenH), g.catalog.Len(),
		g.animator.Display().DrawerProgress, g.drawerRow, g.metrics)
}

func (g *Game) GetImagePadding() float64 {
	return g.metrics.ImagePadding
}

func (g *Game) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Game) GetOverlayMessageTime() time.Time {
	return g.overlayMessageTime
}

func (g *Game) GetFontSize() float64 {
	return g.config.FontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Game) GetKeybindings() map[string][]string {
	return g.keybindingManager.GetKeybindings()
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.mousebindingManager.GetMousebindings()
}

// InputActions implementation

func (g *Game) Exit() {
	g.exiting = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
	g.config.ShowInfo = g.showInfo
}

func (g *Game) ToggleFullscreen() {
	if !g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
	g.fullscreen = !g.fullscreen
}

func (g *Game) ZoomIn() {
	g.controller.StepUp()
}

func (g *Game) ZoomOut() {
	g.controller.StepDown()
}

func (g *Game) ZoomReset() {
	g.controller.Reset()
}

func (g *Game) ZoomToggle() {
	g.controller.DoubleTap()
}

func (g *Game) ToggleDrawer() {
	g.controller.ToggleDrawer()
}

// ScrollDrawer scrolls the drawer by rows when (x, y) lies over it
func (g *Game) ScrollDrawer(x, y float64, rows int) bool {
	layout := g.GetLayout(g.screenW, g.screenH)
	if !layout.Drawer.Contains(x, y) {
		return false
	}
	row := layout.ScrollRow(rows)
	if row == g.drawerRow {
		return false
	}
	g.drawerRow = row
	return true
}

func (g *Game) NavigateNext() {
	if g.controller.State().CurrentPageIndex == g.catalog.Len() && g.catalog.Len() > 1 {
		g.ShowOverlayMessage("First page")
	}
	g.controller.NextPage()
}

func (g *Game) NavigatePrevious() {
	if g.controller.State().CurrentPageIndex == 1 && g.catalog.Len() > 1 {
		g.ShowOverlayMessage("Last page")
	}
	g.controller.PreviousPage()
}

func (g *Game) JumpToPage(page int) {
	g.controller.SelectPage(page)
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

func (g *Game) GetTotalPagesCount() int {
	return g.catalog.Len()
}
