package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v3"
)

const windowTitle = "Pinch & Zoom"

// openCatalog builds the pages to show. Without arguments the built-in pages are read
// from assetDir; otherwise the collected files become the pages. A single image argument
// opens its whole directory starting at that image.
func openCatalog(args []string, assetDir string, sortMethod int) (*Catalog, AssetSource, int, error) {
	if len(args) == 0 {
		catalog, err := NewCatalog(pageData)
		if err != nil {
			return nil, nil, 0, err
		}
		return catalog, NewDirSource(assetDir), 1, nil
	}

	var (
		paths []ImagePath
		start string
		err   error
	)
	if info, statErr := os.Stat(args[0]); len(args) == 1 && statErr == nil && !info.IsDir() && isSupportedExt(args[0]) {
		start = filepath.Clean(args[0])
		paths, err = collectImagesFromSameDirectory(args[0], sortMethod)
	} else {
		paths, err = collectImages(args, sortMethod)
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("unable to collect images: %w", err)
	}

	catalog, err := NewCatalogFromPaths(paths)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("no images found in %s: %w", strings.Join(args, ", "), err)
	}

	startPage := 1
	for i, p := range paths {
		if p.Path == start {
			startPage = i + 1
			break
		}
	}
	return catalog, NewPathSource(paths), startPage, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := initLogger(cmd.Bool("debug")); err != nil {
		return fmt.Errorf("unable to initialize logging: %w", err)
	}
	defer syncLogger()

	configPath := cmd.String("config")
	if configPath == "" {
		configPath = getConfigPath()
	}
	configStatus := loadConfigFromPath(configPath)
	config := configStatus.Config
	debugLog("Config %s loaded with status %s", configPath, configStatus.Status)

	assetDir := config.AssetDir
	if dir := cmd.String("assets"); dir != "" {
		assetDir = dir
	}

	catalog, source, startPage, err := openCatalog(cmd.Args().Slice(), assetDir, config.SortMethod)
	if err != nil {
		return err
	}
	logger.Infof("Showing %d pages sorted by %s", catalog.Len(), getSortMethodName(config.SortMethod))

	if err := InitGraphics(); err != nil {
		return fmt.Errorf("unable to load font: %w", err)
	}

	if cmd.Bool("fullscreen") {
		configStatus.Config.Fullscreen = true
	}
	g := NewGame(configStatus, configPath, catalog, source, startPage)

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(configStatus.Config.Fullscreen)
	// Draw skips frames where nothing changed
	ebiten.SetScreenClearedEveryFrame(false)

	return ebiten.RunGame(g)
}

func main() {
	app := &cli.Command{
		Name:            "pinch",
		Usage:           "photo viewer with pinch to zoom, pan and a thumbnail drawer",
		ArgsUsage:       "[path ...]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (JSON)"},
			&cli.StringFlag{Name: "assets", Aliases: []string{"a"}, Usage: "read the built-in pages from `DIR`"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every view state transition"},
			&cli.BoolFlag{Name: "fullscreen", Aliases: []string{"f"}, Usage: "start in fullscreen mode"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
