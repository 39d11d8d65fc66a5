package main

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

var supportedExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif"}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExts {
		if ext == supported {
			return true
		}
	}
	return false
}

var errAssetNotFound = errors.New("asset not found")

// AssetSource resolves an image or thumbnail name to a decoded bitmap
type AssetSource interface {
	Open(name string) (image.Image, error)
}

// DirSource resolves names to files in a directory, trying each supported extension
type DirSource struct {
	dir string
}

// NewDirSource creates a source reading from dir
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Open(name string) (image.Image, error) {
	candidates := make([]string, 0, len(supportedExts)+1)
	if isSupportedExt(name) {
		candidates = append(candidates, name)
	}
	for _, ext := range supportedExts {
		candidates = append(candidates, name+ext)
	}

	for _, candidate := range candidates {
		path := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return decodeFile(path)
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", errAssetNotFound, name, s.dir)
}

// PathSource resolves names produced by NewCatalogFromPaths.
// A thumbnail is read from a sibling "thumb-" file when one exists.
type PathSource struct {
	paths map[string]ImagePath
}

// NewPathSource indexes collected paths by their Path
func NewPathSource(paths []ImagePath) *PathSource {
	index := make(map[string]ImagePath, len(paths))
	for _, p := range paths {
		index[p.Path] = p
	}
	return &PathSource{paths: index}
}

func (s *PathSource) Open(name string) (image.Image, error) {
	if p, ok := s.paths[name]; ok {
		return loadImage(p)
	}

	if original, ok := strings.CutPrefix(name, thumbPrefix); ok {
		if p, ok := s.paths[original]; ok && p.ArchivePath == "" {
			sibling := filepath.Join(filepath.Dir(p.Path), thumbPrefix+filepath.Base(p.Path))
			if _, err := os.Stat(sibling); err == nil {
				return decodeFile(sibling)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", errAssetNotFound, name)
}

// makeThumbnail scales img down to width pixels keeping its aspect ratio
func makeThumbnail(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width || b.Dx() == 0 {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// loadThumbnail opens the page thumbnail, deriving it from the full image when absent
func loadThumbnail(source AssetSource, page Page, width int) (image.Image, error) {
	img, err := source.Open(page.ThumbName())
	if err == nil {
		return makeThumbnail(img, width), nil
	}
	if !errors.Is(err, errAssetNotFound) {
		return nil, err
	}

	full, err := source.Open(page.ImageName)
	if err != nil {
		return nil, err
	}
	debugLog("Generated thumbnail for %s", page.ImageName)
	return makeThumbnail(full, width), nil
}

// ImageStore keeps decoded textures of pages and thumbnails in LRU caches
type ImageStore struct {
	source        AssetSource
	images        *lru.Cache[string, *ebiten.Image]
	thumbnails    *lru.Cache[string, *ebiten.Image]
	thumbCapacity int
	thumbWidth    int
}

func newTextureCache(size int) *lru.Cache[string, *ebiten.Image] {
	evict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](size, evict)
	if err != nil {
		logger.Errorf("Failed to create LRU cache of size %d: %v", size, err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, evict)
	}
	return cache
}

// NewImageStore creates a store over source
func NewImageStore(source AssetSource, cacheSize, thumbWidth int) *ImageStore {
	return &ImageStore{
		source:        source,
		images:        newTextureCache(cacheSize),
		thumbnails:    newTextureCache(cacheSize * 8),
		thumbCapacity: cacheSize * 8,
		thumbWidth:    thumbWidth,
	}
}

// ReserveThumbnails grows the thumbnail cache to hold at least n entries,
// so a full drawer never evicts its own thumbnails
func (s *ImageStore) ReserveThumbnails(n int) {
	if n <= s.thumbCapacity {
		return
	}
	s.thumbnails.Resize(n)
	s.thumbCapacity = n
	debugLog("Thumbnail cache resized to %d", n)
}

// GetImage returns the full image of page, or a placeholder describing the failure
func (s *ImageStore) GetImage(page Page) *ebiten.Image {
	if img, ok := s.images.Get(page.ImageName); ok {
		return img
	}

	var tex *ebiten.Image
	img, err := s.source.Open(page.ImageName)
	if err != nil {
		logger.Errorf("Failed to load image [%d] %s: %v", page.ID, page.ImageName, err)
		tex = CreateErrorImage(400, 300, page.ImageName, err.Error())
	} else {
		tex = ebiten.NewImageFromImage(img)
	}

	s.images.Add(page.ImageName, tex)
	debugLog("Cache MISS: %s (cache: %d items)", page.ImageName, s.images.Len())
	return tex
}

// GetThumbnail returns the thumbnail of page, or a placeholder describing the failure
func (s *ImageStore) GetThumbnail(page Page) *ebiten.Image {
	if img, ok := s.thumbnails.Get(page.ImageName); ok {
		return img
	}

	var tex *ebiten.Image
	img, err := loadThumbnail(s.source, page, s.thumbWidth)
	if err != nil {
		logger.Warnf("Failed to load thumbnail [%d] %s: %v", page.ID, page.ThumbName(), err)
		tex = CreateErrorImage(s.thumbWidth, s.thumbWidth*4/3, page.ImageName, "missing")
	} else {
		tex = ebiten.NewImageFromImage(img)
	}

	s.thumbnails.Add(page.ImageName, tex)
	return tex
}

// Image loading functions

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func decodeBytes(data []byte, path string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func loadImageFromZip(archivePath, entryPath string) (image.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data, entryPath)
	}
	return nil, fmt.Errorf("%w: entry %s in %s", errAssetNotFound, entryPath, archivePath)
}

func loadImageFromRar(archivePath, entryPath string) (image.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return decodeBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("%w: entry %s in %s", errAssetNotFound, entryPath, archivePath)
}

func loadImageFrom7z(archivePath, entryPath string) (image.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		return decodeBytes(data, entryPath)
	}
	return nil, fmt.Errorf("%w: entry %s in %s", errAssetNotFound, entryPath, archivePath)
}

func loadImage(imagePath ImagePath) (image.Image, error) {
	if imagePath.ArchivePath == "" {
		return decodeFile(imagePath.Path)
	}

	ext := strings.ToLower(filepath.Ext(imagePath.ArchivePath))
	switch ext {
	case ".zip":
		return loadImageFromZip(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return loadImageFromRar(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return loadImageFrom7z(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

// File collection functions

func archiveEntry(archivePath, entry string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + entry,
		ArchivePath: archivePath,
		EntryPath:   entry,
	}
}

// isThumbnailFile reports whether a collected file is a pre-rendered thumbnail of another image
func isThumbnailFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), thumbPrefix)
}

func extractImagesFromZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

func extractImagesFromRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, archiveEntry(archivePath, header.Name))
		}
	}
	return images, nil
}

func extractImagesFrom7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, archiveEntry(archivePath, f.Name))
		}
	}
	return images, nil
}

func processArchive(archivePath string) ([]ImagePath, error) {
	var archiveImages []ImagePath
	var err error

	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		archiveImages, err = extractImagesFromZip(archivePath)
	case ".rar":
		archiveImages, err = extractImagesFromRar(archivePath)
	case ".7z":
		archiveImages, err = extractImagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("processing archive %s: %w", archivePath, err)
	}
	return archiveImages, nil
}

// sortImagePaths sorts the given image paths using the specified sort strategy.
// Returns a new sorted slice without modifying the original.
func sortImagePaths(images []ImagePath, sortMethod int) []ImagePath {
	return GetSortStrategy(sortMethod).Sort(images)
}

// collectImagesFromSameDirectory collects the image files next to filePath.
// Archives, subdirectories and thumbnail files are skipped.
func collectImagesFromSameDirectory(filePath string, sortMethod int) ([]ImagePath, error) {
	dir := filepath.Dir(filePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var images []ImagePath
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if isSupportedExt(fullPath) && !isThumbnailFile(fullPath) {
			images = append(images, ImagePath{Path: fullPath})
		}
	}

	return sortImagePaths(images, sortMethod), nil
}

// collectImages gathers images from files, directories and archives in argument order
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	var list []ImagePath

	addArchive := func(path string) []ImagePath {
		archiveImages, err := processArchive(path)
		if err != nil {
			logger.Warnf("Skipping problematic archive %s: %v", path, err)
			return nil
		}
		return sortImagePaths(archiveImages, sortMethod)
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if isSupportedExt(p) {
				list = append(list, ImagePath{Path: p})
			} else if isArchiveExt(p) {
				list = append(list, addArchive(p)...)
			}
			continue
		}

		var dirImages []ImagePath
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) && !isThumbnailFile(path) {
				dirImages = append(dirImages, ImagePath{Path: path})
			} else if isArchiveExt(path) {
				dirImages = append(dirImages, addArchive(path)...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, sortImagePaths(dirImages, sortMethod)...)
	}

	return list, nil
}
