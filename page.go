package main

import (
	"errors"
	"fmt"
)

const thumbPrefix = "thumb-"

// Page identifies a displayed image
type Page struct {
	ID        int
	ImageName string
}

// ThumbName returns the asset name of the page thumbnail
func (p Page) ThumbName() string {
	return thumbPrefix + p.ImageName
}

// pageData is the bundled catalog used when no paths are given on the command line
var pageData = []Page{
	{ID: 1, ImageName: "magazine-front-cover"},
	{ID: 2, ImageName: "magazine-contents"},
	{ID: 3, ImageName: "magazine-inner-spread"},
	{ID: 4, ImageName: "magazine-back-cover"},
}

var errEmptyCatalog = errors.New("catalog has no pages")

// Catalog is the fixed ordered list of pages
type Catalog struct {
	pages []Page
}

// NewCatalog validates pages and wraps them in a Catalog.
// Pages must be non-empty and numbered 1..n in order.
func NewCatalog(pages []Page) (*Catalog, error) {
	if len(pages) == 0 {
		return nil, errEmptyCatalog
	}
	for i, p := range pages {
		if p.ID != i+1 {
			return nil, fmt.Errorf("page %q has id %d, expected %d", p.ImageName, p.ID, i+1)
		}
		if p.ImageName == "" {
			return nil, fmt.Errorf("page %d has no image name", p.ID)
		}
	}

	owned := make([]Page, len(pages))
	copy(owned, pages)
	return &Catalog{pages: owned}, nil
}

// NewCatalogFromPaths numbers collected image paths into a catalog
func NewCatalogFromPaths(paths []ImagePath) (*Catalog, error) {
	pages := make([]Page, len(paths))
	for i, p := range paths {
		pages[i] = Page{ID: i + 1, ImageName: p.Path}
	}
	return NewCatalog(pages)
}

// Pages returns a copy of the ordered pages
func (c *Catalog) Pages() []Page {
	result := make([]Page, len(c.pages))
	copy(result, c.pages)
	return result
}

// Len returns the number of pages
func (c *Catalog) Len() int {
	return len(c.pages)
}

// Page returns the page with the given 1-based id
func (c *Catalog) Page(id int) (Page, bool) {
	if id < 1 || id > len(c.pages) {
		return Page{}, false
	}
	return c.pages[id-1], true
}
