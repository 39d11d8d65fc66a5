package main

import (
	"errors"
	"testing"
)

func TestBundledCatalog(t *testing.T) {
	catalog, err := NewCatalog(pageData)
	if err != nil {
		t.Fatalf("bundled pages rejected: %v", err)
	}
	if catalog.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", catalog.Len())
	}

	page, ok := catalog.Page(3)
	if !ok || page.ImageName != "magazine-inner-spread" {
		t.Errorf("Page(3) = %+v, %v", page, ok)
	}
	if got := page.ThumbName(); got != "thumb-magazine-inner-spread" {
		t.Errorf("ThumbName() = %q", got)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		pages   []Page
		wantErr bool
	}{
		{"single page", []Page{{ID: 1, ImageName: "a"}}, false},
		{"dense ids", []Page{{ID: 1, ImageName: "a"}, {ID: 2, ImageName: "b"}}, false},
		{"empty", nil, true},
		{"starts at zero", []Page{{ID: 0, ImageName: "a"}}, true},
		{"gap", []Page{{ID: 1, ImageName: "a"}, {ID: 3, ImageName: "b"}}, true},
		{"out of order", []Page{{ID: 2, ImageName: "a"}, {ID: 1, ImageName: "b"}}, true},
		{"missing name", []Page{{ID: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.pages)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCatalog() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewCatalog(nil); !errors.Is(err, errEmptyCatalog) {
		t.Errorf("empty catalog error = %v, want errEmptyCatalog", err)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	pages := []Page{{ID: 1, ImageName: "a"}, {ID: 2, ImageName: "b"}}
	catalog, err := NewCatalog(pages)
	if err != nil {
		t.Fatal(err)
	}

	pages[0].ImageName = "changed"
	got := catalog.Pages()
	got[1].ImageName = "changed too"

	if p, _ := catalog.Page(1); p.ImageName != "a" {
		t.Errorf("catalog shares the input slice: %+v", p)
	}
	if p, _ := catalog.Page(2); p.ImageName != "b" {
		t.Errorf("catalog shares the Pages() slice: %+v", p)
	}
}

func TestCatalogPageBounds(t *testing.T) {
	catalog, err := NewCatalog(pageData)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int{0, -1, 5} {
		if _, ok := catalog.Page(id); ok {
			t.Errorf("Page(%d) should not exist", id)
		}
	}
}

func TestNewCatalogFromPaths(t *testing.T) {
	catalog, err := NewCatalogFromPaths(pathsOf("a.png", "b.zip:c.png"))
	if err != nil {
		t.Fatal(err)
	}
	pages := catalog.Pages()
	if len(pages) != 2 || pages[0] != (Page{ID: 1, ImageName: "a.png"}) || pages[1] != (Page{ID: 2, ImageName: "b.zip:c.png"}) {
		t.Errorf("pages = %+v", pages)
	}

	if _, err := NewCatalogFromPaths(nil); !errors.Is(err, errEmptyCatalog) {
		t.Errorf("empty paths error = %v, want errEmptyCatalog", err)
	}
}
