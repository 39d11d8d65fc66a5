package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Rect is an axis-aligned rectangle in screen pixels
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the rectangle
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the centre point of the rectangle
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ControlKind identifies a button of the zoom control bar
type ControlKind int

const (
	ControlZoomOut ControlKind = iota
	ControlReset
	ControlZoomIn
	controlCount
)

// LayoutMetrics holds the fixed dimensions of the overlays
type LayoutMetrics struct {
	ImagePadding   float64
	InfoTop        float64
	InfoHeight     float64
	InfoMargin     float64
	ControlIcon    float64
	ControlSpacing float64
	ControlPadX    float64
	ControlPadY    float64
	ControlBottom  float64
	ThumbWidth     float64
	ThumbHeight    float64
	ThumbSpacing   float64
	DrawerPadX     float64
	DrawerPadY     float64
	HandleWidth    float64
	HandleHeight   float64
	DrawerMaxWidth float64 // fraction of the screen width
}

// DefaultLayoutMetrics returns the stock metrics for the given thumbnail width
func DefaultLayoutMetrics(thumbWidth float64) LayoutMetrics {
	return LayoutMetrics{
		ImagePadding:   16,
		InfoTop:        30,
		InfoHeight:     40,
		InfoMargin:     16,
		ControlIcon:    36,
		ControlSpacing: 12,
		ControlPadX:    20,
		ControlPadY:    12,
		ControlBottom:  30,
		ThumbWidth:     thumbWidth,
		ThumbHeight:    math.Round(thumbWidth * 1.3),
		ThumbSpacing:   12,
		DrawerPadX:     8,
		DrawerPadY:     16,
		HandleWidth:    40,
		HandleHeight:   56,
		DrawerMaxWidth: 0.9,
	}
}

// Layout is the screen geometry of one frame
type Layout struct {
	Screen     Rect
	InfoPanel  Rect
	ControlBar Rect
	Controls   [controlCount]Rect
	Drawer     Rect
	Handle     Rect

	// Thumbnails holds the visible drawer rows only; index i is page id FirstThumbnail+i+1
	Thumbnails      []Rect
	FirstThumbnail  int
	DrawerColumns   int
	DrawerRows      int // visible rows
	DrawerFirstRow  int
	DrawerTotalRows int
}

// ComputeLayout places every overlay for the given screen size with the drawer scrolled to the top.
// drawerProgress runs from 0 (closed, handle peeking) to 1 (fully open).
func ComputeLayout(screenW, screenH float64, pageCount int, drawerProgress float64, m LayoutMetrics) Layout {
	return ComputeScrolledLayout(screenW, screenH, pageCount, drawerProgress, 0, m)
}

// ComputeScrolledLayout is ComputeLayout with the drawer showing rows from firstRow on.
// firstRow is clamped so the visible rows stay filled.
func ComputeScrolledLayout(screenW, screenH float64, pageCount int, drawerProgress float64, firstRow int, m LayoutMetrics) Layout {
	l := Layout{Screen: Rect{0, 0, screenW, screenH}}

	l.InfoPanel = Rect{
		X: m.InfoMargin,
		Y: m.InfoTop,
		W: math.Max(0, screenW-2*m.InfoMargin),
		H: m.InfoHeight,
	}

	barW := 2*m.ControlPadX + float64(controlCount)*m.ControlIcon + float64(controlCount-1)*m.ControlSpacing
	barH := 2*m.ControlPadY + m.ControlIcon
	l.ControlBar = Rect{
		X: (screenW - barW) / 2,
		Y: screenH - m.ControlBottom - barH,
		W: barW,
		H: barH,
	}
	for i := ControlKind(0); i < controlCount; i++ {
		l.Controls[i] = Rect{
			X: l.ControlBar.X + m.ControlPadX + float64(i)*(m.ControlIcon+m.ControlSpacing),
			Y: l.ControlBar.Y + m.ControlPadY,
			W: m.ControlIcon,
			H: m.ControlIcon,
		}
	}

	l.layoutDrawer(screenW, screenH, pageCount, clamp01(drawerProgress), firstRow, m)
	return l
}

func (l *Layout) layoutDrawer(screenW, screenH float64, pageCount int, progress float64, firstRow int, m LayoutMetrics) {
	cell := m.ThumbWidth + m.ThumbSpacing
	rowH := m.ThumbHeight + m.ThumbSpacing
	fixedW := 2*m.DrawerPadX + m.HandleWidth
	y := screenH / 12

	columns := int(math.Floor((screenW*m.DrawerMaxWidth - fixedW) / cell))
	columns = min(max(columns, 1), pageCount)
	totalRows := 0
	if columns > 0 {
		totalRows = (pageCount + columns - 1) / columns
	}
	// Rows stop above the control bar
	availH := l.ControlBar.Y - m.ThumbSpacing - y - 2*m.DrawerPadY
	maxRows := max(int(math.Floor((availH+m.ThumbSpacing)/rowH)), 1)
	rows := min(totalRows, maxRows)

	l.DrawerColumns = columns
	l.DrawerRows = rows
	l.DrawerTotalRows = totalRows
	l.DrawerFirstRow = l.clampRow(firstRow)

	drawerW := fixedW + float64(columns)*cell
	contentH := math.Max(m.HandleHeight, float64(rows)*rowH-m.ThumbSpacing)
	drawerH := 2*m.DrawerPadY + contentH

	closedX := screenW - (m.DrawerPadX + m.HandleWidth)
	openX := screenW - drawerW
	x := closedX + (openX-closedX)*progress

	l.Drawer = Rect{X: x, Y: y, W: drawerW, H: drawerH}
	l.Handle = Rect{
		X: x + m.DrawerPadX,
		Y: y + m.DrawerPadY + (m.ThumbHeight-m.HandleHeight)/2,
		W: m.HandleWidth,
		H: m.HandleHeight,
	}
	if m.ThumbHeight < m.HandleHeight {
		l.Handle.Y = y + m.DrawerPadY
	}

	l.FirstThumbnail = l.DrawerFirstRow * columns
	last := min(pageCount, (l.DrawerFirstRow+rows)*columns)
	l.Thumbnails = make([]Rect, 0, max(last-l.FirstThumbnail, 0))
	for i := l.FirstThumbnail; i < last; i++ {
		col, row := i%columns, i/columns-l.DrawerFirstRow
		l.Thumbnails = append(l.Thumbnails, Rect{
			X: x + m.DrawerPadX + m.HandleWidth + m.ThumbSpacing + float64(col)*cell,
			Y: y + m.DrawerPadY + float64(row)*rowH,
			W: m.ThumbWidth,
			H: m.ThumbHeight,
		})
	}
}

func (l Layout) clampRow(row int) int {
	return max(0, min(row, l.DrawerTotalRows-l.DrawerRows))
}

// ScrollRow returns the first visible drawer row after scrolling by delta rows
func (l Layout) ScrollRow(delta int) int {
	return l.clampRow(l.DrawerFirstRow + delta)
}

// RevealRow returns the first visible drawer row that brings page id into view,
// moving as little as possible
func (l Layout) RevealRow(id int) int {
	if l.DrawerColumns == 0 || id < 1 {
		return l.DrawerFirstRow
	}
	row := (id - 1) / l.DrawerColumns
	first := l.DrawerFirstRow
	if row < first {
		first = row
	} else if row >= first+l.DrawerRows {
		first = row - l.DrawerRows + 1
	}
	return l.clampRow(first)
}

// HitKind classifies what lies under a pointer
type HitKind int

const (
	HitImage HitKind = iota
	HitControl
	HitHandle
	HitThumbnail
	HitPanel // overlay background that swallows input
)

// Hit is the result of a hit test; Index is the ControlKind or page id
type Hit struct {
	Kind  HitKind
	Index int
}

// HitTest finds the topmost element at (x, y)
func (l Layout) HitTest(x, y float64, showInfo bool) Hit {
	if l.Drawer.Contains(x, y) {
		if l.Handle.Contains(x, y) {
			return Hit{Kind: HitHandle}
		}
		for i, r := range l.Thumbnails {
			if r.Contains(x, y) {
				return Hit{Kind: HitThumbnail, Index: l.FirstThumbnail + i + 1}
			}
		}
		return Hit{Kind: HitPanel}
	}
	if l.ControlBar.Contains(x, y) {
		for i, r := range l.Controls {
			if r.Contains(x, y) {
				return Hit{Kind: HitControl, Index: i}
			}
		}
		return Hit{Kind: HitPanel}
	}
	if showInfo && l.InfoPanel.Contains(x, y) {
		return Hit{Kind: HitPanel}
	}
	return Hit{Kind: HitImage}
}

// FitScale returns the scale that fits an iw x ih image inside the padded screen
func (l Layout) FitScale(iw, ih float64, padding float64) float64 {
	availW := l.Screen.W - 2*padding
	availH := l.Screen.H - 2*padding
	if iw <= 0 || ih <= 0 || availW <= 0 || availH <= 0 {
		return 0
	}
	return math.Min(availW/iw, availH/ih)
}

// ImageGeoM builds the transform drawing an iw x ih image: aspect fit and centred,
// translated by the pan offset, then scaled by zoom about the screen centre.
func (l Layout) ImageGeoM(iw, ih float64, padding float64, display DisplayState) ebiten.GeoM {
	var g ebiten.GeoM
	fit := l.FitScale(iw, ih, padding)
	cx, cy := l.Screen.Center()

	g.Scale(fit, fit)
	g.Translate(cx-iw*fit/2, cy-ih*fit/2)
	g.Translate(display.Offset.DX, display.Offset.DY)
	g.Translate(-cx, -cy)
	g.Scale(display.Scale, display.Scale)
	g.Translate(cx, cy)
	return g
}
