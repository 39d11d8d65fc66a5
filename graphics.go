package main

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source for text rendering and placeholder generation
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawRoundedRect fills r with rounded corners of the given radius
func DrawRoundedRect(screen *ebiten.Image, r Rect, radius float64, fill color.Color) {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		DrawFilledRect(screen, r.X, r.Y, r.W, r.H, fill)
		return
	}

	var path vector.Path
	x0, y0, x1, y1 := float32(r.X), float32(r.Y), float32(r.X+r.W), float32(r.Y+r.H)
	rad := float32(radius)
	path.MoveTo(x0+rad, y0)
	path.LineTo(x1-rad, y0)
	path.ArcTo(x1, y0, x1, y0+rad, rad)
	path.LineTo(x1, y1-rad)
	path.ArcTo(x1, y1, x1-rad, y1, rad)
	path.LineTo(x0+rad, y1)
	path.ArcTo(x0, y1, x0, y1-rad, rad)
	path.LineTo(x0, y0+rad)
	path.ArcTo(x0, y0, x0+rad, y0, rad)
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := fill.RGBA()
	for i := range vertices {
		vertices[i].SrcX, vertices[i].SrcY = 1, 1
		vertices[i].ColorR = float32(cr) / 0xffff
		vertices[i].ColorG = float32(cg) / 0xffff
		vertices[i].ColorB = float32(cb) / 0xffff
		vertices[i].ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, whitePixel(), op)
}

var whiteImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(whiteImage.Bounds().Inset(1)).(*ebiten.Image)
}

// drawMagnifier draws a magnifying glass glyph centred in r; sign is -1, 0 or +1
// for a minus, a reset arrow pair or a plus inside the lens
func drawMagnifier(screen *ebiten.Image, r Rect, sign int, clr color.Color) {
	cx, cy := r.Center()
	lensR := r.W * 0.3
	lensX, lensY := float32(cx-r.W*0.08), float32(cy-r.H*0.08)
	stroke := float32(math.Max(2, r.W/14))

	vector.StrokeCircle(screen, lensX, lensY, float32(lensR), stroke, clr, true)
	handle := float32(lensR * 0.7071)
	vector.StrokeLine(screen, lensX+handle, lensY+handle, lensX+handle*2.1, lensY+handle*2.1, stroke*1.4, clr, true)

	arm := float32(lensR * 0.55)
	switch {
	case sign < 0:
		vector.StrokeLine(screen, lensX-arm, lensY, lensX+arm, lensY, stroke, clr, true)
	case sign > 0:
		vector.StrokeLine(screen, lensX-arm, lensY, lensX+arm, lensY, stroke, clr, true)
		vector.StrokeLine(screen, lensX, lensY-arm, lensX, lensY+arm, stroke, clr, true)
	default:
		// Diagonal double arrow
		vector.StrokeLine(screen, lensX-arm, lensY-arm, lensX+arm, lensY+arm, stroke, clr, true)
		tip := arm * 0.6
		vector.StrokeLine(screen, lensX-arm, lensY-arm, lensX-arm+tip, lensY-arm, stroke, clr, true)
		vector.StrokeLine(screen, lensX-arm, lensY-arm, lensX-arm, lensY-arm+tip, stroke, clr, true)
		vector.StrokeLine(screen, lensX+arm, lensY+arm, lensX+arm-tip, lensY+arm, stroke, clr, true)
		vector.StrokeLine(screen, lensX+arm, lensY+arm, lensX+arm, lensY+arm-tip, stroke, clr, true)
	}
}

// drawChevron draws the drawer handle glyph; pointing right when open
func drawChevron(screen *ebiten.Image, r Rect, pointRight bool, clr color.Color) {
	cx, cy := r.Center()
	halfW, halfH := float32(r.W*0.12), float32(r.H*0.35)
	x, y := float32(cx), float32(cy)
	stroke := float32(4)

	tipX, baseX := x-halfW, x+halfW
	if pointRight {
		tipX, baseX = x+halfW, x-halfW
	}
	vector.StrokeLine(screen, baseX, y-halfH, tipX, y, stroke, clr, true)
	vector.StrokeLine(screen, tipX, y, baseX, y+halfH, stroke, clr, true)
}

// CreateErrorImage creates a placeholder image with the asset name and error message
func CreateErrorImage(width, height int, name, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255})

	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(errorImg, 0, 0, float64(width), 3, white)
	DrawFilledRect(errorImg, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(errorImg, 0, 0, 3, float64(height), white)
	DrawFilledRect(errorImg, float64(width-3), 0, 3, float64(height), white)

	if globalFontSource == nil {
		return errorImg
	}

	// Scale text with the placeholder so thumbnails stay legible
	size := math.Max(8, math.Min(20, float64(width)/20))
	errorFont := &text.GoTextFace{Source: globalFontSource, Size: size}

	lines := []string{"ERROR", "File: " + filepath.Base(name), "Reason: " + errorMsg}
	maxChars := int(float64(width-20) / (size / 2))
	for i, line := range lines {
		if maxChars > 3 && len(line) > maxChars {
			line = line[:maxChars-3] + "..."
		}
		DrawText(errorImg, line, errorFont, 10, 10+float64(i)*size*1.5, white)
	}

	return errorImg
}
