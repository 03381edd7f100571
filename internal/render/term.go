package render

import (
	"image"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// TermCanvas draws onto a colour cell Screen. Each cell is one "pixel":
// shapes and images paint cell backgrounds and text writes runes on top.
type TermCanvas struct {
	screen *core.Screen
	w, h   float64 // logical size
}

// NewTermCanvas maps a logical w×h surface onto screen.
func NewTermCanvas(screen *core.Screen, w, h float64) *TermCanvas {
	return &TermCanvas{screen: screen, w: w, h: h}
}

// Screen returns the underlying cell buffer.
func (t *TermCanvas) Screen() *core.Screen {
	return t.screen
}

// Size returns the logical size.
func (t *TermCanvas) Size() (float64, float64) {
	return t.w, t.h
}

func (t *TermCanvas) scale() (sx, sy float64) {
	if t.w <= 0 || t.h <= 0 {
		return 0, 0
	}
	return float64(t.screen.Width()) / t.w, float64(t.screen.Height()) / t.h
}

// cells converts a logical rectangle to the half-open cell span it covers.
// A non-empty rectangle always covers at least one cell.
func (t *TermCanvas) cells(r core.Rect) (x0, y0, x1, y1 int) {
	sx, sy := t.scale()
	x0, x1 = core.Round(r.X*sx), core.Round(r.Right()*sx)
	y0, y1 = core.Round(r.Y*sy), core.Round(r.Bottom()*sy)
	if x1 <= x0 && r.W > 0 {
		x1 = x0 + 1
	}
	if y1 <= y0 && r.H > 0 {
		y1 = y0 + 1
	}
	x0 = core.Clamp(x0, 0, t.screen.Width())
	x1 = core.Clamp(x1, 0, t.screen.Width())
	y0 = core.Clamp(y0, 0, t.screen.Height())
	y1 = core.Clamp(y1, 0, t.screen.Height())
	return x0, y0, x1, y1
}

// cellCenter returns the logical coordinates of a cell's center.
func (t *TermCanvas) cellCenter(cx, cy int) (float64, float64) {
	sx, sy := t.scale()
	return (float64(cx) + 0.5) / sx, (float64(cy) + 0.5) / sy
}

// Clear fills the whole screen with c.
func (t *TermCanvas) Clear(c core.Color) {
	t.screen.Fill(c)
}

// FillRect paints the cells covered by r.
func (t *TermCanvas) FillRect(r core.Rect, c core.Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := t.cells(r)
	t.screen.FillArea(x0, y0, x1-x0, y1-y0, c)
}

// FillEllipse paints the cells whose centers fall inside the ellipse
// inscribed in r. If r is smaller than a cell, its center cell is painted.
func (t *TermCanvas) FillEllipse(r core.Rect, c core.Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := t.cells(r)
	cx, cy := r.Center()
	rx, ry := r.W/2, r.H/2

	painted := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := t.cellCenter(x, y)
			dx, dy := (px-cx)/rx, (py-cy)/ry
			if dx*dx+dy*dy <= 1 {
				t.screen.SetBG(x, y, c)
				painted = true
			}
		}
	}
	if !painted {
		sx, sy := t.scale()
		t.screen.SetBG(int(math.Floor(cx*sx)), int(math.Floor(cy*sy)), c)
	}
}

// DrawImage samples img at every cell center inside r, rotated by rotation
// around the center of r. Mostly transparent pixels leave the cell alone.
func (t *TermCanvas) DrawImage(img image.Image, r core.Rect, rotation float64) {
	if img == nil || r.Empty() {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}

	cx, cy := r.Center()
	sin, cos := math.Sincos(-rotation)

	// Cells to visit: the axis-aligned box around the rotated rectangle
	area := r
	if rotation != 0 {
		half := math.Hypot(r.W, r.H) / 2
		area = core.NewRect(cx-half, cy-half, half*2, half*2)
	}
	x0, y0, x1, y1 := t.cells(area)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := t.cellCenter(x, y)
			// Inverse-rotate the sample point into image space
			dx, dy := px-cx, py-cy
			qx := cx + dx*cos - dy*sin
			qy := cy + dx*sin + dy*cos
			if !r.Contains(qx, qy) {
				continue
			}
			u := (qx - r.X) / r.W
			v := (qy - r.Y) / r.H
			ix := b.Min.X + core.Clamp(int(u*float64(b.Dx())), 0, b.Dx()-1)
			iy := b.Min.Y + core.Clamp(int(v*float64(b.Dy())), 0, b.Dy()-1)

			if _, _, _, a := img.At(ix, iy).RGBA(); a < 0x8000 {
				continue
			}
			t.screen.SetBG(x, y, core.FromStd(img.At(ix, iy)))
		}
	}
}

// DrawText writes text on the row containing y, keeping cell backgrounds.
func (t *TermCanvas) DrawText(x, y float64, text string, c core.Color, align Align) {
	sx, sy := t.scale()
	col := int(math.Floor(x * sx))
	row := int(math.Floor(y * sy))
	n := len([]rune(text))
	switch align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	t.screen.DrawText(col, row, text, c)
}
