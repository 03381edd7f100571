// Package desktop runs the engine in a window through Ebiten.
package desktop

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// The unit disc is drawn once and stretched into any ellipse.
const discSize = 64

// textScale enlarges the 7x13 bitmap font to stay legible at 640x480.
const textScale = 2

// Canvas draws onto an Ebiten image. Logical units map 1:1 to pixels
// because Layout reports the world size and Ebiten scales the window.
type Canvas struct {
	dst    *ebiten.Image
	w, h   float64
	face   text.Face
	disc   *ebiten.Image
	images map[image.Image]*ebiten.Image
}

// NewCanvas creates a canvas for a w×h logical surface.
func NewCanvas(w, h float64) *Canvas {
	return &Canvas{
		w:      w,
		h:      h,
		face:   text.NewGoXFace(basicfont.Face7x13),
		images: make(map[image.Image]*ebiten.Image),
	}
}

// Target sets the image the next draw calls paint on.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

// Size returns the logical size.
func (c *Canvas) Size() (float64, float64) {
	return c.w, c.h
}

// Clear fills the target with col.
func (c *Canvas) Clear(col core.Color) {
	c.dst.Fill(col.RGBA())
}

// FillRect fills r.
func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	vector.FillRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col.RGBA(), false)
}

// FillEllipse fills the ellipse inscribed in r.
func (c *Canvas) FillEllipse(r core.Rect, col core.Color) {
	if c.disc == nil {
		c.disc = ebiten.NewImage(discSize, discSize)
		vector.FillCircle(c.disc, discSize/2, discSize/2, discSize/2, core.ColorWhite.RGBA(), true)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/discSize, r.H/discSize)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(col.RGBA())
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(c.disc, op)
}

// DrawImage stretches img over r and rotates it around the center of r.
func (c *Canvas) DrawImage(img image.Image, r core.Rect, rotation float64) {
	src := c.image(img)
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Rotate(rotation)
	cx, cy := r.Center()
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(src, op)
}

// image converts a decoded image to a GPU image once and reuses it.
func (c *Canvas) image(img image.Image) *ebiten.Image {
	if ei, ok := img.(*ebiten.Image); ok {
		return ei
	}
	if ei, ok := c.images[img]; ok {
		return ei
	}
	ei := ebiten.NewImageFromImage(img)
	c.images[img] = ei
	return ei
}

// DrawText draws one line with its top edge at y.
func (c *Canvas) DrawText(x, y float64, s string, col core.Color, align render.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col.RGBA())
	switch align {
	case render.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case render.AlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(c.dst, s, c.face, op)
}
