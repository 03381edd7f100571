package core

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit RGB colour for a screen cell or a primitive shape.
// The zero value is "unset": the terminal keeps its default colour.
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB builds a set colour from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// FromStd converts a standard library colour, dropping alpha.
// Fully transparent colours become unset.
func FromStd(c color.Color) Color {
	if c == nil {
		return Color{}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBA returns the colour as an opaque standard library colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the colour as "#rrggbb", or "" when unset.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette used by the primitive fallbacks and the HUD.
var (
	ColorBlack  = RGB(0x00, 0x00, 0x00)
	ColorWhite  = RGB(0xff, 0xff, 0xff)
	ColorSky    = RGB(0x4e, 0xc0, 0xca)
	ColorPipe   = RGB(0x2e, 0xcc, 0x71)
	ColorPlayer = RGB(0xff, 0xd9, 0x3d)
	ColorRed    = RGB(0xe7, 0x4c, 0x3c)
	ColorYellow = RGB(0xf1, 0xc4, 0x0f)
	ColorGray   = RGB(0x95, 0xa5, 0xa6)
)
