// Package render draws an engine frame onto a Canvas. Drawing is a pure
// function of the frame and the images: nothing here mutates game state,
// and a missing image always degrades to a primitive shape.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// Align controls how DrawText positions a string relative to x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is a drawing surface in logical (world) coordinates. The
// implementation scales to its own pixels or cells.
type Canvas interface {
	Size() (w, h float64)
	Clear(c core.Color)
	FillRect(r core.Rect, c core.Color)
	FillEllipse(r core.Rect, c core.Color)
	// DrawImage stretches img over r, rotated by rotation radians around
	// the center of r.
	DrawImage(img image.Image, r core.Rect, rotation float64)
	// DrawText draws a line of text whose top edge is at y.
	DrawText(x, y float64, text string, c core.Color, align Align)
}

// Images are the optional visual assets. Any field may be nil.
type Images struct {
	Background image.Image
	Player     image.Image
	Pipe       image.Image
}

// Palette used for fallbacks and the HUD.
var (
	BackgroundColor = core.ColorSky
	PipeColor       = core.ColorPipe
	PlayerColor     = core.ColorPlayer
	TextColor       = core.ColorWhite
	AccentColor     = core.ColorYellow
	AlertColor      = core.ColorRed
	DimColor        = core.ColorGray
)

// Draw renders one frame: background, obstacles, actor, then HUD.
func Draw(c Canvas, f engine.Frame, img Images) {
	w, h := c.Size()

	c.Clear(BackgroundColor)
	if img.Background != nil {
		c.DrawImage(img.Background, core.NewRect(0, 0, w, h), 0)
	}

	drawObstacles(c, f, img.Pipe)
	drawActor(c, f, img.Player)
	drawHUD(c, f, w, h)
}

func drawObstacles(c Canvas, f engine.Frame, pipe image.Image) {
	pw := f.World.PipeWidth
	for _, o := range f.Obstacles {
		top := o.TopRect(pw)
		bottom := o.BottomRect(pw, f.World.Height)
		if pipe != nil {
			// The top block is the same sprite turned upside down
			if !top.Empty() {
				c.DrawImage(pipe, top, math.Pi)
			}
			if !bottom.Empty() {
				c.DrawImage(pipe, bottom, 0)
			}
			continue
		}
		if !top.Empty() {
			c.FillRect(top, PipeColor)
		}
		if !bottom.Empty() {
			c.FillRect(bottom, PipeColor)
		}
	}
}

func drawActor(c Canvas, f engine.Frame, player image.Image) {
	r := f.Actor.Rect()
	if player != nil {
		c.DrawImage(player, r, f.Tilt)
		return
	}
	c.FillEllipse(r, PlayerColor)
}

// HUD layout, as fractions of the canvas height.
const (
	hudMargin   = 0.02
	titleRow    = 0.30
	subtitleRow = 0.42
	detailRow   = 0.52
	hintRow     = 0.62
)

func drawHUD(c Canvas, f engine.Frame, w, h float64) {
	top := h * hudMargin
	left := w * hudMargin
	right := w - left

	if f.Phase != engine.PhaseMenu {
		c.DrawText(left, top, fmt.Sprintf("Score: %d", f.Score), TextColor, AlignLeft)
	}
	c.DrawText(right, top, fmt.Sprintf("Best: %d", f.Best), TextColor, AlignRight)

	cx := w / 2
	switch f.Phase {
	case engine.PhaseMenu:
		c.DrawText(cx, h*titleRow, "F L A P P Y", AccentColor, AlignCenter)
		c.DrawText(cx, h*subtitleRow, "Press SPACE or click to start", TextColor, AlignCenter)
		c.DrawText(cx, h*hintRow, "M mute   U audio   Q quit", DimColor, AlignCenter)
	case engine.PhaseCountdown:
		c.DrawText(cx, h*titleRow, fmt.Sprintf("%d", f.Countdown), AccentColor, AlignCenter)
		c.DrawText(cx, h*subtitleRow, "Get ready", TextColor, AlignCenter)
	case engine.PhaseRunning:
		c.DrawText(left, top+h*0.05, f.Stage.String(), DimColor, AlignLeft)
	case engine.PhasePaused:
		c.DrawText(cx, h*titleRow, "PAUSED", AccentColor, AlignCenter)
		c.DrawText(cx, h*subtitleRow, "P to resume   B for menu", TextColor, AlignCenter)
	case engine.PhaseGameOver:
		c.DrawText(cx, h*titleRow, "GAME OVER", AlertColor, AlignCenter)
		c.DrawText(cx, h*subtitleRow, fmt.Sprintf("Score: %d", f.Score), TextColor, AlignCenter)
		if f.NewBest {
			c.DrawText(cx, h*detailRow, "New best!", AccentColor, AlignCenter)
		}
		c.DrawText(cx, h*hintRow, "R or SPACE to restart   B for menu", DimColor, AlignCenter)
	}

	bottom := h * (1 - hudMargin*3)
	switch {
	case f.Muted:
		c.DrawText(left, bottom, "[muted]", DimColor, AlignLeft)
	case f.Blocked:
		c.DrawText(left, bottom, "audio blocked: press U", DimColor, AlignLeft)
	}
}
