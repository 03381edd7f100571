package render

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// 10 logical units per cell on both axes.
func newTestCanvas() *TermCanvas {
	return NewTermCanvas(core.NewScreen(20, 10), 200, 100)
}

func countBG(s *core.Screen, c core.Color) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).BG == c {
				n++
			}
		}
	}
	return n
}

func TestTermCanvasFillRect(t *testing.T) {
	tc := newTestCanvas()
	tc.Clear(core.ColorSky)
	tc.FillRect(core.NewRect(20, 10, 30, 20), core.ColorPipe)

	s := tc.Screen()
	if got := countBG(s, core.ColorPipe); got != 3*2 {
		t.Errorf("painted %d cells, want 6", got)
	}
	if s.GetCell(2, 1).BG != core.ColorPipe || s.GetCell(4, 2).BG != core.ColorPipe {
		t.Error("corner cells not painted")
	}
	if s.GetCell(5, 1).BG != core.ColorSky {
		t.Error("cell right of the rect was painted")
	}
}

func TestTermCanvasTinyRectStillVisible(t *testing.T) {
	tc := newTestCanvas()
	tc.FillRect(core.NewRect(41, 41, 2, 2), core.ColorRed)
	if got := countBG(tc.Screen(), core.ColorRed); got != 1 {
		t.Errorf("tiny rect painted %d cells, want 1", got)
	}
}

func TestTermCanvasClipsOffscreen(t *testing.T) {
	tc := newTestCanvas()
	tc.FillRect(core.NewRect(-50, -50, 1000, 1000), core.ColorRed)
	if got := countBG(tc.Screen(), core.ColorRed); got != 20*10 {
		t.Errorf("painted %d cells, want the whole screen", got)
	}
	tc.Clear(core.ColorSky)
	tc.FillRect(core.NewRect(500, 0, 40, 40), core.ColorRed)
	if got := countBG(tc.Screen(), core.ColorRed); got != 0 {
		t.Errorf("offscreen rect painted %d cells", got)
	}
}

func TestTermCanvasFillEllipse(t *testing.T) {
	tc := newTestCanvas()
	tc.FillEllipse(core.NewRect(0, 0, 100, 100), core.ColorPlayer)

	s := tc.Screen()
	n := countBG(s, core.ColorPlayer)
	// Fewer cells than the bounding box, but more than nothing
	if n == 0 || n >= 100 {
		t.Errorf("ellipse painted %d cells", n)
	}
	if s.GetCell(5, 5).BG != core.ColorPlayer {
		t.Error("ellipse center not painted")
	}
	if s.GetCell(0, 0).BG == core.ColorPlayer {
		t.Error("ellipse corner painted")
	}

	tiny := newTestCanvas()
	tiny.FillEllipse(core.NewRect(52, 52, 3, 3), core.ColorPlayer)
	if got := countBG(tiny.Screen(), core.ColorPlayer); got != 1 {
		t.Errorf("tiny ellipse painted %d cells, want 1", got)
	}
}

// quadrants returns a 2x2 image: red, green / blue, white.
func quadrants() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestTermCanvasDrawImage(t *testing.T) {
	red := core.RGB(255, 0, 0)
	green := core.RGB(0, 255, 0)
	blue := core.RGB(0, 0, 255)
	white := core.RGB(255, 255, 255)

	tests := []struct {
		name     string
		rotation float64
		topLeft  core.Color
		botRight core.Color
	}{
		{"upright", 0, red, white},
		{"half turn", math.Pi, white, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCanvas()
			tc.Clear(core.ColorSky)
			tc.DrawImage(quadrants(), core.NewRect(0, 0, 40, 40), tt.rotation)

			s := tc.Screen()
			if got := s.GetCell(0, 0).BG; got != tt.topLeft {
				t.Errorf("top-left = %v, want %v", got, tt.topLeft)
			}
			if got := s.GetCell(3, 3).BG; got != tt.botRight {
				t.Errorf("bottom-right = %v, want %v", got, tt.botRight)
			}
			if tt.rotation == 0 {
				if s.GetCell(3, 0).BG != green || s.GetCell(0, 3).BG != blue {
					t.Error("off-diagonal quadrants wrong")
				}
			}
			if s.GetCell(4, 0).BG != core.ColorSky {
				t.Error("image drawn outside its rect")
			}
		})
	}
}

func TestTermCanvasDrawImageSkipsTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1)) // fully transparent
	tc := newTestCanvas()
	tc.Clear(core.ColorSky)
	tc.DrawImage(img, core.NewRect(0, 0, 200, 100), 0)
	if got := countBG(tc.Screen(), core.ColorSky); got != 200 {
		t.Errorf("transparent image changed %d cells", 200-got)
	}
}

func TestTermCanvasDrawText(t *testing.T) {
	tc := newTestCanvas()
	tc.Clear(core.ColorSky)

	tc.DrawText(0, 0, "hi", core.ColorWhite, AlignLeft)
	tc.DrawText(100, 50, "MID", core.ColorWhite, AlignCenter)
	tc.DrawText(200, 90, "end", core.ColorWhite, AlignRight)

	s := tc.Screen()
	if got := s.Row(0); !strings.HasPrefix(got, "hi") {
		t.Errorf("row 0 = %q", got)
	}
	if got := strings.TrimSpace(s.Row(5)); got != "MID" {
		t.Errorf("row 5 = %q", got)
	}
	if idx := strings.Index(s.Row(5), "MID"); idx != 10-1 {
		t.Errorf("centered text at %d, want 9", idx)
	}
	if got := s.Row(9); !strings.HasSuffix(got, "end") {
		t.Errorf("row 9 = %q", got)
	}
	if s.GetCell(0, 0).BG != core.ColorSky {
		t.Error("text should keep the background")
	}
}

func TestDrawOntoTermCanvas(t *testing.T) {
	screen := core.NewScreen(80, 24)
	f := testFrame(engine.PhaseGameOver)
	tc := NewTermCanvas(screen, f.World.Width, f.World.Height)

	Draw(tc, f, Images{})

	if countBG(screen, PipeColor) == 0 {
		t.Error("no pipe cells drawn")
	}
	if countBG(screen, PlayerColor) == 0 {
		t.Error("no actor cells drawn")
	}
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Errorf("missing overlay:\n%s", screen.String())
	}
}
