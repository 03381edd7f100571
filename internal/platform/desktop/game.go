package desktop

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// keyNames maps Ebiten keys to the key names core.Router understands.
var keyNames = map[ebiten.Key]string{
	ebiten.KeySpace:   " ",
	ebiten.KeyArrowUp: "up",
	ebiten.KeyW:       "w",
	ebiten.KeyK:       "k",
	ebiten.KeyEnter:   "enter",
	ebiten.KeyP:       "p",
	ebiten.KeyEscape:  "esc",
	ebiten.KeyR:       "r",
	ebiten.KeyB:       "b",
	ebiten.KeyM:       "m",
	ebiten.KeyU:       "u",
	ebiten.KeyQ:       "q",
}

// Input is what the player pressed during one Ebiten tick.
type Input struct {
	Keys    []ebiten.Key
	Click   bool
	Touches int
}

// readInput polls inpututil for presses that started this tick.
func readInput() Input {
	return Input{
		Keys:    inpututil.AppendJustPressedKeys(nil),
		Click:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Touches: len(inpututil.AppendJustPressedTouchIDs(nil)),
	}
}

// Events converts one tick of input into router events, keys first.
func (in Input) Events() []core.InputEvent {
	var evs []core.InputEvent
	for _, k := range in.Keys {
		if name, ok := keyNames[k]; ok {
			evs = append(evs, core.KeyEvent(name))
		}
	}
	if in.Click {
		evs = append(evs, core.InputEvent{Source: core.SourcePointer})
	}
	for range in.Touches {
		evs = append(evs, core.InputEvent{Source: core.SourceTouch})
	}
	return evs
}

// Copied reports whether the copy key was pressed.
func (in Input) Copied() bool {
	for _, k := range in.Keys {
		if k == ebiten.KeyC {
			return true
		}
	}
	return false
}

// Game adapts a Machine to ebiten.Game.
type Game struct {
	machine *engine.Machine
	router  *core.Router
	frame   core.InputFrame
	canvas  *Canvas
	images  render.Images
	logger  *log.Logger
	copy    func(string) error
	read    func() Input
}

// Option configures a Game.
type Option func(*Game)

// WithImages sets the sprites. Nil fields fall back to shapes.
func WithImages(img render.Images) Option {
	return func(g *Game) {
		g.images = img
	}
}

// WithLogger routes logs to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClipboard replaces the clipboard writer. Nil disables copying.
func WithClipboard(fn func(string) error) Option {
	return func(g *Game) {
		g.copy = fn
	}
}

// NewGame wraps machine.
func NewGame(machine *engine.Machine, opts ...Option) *Game {
	w := machine.World()
	g := &Game{
		machine: machine,
		router:  core.NewRouter(),
		frame:   core.NewInputFrame(),
		canvas:  NewCanvas(w.Width, w.Height),
		logger:  log.New(io.Discard),
		read:    readInput,
	}
	if !clipboard.Unsupported {
		g.copy = clipboard.WriteAll
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Update routes input, then advances the machine by one tick. All events
// of a tick coalesce into one InputFrame, so a key, a click and a tap
// landing together flap once.
func (g *Game) Update() error {
	in := g.read()
	running := g.machine.Phase() == engine.PhaseRunning
	g.frame.Clear()
	for _, ev := range in.Events() {
		g.frame.Set(g.router.Route(ev, running))
	}
	if g.frame.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	for a := core.ActionFlap; a < core.ActionQuit; a++ {
		if g.frame.Has(a) {
			g.machine.Handle(a)
		}
	}
	if in.Copied() {
		g.copySummary()
	}

	g.machine.Update(1000 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) copySummary() {
	if g.copy == nil || g.machine.Phase() != engine.PhaseGameOver {
		return
	}
	if err := g.copy(g.machine.Frame().Summary()); err != nil {
		g.logger.Warn("clipboard copy failed", "err", err)
	}
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	render.Draw(g.canvas, g.machine.Frame(), g.images)
}

// Layout fixes the logical screen to the world size; Ebiten scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	w := g.machine.World()
	return int(w.Width), int(w.Height)
}

// Run opens a window sized scale times the world and blocks until it is
// closed or the player quits.
func Run(g *Game, title string, scale float64) error {
	w := g.machine.World()
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(w.Width*scale), int(w.Height*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
