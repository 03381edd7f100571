package desktop

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
)

// scripted feeds one Input per Update, then nothing.
type scripted struct {
	inputs []Input
}

func (s *scripted) next() Input {
	if len(s.inputs) == 0 {
		return Input{}
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in
}

func newTestGame(inputs []Input, opts ...Option) (*Game, *engine.Machine) {
	cfg := config.Default()
	cfg.Game.CountdownSteps = 0
	m := engine.NewMachine(cfg, engine.WithSeed(3))
	g := NewGame(m, opts...)
	src := &scripted{inputs: inputs}
	g.read = src.next
	return g, m
}

func TestInputEvents(t *testing.T) {
	in := Input{
		Keys:    []ebiten.Key{ebiten.KeySpace, ebiten.KeyF1, ebiten.KeyM},
		Click:   true,
		Touches: 2,
	}
	got := in.Events()
	want := []core.InputEvent{
		core.KeyEvent(" "),
		core.KeyEvent("m"),
		{Source: core.SourcePointer},
		{Source: core.SourceTouch},
		{Source: core.SourceTouch},
	}
	if len(got) != len(want) {
		t.Fatalf("Events() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestKeyNamesRoute(t *testing.T) {
	router := core.NewRouter()
	for k, name := range keyNames {
		if router.Route(core.KeyEvent(name), true) == core.ActionNone {
			t.Errorf("key %v (%q) routes to nothing", k, name)
		}
	}
}

func TestGameTouchStartsAndFlaps(t *testing.T) {
	g, m := newTestGame([]Input{
		{Touches: 1}, // confirm: start
		{Touches: 3}, // three fingers, one flap
	})

	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Phase() != engine.PhaseRunning {
		t.Fatalf("phase = %v, want RUNNING", m.Phase())
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if vy := m.State().Actor.VY; vy != m.State().Tuning.FlapImpulse {
		t.Errorf("VY = %v, want one flap impulse %v", vy, m.State().Tuning.FlapImpulse)
	}
}

func TestGameQuit(t *testing.T) {
	g, _ := newTestGame([]Input{{Keys: []ebiten.Key{ebiten.KeyQ}}})
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() = %v, want ebiten.Termination", err)
	}
}

func TestGameCopyOnlyAfterRun(t *testing.T) {
	var copied []string
	clip := func(s string) error {
		copied = append(copied, s)
		return nil
	}
	copyKey := Input{Keys: []ebiten.Key{ebiten.KeyC}}

	g, m := newTestGame([]Input{copyKey}, WithClipboard(clip))
	g.Update()
	if len(copied) != 0 {
		t.Fatal("copied outside GAME_OVER")
	}

	m.Start()
	for i := 0; i < 500 && m.Phase() != engine.PhaseGameOver; i++ {
		g.Update()
	}
	if m.Phase() != engine.PhaseGameOver {
		t.Fatal("run never ended")
	}

	g.read = func() Input { return copyKey }
	g.Update()
	if len(copied) != 1 || copied[0] != m.Frame().Summary() {
		t.Errorf("copied = %q", copied)
	}
}

func TestGameLayout(t *testing.T) {
	g, m := newTestGame(nil)
	w, h := g.Layout(1920, 1080)
	if w != int(m.World().Width) || h != int(m.World().Height) {
		t.Errorf("Layout() = %dx%d", w, h)
	}
}
