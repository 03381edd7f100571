package core

import "testing"

func TestRouterKeyboard(t *testing.T) {
	r := NewRouter()

	tests := []struct {
		key     string
		running bool
		want    Action
	}{
		{" ", true, ActionFlap},
		{"up", true, ActionFlap},
		{"w", true, ActionFlap},
		{" ", false, ActionConfirm},
		{"enter", true, ActionConfirm},
		{"enter", false, ActionConfirm},
		{"p", true, ActionPause},
		{"esc", false, ActionPause},
		{"r", false, ActionRestart},
		{"b", false, ActionMenu},
		{"m", true, ActionMute},
		{"u", false, ActionUnlock},
		{"q", true, ActionQuit},
		{"ctrl+c", false, ActionQuit},
		{"x", true, ActionNone},
	}

	for _, tc := range tests {
		if got := r.Route(KeyEvent(tc.key), tc.running); got != tc.want {
			t.Errorf("Route(%q, running=%v) = %v, expected %v", tc.key, tc.running, got, tc.want)
		}
	}
}

func TestRouterPointerAndTouchNormalizeToFlap(t *testing.T) {
	r := NewRouter()

	for _, src := range []Source{SourcePointer, SourceTouch} {
		if got := r.Route(InputEvent{Source: src}, true); got != ActionFlap {
			t.Errorf("source %d while running = %v, expected Flap", src, got)
		}
		if got := r.Route(InputEvent{Source: src}, false); got != ActionConfirm {
			t.Errorf("source %d outside run = %v, expected Confirm", src, got)
		}
	}
}

func TestInputFrameCoalesces(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionFlap)
	f.Set(ActionFlap)
	f.Set(ActionNone)

	if !f.Has(ActionFlap) {
		t.Error("frame should have flap")
	}
	if len(f.Actions) != 1 {
		t.Errorf("repeated flaps should coalesce, got %d actions", len(f.Actions))
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}

	var zero InputFrame
	if zero.Has(ActionFlap) {
		t.Error("zero frame should have no actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionFlap.String() != "Flap" {
		t.Errorf("ActionFlap.String() = %q", ActionFlap.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
