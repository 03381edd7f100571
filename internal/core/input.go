package core

// Action represents a semantic game action, abstracted from physical input.
// Frontends translate keys, clicks and taps into actions through a Router so
// the engine only ever sees intents.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, Up, W, click, tap - upward impulse while running
	ActionConfirm        // Enter, or flap keys outside a run - start / restart
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - restart after game over
	ActionMenu           // B - return to menu
	ActionMute           // M - toggle mute
	ActionUnlock         // U - retry audio output
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionMute:
		return "Mute"
	case ActionUnlock:
		return "Unlock"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Source identifies the device an input event came from.
type Source int

const (
	SourceKeyboard Source = iota
	SourcePointer
	SourceTouch
)

// InputEvent is a raw, device-level event as delivered by a frontend.
// Key is only meaningful for keyboard events and uses Bubble Tea style key
// names ("up", "enter", " ", "ctrl+c").
type InputEvent struct {
	Source Source
	Key    string
}

// KeyEvent is shorthand for a keyboard event.
func KeyEvent(key string) InputEvent {
	return InputEvent{Source: SourceKeyboard, Key: key}
}

// Router normalizes keyboard, pointer and touch events into actions.
// Every flap-capable input collapses to the same ActionFlap so the engine
// never sees which device fired.
type Router struct{}

// NewRouter creates a router with the default bindings.
func NewRouter() *Router {
	return &Router{}
}

// Route maps an event to an action. running tells the router whether a run
// is in progress: flap inputs only mean "flap" during a run and mean
// "confirm" (start, restart) otherwise.
func (r *Router) Route(ev InputEvent, running bool) Action {
	switch ev.Source {
	case SourcePointer, SourceTouch:
		return flapOrConfirm(running)
	}

	switch ev.Key {
	case " ", "space", "up", "w", "k":
		return flapOrConfirm(running)
	case "enter":
		return ActionConfirm
	case "p", "esc":
		return ActionPause
	case "r":
		return ActionRestart
	case "b":
		return ActionMenu
	case "m":
		return ActionMute
	case "u":
		return ActionUnlock
	case "q", "ctrl+c":
		return ActionQuit
	}
	return ActionNone
}

func flapOrConfirm(running bool) Action {
	if running {
		return ActionFlap
	}
	return ActionConfirm
}

// InputFrame collects the actions triggered during one frame.
// Repeated actions within a frame coalesce: a frame either has an action or
// it does not, so three flap sources firing together yield one flap.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
