// Package audio coordinates background music and one-shot effects with the
// game phase. Every call is best-effort: a missing handle is silence and a
// playback failure is logged, never returned.
package audio

import (
	"io"

	"github.com/charmbracelet/log"
)

// Channel identifies which background track should be audible.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelMenu
	ChannelInGame
	ChannelGameOver
	ChannelMuted // reported by Channel() while muted, never selected
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelNone:
		return "none"
	case ChannelMenu:
		return "menu"
	case ChannelInGame:
		return "in-game"
	case ChannelGameOver:
		return "game-over"
	case ChannelMuted:
		return "muted"
	default:
		return "unknown"
	}
}

// Effect names.
const (
	EffectStart     = "start"
	EffectTick      = "tick"
	EffectFlap      = "flap"
	EffectScore     = "score"
	EffectHighScore = "highscore"
	EffectHit       = "hit"
)

// EffectNames lists every effect slot in a stable order.
var EffectNames = []string{EffectStart, EffectTick, EffectFlap, EffectScore, EffectHighScore, EffectHit}

// Track is a looping background track.
type Track interface {
	Play() error
	Pause() error
	Rewind() error
}

// Effect is a one-shot sound.
type Effect interface {
	Play() error
}

// Tracks holds the three background tracks. Any may be nil.
type Tracks struct {
	Menu     Track
	InGame   Track
	GameOver Track
}

// Coordinator owns the active background channel, mute and suspend state.
// It is not safe for concurrent use; it is driven from the game loop.
type Coordinator struct {
	tracks  Tracks
	effects map[string]Effect
	logger  *log.Logger

	current   Channel
	muted     bool
	suspended bool
	blocked   bool // last Play failed; Unlock retries
	unlock    func() error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger for playback failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMuted sets the initial mute state.
func WithMuted(muted bool) Option {
	return func(c *Coordinator) {
		c.muted = muted
	}
}

// WithUnlocker sets the function Unlock calls to retry the output device.
func WithUnlocker(fn func() error) Option {
	return func(c *Coordinator) {
		c.unlock = fn
	}
}

// NewCoordinator creates a coordinator. effects may be nil.
func NewCoordinator(tracks Tracks, effects map[string]Effect, opts ...Option) *Coordinator {
	c := &Coordinator{
		tracks:  tracks,
		effects: effects,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Channel returns the audible channel: ChannelMuted while muted, otherwise
// the selected one.
func (c *Coordinator) Channel() Channel {
	if c == nil {
		return ChannelNone
	}
	if c.muted {
		return ChannelMuted
	}
	return c.current
}

// Selected returns the selected channel regardless of mute.
func (c *Coordinator) Selected() Channel {
	if c == nil {
		return ChannelNone
	}
	return c.current
}

// Muted reports whether all audio is suppressed.
func (c *Coordinator) Muted() bool {
	return c != nil && c.muted
}

// Blocked reports whether the last playback attempt failed.
func (c *Coordinator) Blocked() bool {
	return c != nil && c.blocked
}

// SetChannel switches the background channel. The outgoing track is paused
// and rewound so it starts from the top next time. Switching clears any
// suspension.
func (c *Coordinator) SetChannel(ch Channel) {
	if c == nil || ch == ChannelMuted {
		return
	}
	if ch == c.current {
		if c.suspended {
			c.Resume()
		}
		return
	}
	if t := c.track(c.current); t != nil {
		c.try("pause", c.current, t.Pause)
		c.try("rewind", c.current, t.Rewind)
	}
	c.logger.Debug("audio channel", "from", c.current, "to", ch)
	c.current = ch
	c.suspended = false
	c.apply()
}

// Suspend pauses the current track without rewinding it.
func (c *Coordinator) Suspend() {
	if c == nil || c.suspended {
		return
	}
	c.suspended = true
	if t := c.track(c.current); t != nil {
		c.try("pause", c.current, t.Pause)
	}
}

// Resume continues a suspended track from where it stopped.
func (c *Coordinator) Resume() {
	if c == nil || !c.suspended {
		return
	}
	c.suspended = false
	c.apply()
}

// SetMuted mutes or unmutes. Muting pauses without rewinding, so unmuting
// continues from the same position.
func (c *Coordinator) SetMuted(muted bool) {
	if c == nil || c.muted == muted {
		return
	}
	c.muted = muted
	if muted {
		if t := c.track(c.current); t != nil {
			c.try("pause", c.current, t.Pause)
		}
		return
	}
	c.apply()
}

// ToggleMute flips the mute state and returns the new value.
func (c *Coordinator) ToggleMute() bool {
	if c == nil {
		return false
	}
	c.SetMuted(!c.muted)
	return c.muted
}

// PlayEffect fires a one-shot effect. Unknown or missing effects are silent.
func (c *Coordinator) PlayEffect(name string) {
	if c == nil || c.muted {
		return
	}
	e, ok := c.effects[name]
	if !ok || e == nil {
		return
	}
	if err := e.Play(); err != nil {
		c.blocked = true
		c.logger.Debug("effect failed", "effect", name, "err", err)
	}
}

// Unlock retries the output device (if an unlocker was given) and replays
// the current channel. It is the manual mitigation for blocked playback.
func (c *Coordinator) Unlock() {
	if c == nil {
		return
	}
	if c.unlock != nil {
		if err := c.unlock(); err != nil {
			c.logger.Warn("audio unlock failed", "err", err)
			return
		}
	}
	c.blocked = false
	c.apply()
}

// apply makes the selected track audible if nothing suppresses it.
func (c *Coordinator) apply() {
	t := c.track(c.current)
	if t == nil {
		return
	}
	if c.muted || c.suspended {
		c.try("pause", c.current, t.Pause)
		return
	}
	c.try("play", c.current, t.Play)
}

func (c *Coordinator) track(ch Channel) Track {
	switch ch {
	case ChannelMenu:
		return c.tracks.Menu
	case ChannelInGame:
		return c.tracks.InGame
	case ChannelGameOver:
		return c.tracks.GameOver
	}
	return nil
}

func (c *Coordinator) try(op string, ch Channel, fn func() error) {
	if err := fn(); err != nil {
		if op == "play" {
			c.blocked = true
		}
		c.logger.Debug("track "+op+" failed", "channel", ch, "err", err)
	}
}
