package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/difficulty"
)

// Frame is a read-only snapshot of everything the render pass needs.
type Frame struct {
	Phase     Phase
	World     World
	Actor     Actor
	Tilt      float64 // actor rotation in radians
	Obstacles []Obstacle
	Score     int
	Best      int
	NewBest   bool
	Countdown int // steps left while in COUNTDOWN
	Stage     difficulty.Stage
	Muted     bool
	Blocked   bool // audio playback failed; the HUD offers unlock
}

// Frame returns a snapshot of the current state.
func (m *Machine) Frame() Frame {
	return Frame{
		Phase:     m.phase,
		World:     m.world,
		Actor:     m.state.Actor,
		Tilt:      m.world.Tilt(m.state.Actor.VY),
		Obstacles: append([]Obstacle(nil), m.state.Obstacles...),
		Score:     m.state.Score,
		Best:      m.best,
		NewBest:   m.newBest,
		Countdown: m.left,
		Stage:     m.stage,
		Muted:     m.audio.Muted(),
		Blocked:   m.audio.Blocked(),
	}
}

// Channel returns the audible audio channel.
func (m *Machine) Channel() audio.Channel {
	return m.audio.Channel()
}

// Summary is a one-line description of the run, suitable for sharing.
func (f Frame) Summary() string {
	s := fmt.Sprintf("flappy: %d points (best %d, %s stage)", f.Score, f.Best, f.Stage)
	if f.NewBest {
		s += ", new best!"
	}
	return s
}
