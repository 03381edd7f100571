// Package engine implements the flappy simulation: the per-tick physics
// step, the obstacle field, a cooperative timer scheduler and the phase
// state machine that ties them to audio and score keeping.
package engine

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/difficulty"
)

// Actor is the flyer. X is fixed for the whole run; Y is the top of the
// bounding box and grows downward.
type Actor struct {
	X, Y float64
	VY   float64
	W, H float64
}

// Rect returns the actor's collision box.
func (a Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.W, a.H)
}

// World is the fixed geometry and per-score adjustments of a run, taken
// from configuration.
type World struct {
	Width, Height float64

	PlayerX, PlayerW, PlayerH float64
	MaxTiltVelocity           float64
	TiltPerVelocity           float64

	PipeWidth    float64
	SpawnMargin  float64
	MarginTop    float64
	MarginBottom float64
	MinGap       float64

	GapShrinkPerPoint float64
	MaxGapShrink      float64
	SpeedPerPoint     float64
	MaxSpeedBonus     float64

	ReferenceFrameMs float64
	MaxFrameMs       float64
}

// WorldFrom extracts the world geometry from a sanitized config.
func WorldFrom(cfg config.Config) World {
	return World{
		Width:             cfg.Canvas.Width,
		Height:            cfg.Canvas.Height,
		PlayerX:           cfg.Player.X,
		PlayerW:           cfg.Player.Width,
		PlayerH:           cfg.Player.Height,
		MaxTiltVelocity:   cfg.Player.MaxTiltVelocity,
		TiltPerVelocity:   cfg.Player.TiltPerVelocity,
		PipeWidth:         cfg.Obstacles.PipeWidth,
		SpawnMargin:       cfg.Obstacles.SpawnMargin,
		MarginTop:         cfg.Obstacles.MarginTop,
		MarginBottom:      cfg.Obstacles.MarginBottom,
		MinGap:            cfg.Obstacles.MinGap,
		GapShrinkPerPoint: cfg.Obstacles.GapShrinkPerPoint,
		MaxGapShrink:      cfg.Obstacles.MaxGapShrink,
		SpeedPerPoint:     cfg.Obstacles.SpeedPerPoint,
		MaxSpeedBonus:     cfg.Obstacles.MaxSpeedBonus,
		ReferenceFrameMs:  cfg.Physics.ReferenceFrameMs,
		MaxFrameMs:        cfg.Physics.MaxFrameMs,
	}
}

// Tilt returns the render rotation in radians for a vertical velocity.
func (w World) Tilt(vy float64) float64 {
	return core.ClampF(vy, -w.MaxTiltVelocity, w.MaxTiltVelocity) * w.TiltPerVelocity
}

// EngineState is everything that changes during a run.
type EngineState struct {
	Actor      Actor
	Obstacles  Obstacles
	Score      int
	ElapsedMs  float64
	SpawnTimer float64
	Tuning     difficulty.Tuning
}

// NewEngineState returns the state at the start of a run: the actor
// centered vertically and at rest, no obstacles, tuning at the INITIAL
// target.
func NewEngineState(w World, initial difficulty.Tuning) EngineState {
	return EngineState{
		Actor: Actor{
			X: w.PlayerX,
			Y: (w.Height - w.PlayerH) / 2,
			W: w.PlayerW,
			H: w.PlayerH,
		},
		Obstacles: make(Obstacles, 0, 8),
		Tuning:    initial,
	}
}

// Clone returns a copy that shares no memory with s.
func (s EngineState) Clone() EngineState {
	c := s
	c.Obstacles = append(Obstacles(nil), s.Obstacles...)
	return c
}
