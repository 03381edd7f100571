package config

import (
	"fmt"
	"math"
)

// Minimum values that keep the game playable and free of divide-by-zero.
const (
	MinCanvasSize      = 64
	MinSpawnIntervalMs = 100
	defaultSmoothing   = 0.04
	defaultFrameMs     = 16
)

// Sanitize clamps invalid or missing values to safe minimums instead of
// rejecting them. It returns the repaired config and one note per change so
// the caller can log what was adjusted.
func Sanitize(cfg Config) (Config, []string) {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}
	atLeast := func(name string, v *float64, lo float64) {
		if math.IsNaN(*v) || *v < lo {
			note("%s %.4g raised to %.4g", name, *v, lo)
			*v = lo
		}
	}
	atMost := func(name string, v *float64, hi float64) {
		if math.IsNaN(*v) || *v > hi {
			note("%s %.4g lowered to %.4g", name, *v, hi)
			*v = hi
		}
	}

	atLeast("canvas.width", &cfg.Canvas.Width, MinCanvasSize)
	atLeast("canvas.height", &cfg.Canvas.Height, MinCanvasSize)

	p := &cfg.Player
	atLeast("player.width", &p.Width, 1)
	atLeast("player.height", &p.Height, 1)
	atMost("player.height", &p.Height, cfg.Canvas.Height/2)
	atLeast("player.x", &p.X, 0)
	atMost("player.x", &p.X, cfg.Canvas.Width-p.Width)
	atLeast("player.max_tilt_velocity", &p.MaxTiltVelocity, 0)

	ph := &cfg.Physics
	if ph.ReferenceFrameMs <= 0 || math.IsNaN(ph.ReferenceFrameMs) {
		note("physics.reference_frame_ms %.4g reset to %d", ph.ReferenceFrameMs, defaultFrameMs)
		ph.ReferenceFrameMs = defaultFrameMs
	}
	atLeast("physics.max_frame_ms", &ph.MaxFrameMs, 1)

	o := &cfg.Obstacles
	atLeast("obstacles.pipe_width", &o.PipeWidth, 1)
	atLeast("obstacles.spawn_margin", &o.SpawnMargin, 0)
	atLeast("obstacles.margin_top", &o.MarginTop, 0)
	atLeast("obstacles.margin_bottom", &o.MarginBottom, 0)
	atLeast("obstacles.min_gap", &o.MinGap, p.Height+1)
	atMost("obstacles.min_gap", &o.MinGap, cfg.Canvas.Height)
	atLeast("obstacles.gap_shrink_per_point", &o.GapShrinkPerPoint, 0)
	atLeast("obstacles.max_gap_shrink", &o.MaxGapShrink, 0)
	atLeast("obstacles.speed_per_point", &o.SpeedPerPoint, 0)
	atLeast("obstacles.max_speed_bonus", &o.MaxSpeedBonus, 0)

	d := &cfg.Difficulty
	if d.Smoothing <= 0 || math.IsNaN(d.Smoothing) {
		note("difficulty.smoothing %.4g reset to %.2g", d.Smoothing, defaultSmoothing)
		d.Smoothing = defaultSmoothing
	}
	atMost("difficulty.smoothing", &d.Smoothing, 1)
	if d.ScoreToMid < 0 {
		note("difficulty.score_to_mid %d raised to 0", d.ScoreToMid)
		d.ScoreToMid = 0
	}
	if d.ScoreToFinal < d.ScoreToMid {
		note("difficulty.score_to_final %d raised to %d", d.ScoreToFinal, d.ScoreToMid)
		d.ScoreToFinal = d.ScoreToMid
	}
	atLeast("difficulty.initial_seconds", &d.InitialSeconds, 0)
	atLeast("difficulty.final_seconds", &d.FinalSeconds, d.InitialSeconds)

	for _, st := range []struct {
		name   string
		target *StageTarget
	}{
		{"initial", &d.Stages.Initial},
		{"mid", &d.Stages.Mid},
		{"final", &d.Stages.Final},
	} {
		prefix := "difficulty.stages." + st.name
		t := st.target
		atLeast(prefix+".spawn_interval_ms", &t.SpawnIntervalMs, MinSpawnIntervalMs)
		atLeast(prefix+".speed", &t.Speed, 0)
		atLeast(prefix+".gap", &t.Gap, o.MinGap)
		atLeast(prefix+".gravity", &t.Gravity, 0)
		if t.FlapImpulse > 0 {
			note("%s.flap_impulse %.4g flipped to %.4g (negative is up)", prefix, t.FlapImpulse, -t.FlapImpulse)
			t.FlapImpulse = -t.FlapImpulse
		}
	}

	g := &cfg.Game
	if g.CountdownSteps < 0 {
		note("game.countdown_steps %d raised to 0", g.CountdownSteps)
		g.CountdownSteps = 0
	}
	atLeast("game.countdown_step_ms", &g.CountdownStepMs, 1)

	atLeast("audio.volume", &cfg.Audio.Volume, 0)
	atMost("audio.volume", &cfg.Audio.Volume, 1)

	if cfg.Assets.Effects == nil {
		cfg.Assets.Effects = map[string]string{}
	}

	return cfg, notes
}
