// Package difficulty selects the difficulty stage from score and elapsed
// time, and eases the runtime tuning toward that stage's target.
package difficulty

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Stage is a named difficulty tier.
type Stage int

const (
	StageInitial Stage = iota
	StageMid
	StageFinal
)

// String returns the stage name as shown in the HUD and logs.
func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "INITIAL"
	case StageMid:
		return "MID"
	case StageFinal:
		return "FINAL"
	default:
		return "UNKNOWN"
	}
}

// Tuning is the set of physics and spawn parameters in effect for a tick.
type Tuning struct {
	SpawnIntervalMs float64
	HorizontalSpeed float64
	GapHeight       float64
	Gravity         float64
	FlapImpulse     float64
}

// TuningFrom converts a configured stage target into a Tuning.
func TuningFrom(t config.StageTarget) Tuning {
	return Tuning{
		SpawnIntervalMs: t.SpawnIntervalMs,
		HorizontalSpeed: t.Speed,
		GapHeight:       t.Gap,
		Gravity:         t.Gravity,
		FlapImpulse:     t.FlapImpulse,
	}
}

// Thresholds are the score and time gates between stages.
type Thresholds struct {
	ScoreToMid     int
	ScoreToFinal   int
	InitialSeconds float64
	FinalSeconds   float64
}

// Stager maps (score, elapsed) to a stage and a stage to its target tuning.
// It holds only configuration, so every method is a pure function of its
// arguments.
type Stager struct {
	Thresholds Thresholds
	Targets    [3]Tuning // indexed by Stage
	Smoothing  float64
	Enabled    bool // false pins the INITIAL stage
}

// NewStager builds a stager from configuration.
func NewStager(cfg config.DifficultyConfig) Stager {
	return Stager{
		Thresholds: Thresholds{
			ScoreToMid:     cfg.ScoreToMid,
			ScoreToFinal:   cfg.ScoreToFinal,
			InitialSeconds: cfg.InitialSeconds,
			FinalSeconds:   cfg.FinalSeconds,
		},
		Targets: [3]Tuning{
			StageInitial: TuningFrom(cfg.Stages.Initial),
			StageMid:     TuningFrom(cfg.Stages.Mid),
			StageFinal:   TuningFrom(cfg.Stages.Final),
		},
		Smoothing: cfg.Smoothing,
		Enabled:   cfg.Enabled,
	}
}

// StageFor returns the stage for a score and elapsed run time.
//
// INITIAL holds until both the score gate and the time gate are met. MID
// holds while the score and the time are both under the FINAL gates.
func (s Stager) StageFor(score int, elapsedMs float64) Stage {
	if !s.Enabled {
		return StageInitial
	}
	return StageFor(s.Thresholds, score, elapsedMs)
}

// StageFor is the threshold policy on its own.
func StageFor(th Thresholds, score int, elapsedMs float64) Stage {
	secs := elapsedMs / 1000
	switch {
	case score < th.ScoreToMid || secs < th.InitialSeconds:
		return StageInitial
	case score < th.ScoreToFinal && secs < th.FinalSeconds:
		return StageMid
	default:
		return StageFinal
	}
}

// Target returns the tuning a stage steers toward.
func (s Stager) Target(st Stage) Tuning {
	if st < StageInitial || st > StageFinal {
		st = StageInitial
	}
	return s.Targets[st]
}

// Initial returns the INITIAL target, used to reset the runtime tuning.
func (s Stager) Initial() Tuning {
	return s.Targets[StageInitial]
}

// Tick computes the stage for the current run and advances the tuning one
// smoothing step toward its target.
func (s Stager) Tick(current Tuning, score int, elapsedMs float64) (Tuning, Stage) {
	st := s.StageFor(score, elapsedMs)
	return Advance(current, s.Target(st), s.Smoothing), st
}

// Advance moves every field of current a fraction of the way toward target.
// smoothing is clamped to [0, 1]; 1 snaps to the target.
func Advance(current, target Tuning, smoothing float64) Tuning {
	smoothing = core.ClampF(smoothing, 0, 1)
	step := func(c, t float64) float64 {
		if smoothing == 1 {
			return t
		}
		return core.Lerp(c, t, smoothing)
	}
	return Tuning{
		SpawnIntervalMs: step(current.SpawnIntervalMs, target.SpawnIntervalMs),
		HorizontalSpeed: step(current.HorizontalSpeed, target.HorizontalSpeed),
		GapHeight:       step(current.GapHeight, target.GapHeight),
		Gravity:         step(current.Gravity, target.Gravity),
		FlapImpulse:     step(current.FlapImpulse, target.FlapImpulse),
	}
}
