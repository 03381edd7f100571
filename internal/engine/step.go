package engine

import "github.com/vovakirdan/tui-flappy/internal/core"

// StepResult reports what happened during one physics tick.
type StepResult struct {
	Dead    bool
	Scored  int  // obstacles passed this tick
	Spawned bool // an obstacle was appended this tick
}

// Step advances the run by dtMs. It does not modify s; the returned state
// shares no memory with it. Given the same state, inputs and random
// sequence, it always produces the same result.
//
// A flap replaces the vertical velocity with the flap impulse instead of
// adding gravity that tick, so the post-flap velocity is exactly the impulse.
func Step(s EngineState, w World, dtMs float64, flap bool, rng RandomSource) (EngineState, StepResult) {
	next := s.Clone()
	var res StepResult

	dtMs = core.ClampF(dtMs, 0, w.MaxFrameMs)
	k := dtMs / w.ReferenceFrameMs
	t := next.Tuning

	a := &next.Actor
	if flap {
		a.VY = t.FlapImpulse
	} else {
		a.VY += t.Gravity * k
	}
	a.Y += a.VY * k

	next.ElapsedMs += dtMs

	next.SpawnTimer += dtMs
	if next.SpawnTimer > t.SpawnIntervalMs {
		next.SpawnTimer = 0
		next.Obstacles = next.Obstacles.Spawn(w, GapFor(w, t.GapHeight, next.Score), rng)
		res.Spawned = true
	}

	next.Obstacles.Move(SpeedFor(w, t.HorizontalSpeed, next.Score) * k)
	next.Obstacles = next.Obstacles.Retire(w)

	res.Scored = next.Obstacles.MarkPassed(a.X, w.PipeWidth)
	next.Score += res.Scored

	res.Dead = OutOfBounds(*a, w) || next.Obstacles.Collides(a.Rect(), w.PipeWidth, w.Height)
	return next, res
}

// OutOfBounds reports whether the actor's box left the canvas vertically.
func OutOfBounds(a Actor, w World) bool {
	return a.Y < 0 || a.Y+a.H > w.Height
}
