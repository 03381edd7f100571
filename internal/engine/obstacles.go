package engine

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pipe pair: a top and bottom block around a vertical gap.
type Obstacle struct {
	X         float64 // left edge
	GapCenter float64
	Gap       float64
	Scored    bool // set once the actor passes the trailing edge
}

// GapTop returns the Y where the gap starts.
func (o Obstacle) GapTop() float64 {
	return o.GapCenter - o.Gap/2
}

// GapBottom returns the Y where the gap ends.
func (o Obstacle) GapBottom() float64 {
	return o.GapCenter + o.Gap/2
}

// TopRect returns the collision rectangle for the top block.
func (o Obstacle) TopRect(pipeWidth float64) core.Rect {
	return core.NewRect(o.X, 0, pipeWidth, o.GapTop())
}

// BottomRect returns the collision rectangle for the bottom block.
func (o Obstacle) BottomRect(pipeWidth, height float64) core.Rect {
	bottom := o.GapBottom()
	return core.NewRect(o.X, bottom, pipeWidth, height-bottom)
}

// Obstacles is the live pipe sequence ordered by X, oldest first. Spawning
// appends at the right; retirement only removes from the front.
type Obstacles []Obstacle

// RandomSource supplies uniform values in [0, 1). *math/rand.Rand satisfies
// it.
type RandomSource interface {
	Float64() float64
}

// GapFor returns the gap height for a new obstacle: the tuned gap minus a
// capped per-score shrink, never below the minimum.
func GapFor(w World, tunedGap float64, score int) float64 {
	shrink := math.Min(float64(score)*w.GapShrinkPerPoint, w.MaxGapShrink)
	return math.Max(w.MinGap, tunedGap-shrink)
}

// SpeedFor returns the horizontal speed per reference frame: the tuned speed
// plus a capped per-score bonus.
func SpeedFor(w World, tunedSpeed float64, score int) float64 {
	return tunedSpeed + math.Min(float64(score)*w.SpeedPerPoint, w.MaxSpeedBonus)
}

// Spawn appends an obstacle just past the right edge. The gap center is
// uniform over the range that keeps the whole gap inside the margins; when
// that range is empty the center collapses to its midpoint. A nil rng
// always picks the midpoint.
func (obs Obstacles) Spawn(w World, gap float64, rng RandomSource) Obstacles {
	lo := w.MarginTop + gap/2
	hi := w.Height - w.MarginBottom - gap/2
	center := (lo + hi) / 2
	if hi > lo && rng != nil {
		center = lo + rng.Float64()*(hi-lo)
	}

	return append(obs, Obstacle{
		X:         w.Width + w.SpawnMargin,
		GapCenter: center,
		Gap:       gap,
	})
}

// Move shifts every obstacle left by dx.
func (obs Obstacles) Move(dx float64) {
	for i := range obs {
		obs[i].X -= dx
	}
}

// Retire drops obstacles from the front once they are fully off screen
// behind the actor.
func (obs Obstacles) Retire(w World) Obstacles {
	limit := -(w.PipeWidth + w.SpawnMargin)
	n := 0
	for n < len(obs) && obs[n].X < limit {
		n++
	}
	if n == 0 {
		return obs
	}
	return obs[n:]
}

// MarkPassed marks every unscored obstacle whose trailing edge is left of
// actorX and returns how many were newly marked.
func (obs Obstacles) MarkPassed(actorX, pipeWidth float64) int {
	passed := 0
	for i := range obs {
		if !obs[i].Scored && obs[i].X+pipeWidth < actorX {
			obs[i].Scored = true
			passed++
		}
	}
	return passed
}

// Collides reports whether r overlaps any block.
func (obs Obstacles) Collides(r core.Rect, pipeWidth, height float64) bool {
	for _, o := range obs {
		if r.Intersects(o.TopRect(pipeWidth)) || r.Intersects(o.BottomRect(pipeWidth, height)) {
			return true
		}
	}
	return false
}
