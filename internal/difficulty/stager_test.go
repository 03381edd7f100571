package difficulty

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func defaultStager() Stager {
	return NewStager(config.Default().Difficulty)
}

func TestStageFor(t *testing.T) {
	s := defaultStager()

	tests := []struct {
		name      string
		score     int
		elapsedMs float64
		want      Stage
	}{
		{"start", 0, 0, StageInitial},
		{"score gate met, time gate not", 10, 10_000, StageInitial},
		{"time gate met, score gate not", 4, 60_000, StageInitial},
		{"both gates met", 10, 25_000, StageMid},
		{"exactly at mid gates", 5, 20_000, StageMid},
		{"score reaches final", 20, 25_000, StageFinal},
		{"time reaches final", 10, 180_000, StageFinal},
		{"far past everything", 500, 1_000_000, StageFinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.StageFor(tt.score, tt.elapsedMs); got != tt.want {
				t.Errorf("StageFor(%d, %v) = %v, want %v", tt.score, tt.elapsedMs, got, tt.want)
			}
		})
	}
}

func TestStageForScenario(t *testing.T) {
	s := defaultStager()

	if got := s.StageFor(0, 0); got != StageInitial {
		t.Fatalf("start stage = %v, want INITIAL", got)
	}
	// Score gate met at 10s, but the time gate is not
	if got := s.StageFor(10, 10_000); got != StageInitial {
		t.Fatalf("stage at score 10, 10s = %v, want INITIAL", got)
	}
	if got := s.StageFor(10, 25_000); got != StageMid {
		t.Fatalf("stage at score 10, 25s = %v, want MID", got)
	}
}

func TestStageForPureAndPartitioned(t *testing.T) {
	s := defaultStager()

	for score := 0; score <= 40; score++ {
		for ms := 0.0; ms <= 240_000; ms += 2_500 {
			a := s.StageFor(score, ms)
			b := s.StageFor(score, ms)
			if a != b {
				t.Fatalf("StageFor(%d, %v) not deterministic: %v vs %v", score, ms, a, b)
			}

			// Exactly one region predicate holds
			secs := ms / 1000
			th := s.Thresholds
			initial := score < th.ScoreToMid || secs < th.InitialSeconds
			mid := !initial && score < th.ScoreToFinal && secs < th.FinalSeconds
			final := !initial && !mid
			count := 0
			for _, in := range []bool{initial, mid, final} {
				if in {
					count++
				}
			}
			if count != 1 {
				t.Fatalf("score=%d ms=%v falls in %d regions", score, ms, count)
			}

			var want Stage
			switch {
			case initial:
				want = StageInitial
			case mid:
				want = StageMid
			default:
				want = StageFinal
			}
			if a != want {
				t.Fatalf("StageFor(%d, %v) = %v, want %v", score, ms, a, want)
			}
		}
	}
}

func TestStageForDisabledPinsInitial(t *testing.T) {
	s := defaultStager()
	s.Enabled = false
	if got := s.StageFor(100, 1_000_000); got != StageInitial {
		t.Errorf("disabled stager returned %v", got)
	}
}

func TestTargetsOrdered(t *testing.T) {
	s := defaultStager()
	i, m, f := s.Target(StageInitial), s.Target(StageMid), s.Target(StageFinal)

	if !(i.HorizontalSpeed < m.HorizontalSpeed && m.HorizontalSpeed < f.HorizontalSpeed) {
		t.Error("speed should increase by stage")
	}
	if !(i.GapHeight > m.GapHeight && m.GapHeight > f.GapHeight) {
		t.Error("gap should shrink by stage")
	}
	if !(i.Gravity < m.Gravity && m.Gravity < f.Gravity) {
		t.Error("gravity should strengthen by stage")
	}
	if !(i.SpawnIntervalMs > m.SpawnIntervalMs && m.SpawnIntervalMs > f.SpawnIntervalMs) {
		t.Error("spawn interval should shorten by stage")
	}
}

func TestAdvanceExponentialApproach(t *testing.T) {
	current := Tuning{SpawnIntervalMs: 1000, HorizontalSpeed: 2, GapHeight: 200, Gravity: 0.3, FlapImpulse: -6}
	target := Tuning{SpawnIntervalMs: 2000, HorizontalSpeed: 4, GapHeight: 100, Gravity: 0.5, FlapImpulse: -8}

	got := Advance(current, target, 0.5)
	want := Tuning{SpawnIntervalMs: 1500, HorizontalSpeed: 3, GapHeight: 150, Gravity: 0.4, FlapImpulse: -7}

	const eps = 1e-9
	pairs := [][2]float64{
		{got.SpawnIntervalMs, want.SpawnIntervalMs},
		{got.HorizontalSpeed, want.HorizontalSpeed},
		{got.GapHeight, want.GapHeight},
		{got.Gravity, want.Gravity},
		{got.FlapImpulse, want.FlapImpulse},
	}
	for i, p := range pairs {
		if math.Abs(p[0]-p[1]) > eps {
			t.Errorf("field %d = %v, want %v", i, p[0], p[1])
		}
	}

	if snapped := Advance(current, target, 1); snapped != target {
		t.Errorf("smoothing 1 should snap: got %+v", snapped)
	}
	if held := Advance(current, target, 0); held != current {
		t.Errorf("smoothing 0 should hold: got %+v", held)
	}
}

func TestAdvanceNeverJumps(t *testing.T) {
	s := defaultStager()
	tuning := s.Initial()

	fields := func(x Tuning) []float64 {
		return []float64{x.SpawnIntervalMs, x.HorizontalSpeed, x.GapHeight, x.Gravity, x.FlapImpulse}
	}

	// Walk through all three stages; the target changes discontinuously
	for tick := 0; tick < 20_000; tick++ {
		score := tick / 400
		elapsed := float64(tick) * 16
		st := s.StageFor(score, elapsed)
		target := s.Target(st)

		next := Advance(tuning, target, s.Smoothing)
		cur, nxt, tgt := fields(tuning), fields(next), fields(target)
		for i := range cur {
			step := math.Abs(nxt[i] - cur[i])
			gap := math.Abs(tgt[i] - cur[i])
			if step > gap+1e-12 {
				t.Fatalf("tick %d field %d jumped %v, gap only %v", tick, i, step, gap)
			}
			if step > gap*s.Smoothing+1e-9 {
				t.Fatalf("tick %d field %d step %v exceeds smoothing bound %v", tick, i, step, gap*s.Smoothing)
			}
		}
		tuning = next
	}

	// After long enough in FINAL, tuning converges on the FINAL target
	final := s.Target(StageFinal)
	if math.Abs(tuning.HorizontalSpeed-final.HorizontalSpeed) > 0.01 {
		t.Errorf("speed %v did not converge to %v", tuning.HorizontalSpeed, final.HorizontalSpeed)
	}
}

func TestTickAppliesSmoothingEveryCall(t *testing.T) {
	s := defaultStager()
	start := s.Initial()
	start.HorizontalSpeed = 0

	// Stage unchanged between calls; smoothing still applies
	a, st := s.Tick(start, 0, 0)
	if st != StageInitial {
		t.Fatalf("stage = %v", st)
	}
	b, _ := s.Tick(a, 0, 16)
	if !(start.HorizontalSpeed < a.HorizontalSpeed && a.HorizontalSpeed < b.HorizontalSpeed) {
		t.Errorf("speed did not keep approaching target: %v %v %v", start.HorizontalSpeed, a.HorizontalSpeed, b.HorizontalSpeed)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		s    Stage
		want string
	}{
		{StageInitial, "INITIAL"},
		{StageMid, "MID"},
		{StageFinal, "FINAL"},
		{Stage(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
