package config

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyFixed:
		d.Enabled = false
	case DifficultyEasy:
		d.Enabled = true
		d.ScoreToMid = d.ScoreToMid * 3 / 2
		d.ScoreToFinal = d.ScoreToFinal * 3 / 2
		d.InitialSeconds *= 1.5
		d.FinalSeconds *= 1.5
		d.Stages.Initial.Gap *= 1.15
		d.Stages.Mid.Gap *= 1.15
		d.Stages.Final.Gap *= 1.15
	case DifficultyHard:
		// Hard starts where normal reaches after the first stage change.
		d.Enabled = true
		d.Stages.Initial = d.Stages.Mid
	case DifficultyNormal:
		d.Enabled = true
	}
}

// ApplyOverrides seeds the INITIAL stage target with host-supplied base
// values. MID and FINAL are rescaled by the same ratio so the stages keep
// their relative ordering.
func ApplyOverrides(cfg *Config, o Overrides) {
	if o.IsZero() {
		return
	}
	s := &cfg.Difficulty.Stages
	rescale := func(override float64, initial, mid, final *float64) {
		if override == 0 {
			return
		}
		if *initial != 0 {
			ratio := override / *initial
			*mid *= ratio
			*final *= ratio
		}
		*initial = override
	}
	rescale(o.Gravity, &s.Initial.Gravity, &s.Mid.Gravity, &s.Final.Gravity)
	rescale(o.FlapImpulse, &s.Initial.FlapImpulse, &s.Mid.FlapImpulse, &s.Final.FlapImpulse)
	rescale(o.Speed, &s.Initial.Speed, &s.Mid.Speed, &s.Final.Speed)
	rescale(o.Gap, &s.Initial.Gap, &s.Mid.Gap, &s.Final.Gap)
}
