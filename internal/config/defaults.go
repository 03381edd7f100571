package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/flappy.yaml and is the fallback when the embedded file cannot be
// parsed.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  640,
			Height: 480,
		},
		Player: PlayerConfig{
			X:               120,
			Width:           34,
			Height:          24,
			MaxTiltVelocity: 10,
			TiltPerVelocity: 0.06,
		},
		Physics: PhysicsConfig{
			ReferenceFrameMs: 16,
			MaxFrameMs:       100,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:         64,
			SpawnMargin:       20,
			MarginTop:         40,
			MarginBottom:      40,
			MinGap:            90,
			GapShrinkPerPoint: 0.8,
			MaxGapShrink:      30,
			SpeedPerPoint:     0.01,
			MaxSpeedBonus:     1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			Smoothing:      0.04,
			ScoreToMid:     5,
			ScoreToFinal:   20,
			InitialSeconds: 20,
			FinalSeconds:   180,
			Stages: StagesConfig{
				Initial: StageTarget{SpawnIntervalMs: 1800, Speed: 2.0, Gap: 170, Gravity: 0.35, FlapImpulse: -6.5},
				Mid:     StageTarget{SpawnIntervalMs: 1500, Speed: 2.8, Gap: 150, Gravity: 0.42, FlapImpulse: -7.0},
				Final:   StageTarget{SpawnIntervalMs: 1200, Speed: 3.6, Gap: 130, Gravity: 0.5, FlapImpulse: -7.5},
			},
		},
		Game: GameConfig{
			CountdownSteps:   3,
			CountdownStepMs:  1000,
			RestartCountdown: true,
		},
		Assets: AssetConfig{
			Effects: map[string]string{},
		},
		Audio: AudioConfig{
			Enabled: true,
			Muted:   false,
			Volume:  0.8,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
