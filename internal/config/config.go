// Package config provides YAML-based configuration loading, difficulty
// presets and input sanitizing for the flappy engine.
package config

// Config contains all configuration for the game.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Game       GameConfig       `yaml:"game"`
	Assets     AssetConfig      `yaml:"assets"`
	Audio      AudioConfig      `yaml:"audio"`
}

// CanvasConfig defines the logical playfield. All positions and speeds are
// expressed in these units; frontends scale to their surface.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the actor's fixed column and bounding box.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Render tilt: velocity is clamped to ±MaxTiltVelocity, then multiplied
	// by TiltPerVelocity to get radians.
	MaxTiltVelocity float64 `yaml:"max_tilt_velocity"`
	TiltPerVelocity float64 `yaml:"tilt_per_velocity"`
}

// PhysicsConfig defines integration parameters.
type PhysicsConfig struct {
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"` // dt divisor, one 60Hz frame
	MaxFrameMs       float64 `yaml:"max_frame_ms"`       // dt clamp for stalled frames
}

// ObstacleConfig defines pipe geometry, spawn placement and the per-score
// adjustments applied on top of the runtime tuning.
type ObstacleConfig struct {
	PipeWidth         float64 `yaml:"pipe_width"`
	SpawnMargin       float64 `yaml:"spawn_margin"`
	MarginTop         float64 `yaml:"margin_top"`
	MarginBottom      float64 `yaml:"margin_bottom"`
	MinGap            float64 `yaml:"min_gap"`
	GapShrinkPerPoint float64 `yaml:"gap_shrink_per_point"`
	MaxGapShrink      float64 `yaml:"max_gap_shrink"`
	SpeedPerPoint     float64 `yaml:"speed_per_point"`
	MaxSpeedBonus     float64 `yaml:"max_speed_bonus"`
}

// StageTarget is the tuning a difficulty stage steers toward.
type StageTarget struct {
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	Speed           float64 `yaml:"speed"`
	Gap             float64 `yaml:"gap"`
	Gravity         float64 `yaml:"gravity"`
	FlapImpulse     float64 `yaml:"flap_impulse"`
}

// StagesConfig holds one target per stage.
type StagesConfig struct {
	Initial StageTarget `yaml:"initial"`
	Mid     StageTarget `yaml:"mid"`
	Final   StageTarget `yaml:"final"`
}

// DifficultyConfig defines stage thresholds and smoothing.
type DifficultyConfig struct {
	Enabled        bool         `yaml:"enabled"` // false pins the INITIAL stage
	Smoothing      float64      `yaml:"smoothing"`
	ScoreToMid     int          `yaml:"score_to_mid"`
	ScoreToFinal   int          `yaml:"score_to_final"`
	InitialSeconds float64      `yaml:"initial_seconds"`
	FinalSeconds   float64      `yaml:"final_seconds"`
	Stages         StagesConfig `yaml:"stages"`
}

// GameConfig defines state machine timing.
type GameConfig struct {
	CountdownSteps   int     `yaml:"countdown_steps"`
	CountdownStepMs  float64 `yaml:"countdown_step_ms"`
	RestartCountdown bool    `yaml:"restart_countdown"` // restart runs the countdown again
}

// AssetConfig holds optional resource paths. Empty means "no asset".
type AssetConfig struct {
	Background    string            `yaml:"background"`
	Player        string            `yaml:"player"`
	Pipe          string            `yaml:"pipe"`
	MenuMusic     string            `yaml:"menu_music"`
	GameMusic     string            `yaml:"game_music"`
	GameOverMusic string            `yaml:"game_over_music"`
	Effects       map[string]string `yaml:"effects"` // start, tick, flap, score, highscore, hit
}

// AudioConfig defines the audio coordinator's initial state.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Muted   bool    `yaml:"muted"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Overrides are host-supplied base values that seed the INITIAL stage.
// Zero fields are ignored.
type Overrides struct {
	Gravity     float64
	FlapImpulse float64
	Speed       float64
	Gap         float64
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Valid reports whether the preset is one of the known names (or empty).
func (p DifficultyPreset) Valid() bool {
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}
