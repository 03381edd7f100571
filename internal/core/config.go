package core

// RuntimeConfig describes the host surface the engine is running on.
// Frontends fill it in from the terminal, SSH PTY or window size.
type RuntimeConfig struct {
	ScreenW  int   // Surface width in cells (terminal) or pixels (window)
	ScreenH  int   // Surface height in cells or pixels
	TickRate int   // Frames per second driving the frame scheduler
	Seed     int64 // RNG seed for obstacle placement; 0 = time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// FrameMs returns the nominal frame duration in milliseconds.
func (c RuntimeConfig) FrameMs() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60.0
	}
	return 1000.0 / float64(c.TickRate)
}
