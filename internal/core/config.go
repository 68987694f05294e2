package core

import "time"

// RuntimeConfig contains the frontend settings a farm session starts with.
type RuntimeConfig struct {
	ScreenW    int // Screen width in characters
	ScreenH    int // Screen height in characters
	TickRate   int // Simulation ticks per second (default 60)
	MaxCatchUp int // Most ticks the loop runs for one wake-up
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		MaxCatchUp: 5,
	}
}

// TickInterval returns the wall-clock duration of one simulation tick.
// Non-positive tick rates fall back to 60 TPS.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
