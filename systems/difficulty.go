package systems

import (
	"math"

	"github.com/pthm-cable/flock/config"
)

// Clock is the difficulty clock: seconds of gameplay since the session began.
type Clock struct {
	Elapsed float32
}

// Advance moves the clock forward by dt.
func (c *Clock) Advance(dt float32) { c.Elapsed += dt }

// Reset zeroes the clock.
func (c *Clock) Reset() { c.Elapsed = 0 }

// Curves maps elapsed gameplay time to difficulty parameters.
type Curves struct {
	CapDivisor    float64
	SleepInitial  float64
	SleepHalfTime float64
	SpeedInitial  float64
	SpeedMax      float64
	SpeedHalfTime float64
}

// CurvesFromConfig extracts the difficulty curves.
func CurvesFromConfig(cfg *config.Config) Curves {
	return Curves{
		CapDivisor:    cfg.Wolf.CapDivisor,
		SleepInitial:  cfg.Wolf.SleepInitial,
		SleepHalfTime: cfg.Wolf.SleepHalfTime,
		SpeedInitial:  cfg.Wolf.SpeedInitial,
		SpeedMax:      cfg.Wolf.SpeedMax,
		SpeedHalfTime: cfg.Wolf.SpeedHalfTime,
	}
}

// WolfCap returns 1 + floor(sqrt(elapsed/divisor)).
func (c Curves) WolfCap(elapsed float32) int {
	if elapsed < 0 {
		elapsed = 0
	}
	return 1 + int(math.Floor(math.Sqrt(float64(elapsed)/c.CapDivisor)))
}

// SleepTime is the post-meal think delay. It halves when elapsed reaches the
// half time and keeps shrinking towards zero.
func (c Curves) SleepTime(elapsed float32) float32 {
	return float32(c.SleepInitial / (1 + float64(elapsed)/c.SleepHalfTime))
}

// WolfSpeed rises from the initial speed towards the maximum, covering half
// the gap at the half time.
func (c Curves) WolfSpeed(elapsed float32) float32 {
	gap := c.SpeedMax - c.SpeedInitial
	v := c.SpeedMax - gap*c.SpeedHalfTime/(c.SpeedHalfTime+float64(elapsed))
	return float32(math.Min(math.Max(v, c.SpeedInitial), c.SpeedMax))
}
