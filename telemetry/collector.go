// Package telemetry provides windowed flock statistics, performance timing
// and CSV output.
package telemetry

import (
	"math"

	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/vmath"
)

// Census is the state sampled at the end of a window.
type Census struct {
	Sheep     int
	Walkers   int
	Wolves    int
	WolfCap   int
	Cabbages  int
	WolfSpeed float32
	SleepTime float32
	Fed       int

	// Positions of flocking sheep, for spread statistics.
	Positions []vmath.Vec2
}

// Collector turns the simulation's event tally into WindowStats at fixed
// intervals.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32
	tally           *systems.Tally
}

// NewCollector creates a new stats collector reading from tally.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32, tally *systems.Tally) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		tally:               tally,
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Pending reports whether ticks have passed since the last flush.
func (c *Collector) Pending(currentTick int32) bool {
	return currentTick > c.windowStartTick
}

// Flush produces a WindowStats and resets the tally for the next window.
func (c *Collector) Flush(currentTick int32, census Census) WindowStats {
	t := c.tally
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Sheep:    census.Sheep,
		Walkers:  census.Walkers,
		Wolves:   census.Wolves,
		WolfCap:  census.WolfCap,
		Cabbages: census.Cabbages,

		WolfSpeed: float64(census.WolfSpeed),
		SleepTime: float64(census.SleepTime),

		BleatsSpontaneous: t.Bleats[systems.BleatSpontaneous],
		BleatsPlayer:      t.Bleats[systems.BleatPlayer],
		BleatsContagion:   t.Bleats[systems.BleatContagion],
		SheepEaten:        t.SheepEaten,
		WolvesSpawned:     t.WolvesSpawned,
		SheepRespawned:    t.SheepRespawned,
		WalkersPromoted:   t.WalkersPromoted,
		CabbagesSpawned:   t.CabbagesSpawned,
		CabbagesEaten:     t.CabbagesEaten,
		EgoJumps:          t.EgoJumps,
		MindDefects:       t.MindDefects,
		EmptyPool:         t.EmptyPool,

		Fed: census.Fed,
	}
	spread := ComputeSpread(census.Positions)
	stats.SpreadMean = spread.Mean
	stats.SpreadStd = spread.Std
	stats.SpreadP50 = spread.P50
	stats.SpreadP90 = spread.P90

	c.windowStartTick = currentTick
	t.Reset()

	return stats
}

// Restart begins a fresh window at tick zero, discarding pending counts.
func (c *Collector) Restart() {
	c.windowStartTick = 0
	c.tally.Reset()
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
