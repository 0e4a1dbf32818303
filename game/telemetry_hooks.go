package game

import (
	"log/slog"

	"github.com/pthm-cable/flock/telemetry"
)

// flushTelemetry emits a stats window when one is due.
func (g *Game) flushTelemetry() {
	if g.collector.ShouldFlush(g.tick) {
		g.flushWindow()
	}
}

// flushPartial emits whatever the open window has counted so far.
func (g *Game) flushPartial() {
	if g.collector.Pending(g.tick) {
		g.flushWindow()
	}
}

func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.tick, g.census())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// census samples the population for a stats window.
func (g *Game) census() telemetry.Census {
	elapsed := g.director.Clock.Elapsed
	c := telemetry.Census{
		Sheep:     g.director.SheepCount(),
		Wolves:    g.director.WolfCount(),
		WolfCap:   g.director.WolfCap(),
		Cabbages:  g.cabbage.Count(),
		WolfSpeed: g.curves.WolfSpeed(elapsed),
		SleepTime: g.curves.SleepTime(elapsed),
		Fed:       g.cabbage.Score.Fed,
	}

	wq := g.walkerSet.Query()
	for wq.Next() {
		c.Walkers++
	}

	fq := g.flockers.Query()
	for fq.Next() {
		c.Positions = append(c.Positions, fq.Get().Vec2)
	}
	return c
}
