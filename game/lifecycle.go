package game

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/pthm-cable/flock/vmath"
)

// Reset starts a new session: every entity is removed, the flock is seeded
// on a ring around the origin, a human is assigned and every clock, score
// and spawner starts over.
func (g *Game) Reset() {
	g.clearWorld()
	g.seedFlock()

	g.director.Reset()
	g.cabbage.Reset()
	g.bleat.Reset()
	g.board.Clear()
	g.collector.Restart()
	if !g.ego.Reset() {
		slog.Warn("session started without a human sheep")
	}

	g.state = Playing
	g.session = uuid.New()
	g.tick = 0
	g.sheepEaten = 0
	g.peakWolves = 0
	g.intent = vmath.Vec2{}
	g.facingLeft = false

	slog.Info("session started", "session", g.session, "sheep", g.cfg.Sheep.InitialCount)
}

// clearWorld removes every entity.
func (g *Game) clearWorld() {
	g.removed = g.removed[:0]
	query := g.all.Query()
	for query.Next() {
		g.removed = append(g.removed, query.Entity())
	}
	for _, e := range g.removed {
		g.world.RemoveEntity(e)
	}
}

// seedFlock places the initial sheep. Distances follow radius*(1-u^2), which
// packs sheep toward the rim of the ring.
func (g *Game) seedFlock() {
	radius := float32(g.cfg.Sheep.SpawnRadius)
	for i := 0; i < g.cfg.Sheep.InitialCount; i++ {
		angle := g.rng.Float64() * 2 * math.Pi
		u := g.rng.Float32()
		at := vmath.FromAngle(angle).Scale(radius * (1 - u*u))
		g.factory.Sheep(at, g.mind.NewMind())
	}
}
