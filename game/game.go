// Package game runs flock sessions: it owns the ECS world, steps every
// system in order and reports the end of a session.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/effects"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/vmath"
)

// SessionState is the lifecycle state of a session.
type SessionState uint8

const (
	Playing SessionState = iota
	GameOver
)

func (s SessionState) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "playing"
}

// Result summarizes a finished session.
type Result struct {
	Session    uuid.UUID
	Seed       int64
	Fed        int
	Survived   float32 // seconds on the difficulty clock
	SheepEaten int
	PeakWolves int
	Ticks      int32
	EndedAt    time.Time
}

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	OutputDir      string

	// OnGameOver is called once when the human sheep is eaten.
	OnGameOver func(Result)
	// StatsCallback receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	cfg   *config.Config
	rng   *rand.Rand
	seed  int64

	factory *systems.Factory
	flock   *systems.Flock
	tally   *systems.Tally
	curves  systems.Curves

	collision *systems.CollisionSystem
	mind      *systems.MindSystem
	movement  *systems.MovementSystem
	bleat     *systems.BleatSystem
	wolves    *systems.WolfSystem
	director  *systems.DirectorSystem
	ego       *systems.EgoSystem
	cabbage   *systems.CabbageSystem
	board     *effects.Board

	// View lookups
	all       *ecs.Filter1[components.Position]
	flockers  *ecs.Filter1[components.Position]
	walkerSet *ecs.Filter1[components.EdgeWalker]
	sheepMap  *ecs.Map[components.Sheep]
	mindMap   *ecs.Map[components.SheepMind]
	walkerMap *ecs.Map[components.EdgeWalker]
	wolfMap   *ecs.Map[components.WolfMind]
	humanMap  *ecs.Map[components.Human]
	bleatMap  *ecs.Map[components.RecentBleat]
	posMap    *ecs.Map[components.Position]

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Session
	state      SessionState
	session    uuid.UUID
	tick       int32
	sheepEaten int
	peakWolves int
	intent     vmath.Vec2
	facingLeft bool
	onGameOver func(Result)

	removed []ecs.Entity
}

// NewGame creates a game and starts its first session.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	w := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	tally := &systems.Tally{}
	board := effects.NewBoard(w, cfg, rng)
	flock := systems.NewFlock(w, cfg.Derived.Bounds.Inset(-float32(cfg.Sheep.WrapMargin)), cfg.Derived.CellSize)
	factory := systems.NewFactory(w)

	mind := systems.NewMindSystem(w, flock, cfg, rng, tally)
	wolves := systems.NewWolfSystem(w, cfg, board, tally)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		world:   w,
		cfg:     cfg,
		rng:     rng,
		seed:    opts.Seed,
		factory: factory,
		flock:   flock,
		tally:   tally,
		curves:  systems.CurvesFromConfig(cfg),

		collision: systems.NewCollisionSystem(w, flock, cfg),
		mind:      mind,
		movement:  systems.NewMovementSystem(w, cfg),
		bleat:     systems.NewBleatSystem(w, flock, cfg, rng, board, tally),
		wolves:    wolves,
		director:  systems.NewDirectorSystem(w, cfg, rng, factory, mind, wolves, tally),
		ego:       systems.NewEgoSystem(w, cfg, rng, board, tally),
		cabbage:   systems.NewCabbageSystem(w, cfg, rng, factory, board, tally),
		board:     board,

		all:       ecs.NewFilter1[components.Position](w),
		flockers:  ecs.NewFilter1[components.Position](w).With(ecs.C[components.SheepMind]()),
		walkerSet: ecs.NewFilter1[components.EdgeWalker](w),
		sheepMap:  ecs.NewMap[components.Sheep](w),
		mindMap:   ecs.NewMap[components.SheepMind](w),
		walkerMap: ecs.NewMap[components.EdgeWalker](w),
		wolfMap:   ecs.NewMap[components.WolfMind](w),
		humanMap:  ecs.NewMap[components.Human](w),
		bleatMap:  ecs.NewMap[components.RecentBleat](w),
		posMap:    ecs.NewMap[components.Position](w),

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32, tally),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, time.Duration(cfg.Physics.DT*float64(time.Second))),
		output:        output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		onGameOver:    opts.OnGameOver,
	}

	g.Reset()
	return g, nil
}

// Step advances the session by one fixed tick. It does nothing once the
// session is over.
func (g *Game) Step(in Input) {
	if g.state != Playing {
		return
	}
	dt := g.cfg.Derived.DT32
	g.tick++
	g.intent = in.Intent
	if in.Intent.X != 0 {
		g.facingLeft = in.Intent.X < 0
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseCollision)
	g.collision.Update()

	g.perf.StartPhase(telemetry.PhaseMind)
	g.mind.Update(dt)

	g.perf.StartPhase(telemetry.PhaseMovement)
	g.movement.Update(dt, in.Intent)
	g.director.MoveWalkers(dt)

	g.perf.StartPhase(telemetry.PhaseBleat)
	g.bleat.Update(dt, in.Bleat)

	g.perf.StartPhase(telemetry.PhaseWolf)
	humanEaten := false
	for _, meal := range g.wolves.Update(dt, g.director.Clock.Elapsed) {
		g.sheepEaten++
		if meal.Human {
			humanEaten = true
		}
	}

	g.perf.StartPhase(telemetry.PhaseDirector)
	g.director.Update(dt)
	if n := g.director.WolfCount(); n > g.peakWolves {
		g.peakWolves = n
	}

	if humanEaten {
		g.perf.EndTick()
		g.finish()
		return
	}

	g.perf.StartPhase(telemetry.PhaseEgo)
	g.ego.Update(dt)

	g.perf.StartPhase(telemetry.PhaseCabbage)
	g.cabbage.Update(dt)

	g.perf.StartPhase(telemetry.PhaseEffects)
	g.board.Update(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

// finish ends the session and reports its result. The open telemetry
// window, which holds the fatal meal, is flushed before Reset can drop it.
func (g *Game) finish() {
	g.state = GameOver
	g.flushPartial()
	res := g.Result()
	slog.Info("game over",
		"session", res.Session,
		"fed", res.Fed,
		"survived", res.Survived,
		"sheep_eaten", res.SheepEaten,
		"peak_wolves", res.PeakWolves,
	)
	if g.onGameOver != nil {
		g.onGameOver(res)
	}
}

// Result reports the current session's outcome so far.
func (g *Game) Result() Result {
	return Result{
		Session:    g.session,
		Seed:       g.seed,
		Fed:        g.cabbage.Score.Fed,
		Survived:   g.director.Clock.Elapsed,
		SheepEaten: g.sheepEaten,
		PeakWolves: g.peakWolves,
		Ticks:      g.tick,
		EndedAt:    time.Now(),
	}
}

// State returns the session state.
func (g *Game) State() SessionState { return g.state }

// Tick returns the number of ticks stepped this session.
func (g *Game) Tick() int32 { return g.tick }

// Config returns the game's configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Effects returns the effect board for presentation.
func (g *Game) Effects() *effects.Board { return g.board }

// Perf returns the per-phase timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Close flushes and closes run output.
func (g *Game) Close() error {
	return g.output.Close()
}
