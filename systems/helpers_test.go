package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

const eps = 1e-3

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func nearVec(a, b vmath.Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

// fixture bundles a world with the mappers the tests poke at.
type fixture struct {
	world  *ecs.World
	cfg    *config.Config
	rng    *rand.Rand
	flock  *Flock
	tally  *Tally
	pos    *ecs.Map[components.Position]
	minds  *ecs.Map[components.SheepMind]
	bleats *ecs.Map[components.RecentBleat]
	wolves *ecs.Map[components.WolfMind]
	humans *ecs.Map[components.Human]
	sheep  *ecs.Map2[components.Position, components.Sheep]
}

func newFixture(mutate func(cfg *config.Config)) *fixture {
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
		cfg.Recompute()
	}
	w := ecs.NewWorld()
	area := cfg.Derived.Bounds.Inset(-float32(cfg.Sheep.WrapMargin))
	return &fixture{
		world:  w,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		flock:  NewFlock(w, area, cfg.Derived.CellSize),
		tally:  &Tally{},
		pos:    ecs.NewMap[components.Position](w),
		minds:  ecs.NewMap[components.SheepMind](w),
		bleats: ecs.NewMap[components.RecentBleat](w),
		wolves: ecs.NewMap[components.WolfMind](w),
		humans: ecs.NewMap[components.Human](w),
		sheep:  ecs.NewMap2[components.Position, components.Sheep](w),
	}
}

// bareSheep creates a sheep with only a position.
func (f *fixture) bareSheep(x, y float32) ecs.Entity {
	p := components.At(x, y)
	return f.sheep.NewEntity(&p, &components.Sheep{})
}

// flockSheep creates a sheep with a mind and bleat cooldowns.
func (f *fixture) flockSheep(x, y float32) ecs.Entity {
	e := f.bareSheep(x, y)
	mind := components.SheepMind{Cycle: components.NewTimer(0.5, components.Repeating)}
	f.minds.Add(e, &mind)
	rb := components.NewRecentBleat()
	f.bleats.Add(e, &rb)
	return e
}

func (f *fixture) wolf(x, y float32) ecs.Entity {
	m := ecs.NewMap3[components.Position, components.Wolf, components.WolfMind](f.world)
	p := components.At(x, y)
	mind := components.WolfMind{ThinkTimer: components.NewTimer(float32(f.cfg.Wolf.HungryInterval), components.Once)}
	return m.NewEntity(&p, &components.Wolf{}, &mind)
}

func (f *fixture) allSheep() []ecs.Entity {
	var out []ecs.Entity
	query := ecs.NewFilter1[components.Sheep](f.world).Query()
	for query.Next() {
		out = append(out, query.Entity())
	}
	return out
}

func (f *fixture) at(e ecs.Entity) vmath.Vec2 {
	return f.pos.Get(e).Vec2
}

// recordingEffects captures effect requests.
type recordingEffects struct {
	bleats []ecs.Entity
	human  int
	eats   int
	bursts int
}

func (r *recordingEffects) Bleat(e ecs.Entity, _ vmath.Vec2, human bool) {
	r.bleats = append(r.bleats, e)
	if human {
		r.human++
	}
}
func (r *recordingEffects) Eat(vmath.Vec2)   { r.eats++ }
func (r *recordingEffects) Burst(vmath.Vec2) { r.bursts++ }
