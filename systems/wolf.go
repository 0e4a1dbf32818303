package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// Meal describes a sheep eaten during a tick.
type Meal struct {
	Wolf  ecs.Entity
	Sheep ecs.Entity
	Human bool
}

// WolfSystem runs target selection, eating and pursuit for every wolf.
type WolfSystem struct {
	world   *ecs.World
	filter  *ecs.Filter2[components.Position, components.WolfMind]
	posMap  *ecs.Map[components.Position]
	minds   *ecs.Map[components.WolfMind]
	humans  *ecs.Map[components.Human]
	prey    *PreyIndex
	effects Effects
	tally   *Tally

	curves         Curves
	eatRange       float32
	hungryInterval float32

	wolves []ecs.Entity
	meals  []Meal
}

// NewWolfSystem creates the predator controller.
func NewWolfSystem(w *ecs.World, cfg *config.Config, effects Effects, tally *Tally) *WolfSystem {
	return &WolfSystem{
		world:          w,
		filter:         ecs.NewFilter2[components.Position, components.WolfMind](w),
		posMap:         ecs.NewMap[components.Position](w),
		minds:          ecs.NewMap[components.WolfMind](w),
		humans:         ecs.NewMap[components.Human](w),
		prey:           NewPreyIndex(w),
		effects:        effects,
		tally:          tally,
		curves:         CurvesFromConfig(cfg),
		eatRange:       float32(cfg.Wolf.EatRange),
		hungryInterval: float32(cfg.Wolf.HungryInterval),
	}
}

// NewMind returns the state of a freshly spawned, hungry wolf.
func (s *WolfSystem) NewMind() components.WolfMind {
	return components.WolfMind{ThinkTimer: components.NewTimer(s.hungryInterval, components.Once)}
}

// Update advances every wolf by one tick at the given difficulty time and
// returns the sheep eaten. The returned slice is reused on the next call.
func (s *WolfSystem) Update(dt, elapsed float32) []Meal {
	s.meals = s.meals[:0]
	s.prey.Invalidate()

	// Snapshot wolves so sheep can be removed between wolves.
	s.wolves = s.wolves[:0]
	query := s.filter.Query()
	for query.Next() {
		s.wolves = append(s.wolves, query.Entity())
	}

	speed := s.curves.WolfSpeed(elapsed)
	for _, w := range s.wolves {
		s.step(w, dt, elapsed, speed)
	}
	return s.meals
}

func (s *WolfSystem) step(w ecs.Entity, dt, elapsed, speed float32) {
	pos := s.posMap.Get(w)
	mind := s.minds.Get(w)
	mind.ThinkTimer.Tick(dt)

	// Stale targets are cleared, not treated as faults.
	if mind.HasPrey && !s.world.Alive(mind.Prey) {
		mind.ClearPrey()
	}

	if mind.HasPrey {
		preyPos := s.posMap.Get(mind.Prey).Vec2
		if pos.Dist(preyPos) < s.eatRange {
			s.eat(w, mind, preyPos, elapsed)
			return
		}
	}

	if mind.ThinkTimer.JustFinished() {
		s.think(w, pos, mind)
	}

	if mind.HasPrey {
		preyPos := s.posMap.Get(mind.Prey).Vec2
		dir := preyPos.Sub(pos.Vec2).Normalize()
		pos.Vec2 = pos.Vec2.Add(dir.Scale(speed * dt))
	}
}

// think picks the nearest sheep over the whole flock.
func (s *WolfSystem) think(w ecs.Entity, pos *components.Position, mind *components.WolfMind) {
	target, ok := s.prey.Nearest(pos.Vec2)
	if !ok || !s.world.Alive(target) {
		slog.Debug("wolf found no sheep to hunt", "wolf", w.ID())
		s.tally.EmptyPool++
		mind.ClearPrey()
		mind.ThinkTimer.Restart(s.hungryInterval)
		return
	}
	mind.SetPrey(target)
	mind.ThinkTimer.Restart(s.hungryInterval)
}

func (s *WolfSystem) eat(w ecs.Entity, mind *components.WolfMind, at vmath.Vec2, elapsed float32) {
	sheep := mind.Prey
	human := s.humans.Has(sheep)

	s.world.RemoveEntity(sheep)
	s.prey.Invalidate()
	mind.ClearPrey()
	mind.ThinkTimer.Restart(s.curves.SleepTime(elapsed))

	s.tally.SheepEaten++
	s.effects.Eat(at)
	s.effects.Burst(at)
	s.meals = append(s.meals, Meal{Wolf: w, Sheep: sheep, Human: human})
}
