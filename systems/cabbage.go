package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// Score counts cabbages fed to the human sheep during a session.
type Score struct {
	Fed int
}

// CabbageSystem spawns cabbages and feeds the human sheep when it reaches one.
type CabbageSystem struct {
	Score Score

	world    *ecs.World
	factory  *Factory
	cabbages *ecs.Filter1[components.Position]
	humans   *ecs.Filter1[components.Position]
	rng      *rand.Rand
	effects  Effects
	tally    *Tally

	spawn    components.Timer
	chance   float64
	max      int
	area     vmath.Rect
	eatRange float32

	eaten []ecs.Entity
}

// NewCabbageSystem creates the cabbage spawner and feeding rule.
func NewCabbageSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand, factory *Factory, effects Effects, tally *Tally) *CabbageSystem {
	return &CabbageSystem{
		world:    w,
		factory:  factory,
		cabbages: ecs.NewFilter1[components.Position](w).With(ecs.C[components.Cabbage]()),
		humans:   ecs.NewFilter1[components.Position](w).With(ecs.C[components.Human]()),
		rng:      rng,
		effects:  effects,
		tally:    tally,
		spawn:    components.NewTimer(float32(cfg.Cabbage.Interval), components.Repeating),
		chance:   cfg.Cabbage.Chance,
		max:      cfg.Cabbage.Max,
		area:     cfg.Derived.Bounds.Inset(float32(cfg.Cabbage.Padding)),
		eatRange: float32(cfg.Cabbage.EatRange),
	}
}

// Reset zeroes the score and rearms the spawner.
func (s *CabbageSystem) Reset() {
	s.Score = Score{}
	s.spawn.Reset()
}

// Update feeds the human sheep, then runs the spawner. It returns the number
// of cabbages eaten this tick.
func (s *CabbageSystem) Update(dt float32) int {
	fed := s.feed()

	s.spawn.Tick(dt)
	if s.spawn.JustFinished() && s.Count() < s.max && s.rng.Float64() < s.chance {
		at := vmath.V(
			s.area.Min.X+s.rng.Float32()*s.area.Width(),
			s.area.Min.Y+s.rng.Float32()*s.area.Height(),
		)
		s.factory.Cabbage(at)
		s.tally.CabbagesSpawned++
	}
	return fed
}

func (s *CabbageSystem) feed() int {
	var host vmath.Vec2
	found := false
	hq := s.humans.Query()
	for hq.Next() {
		host = hq.Get().Vec2
		found = true
	}
	if !found {
		return 0
	}

	s.eaten = s.eaten[:0]
	rangeSq := s.eatRange * s.eatRange
	cq := s.cabbages.Query()
	for cq.Next() {
		if cq.Get().DistSq(host) <= rangeSq {
			s.eaten = append(s.eaten, cq.Entity())
		}
	}

	for _, e := range s.eaten {
		s.world.RemoveEntity(e)
		s.Score.Fed++
		s.tally.CabbagesEaten++
		s.effects.Eat(host)
	}
	return len(s.eaten)
}

// Count returns the number of cabbages on the field.
func (s *CabbageSystem) Count() int {
	n := 0
	query := s.cabbages.Query()
	for query.Next() {
		n++
	}
	return n
}
