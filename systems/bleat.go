package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// BleatSystem runs the two-cooldown contagion process.
type BleatSystem struct {
	flock   *Flock
	filter  *ecs.Filter2[components.Position, components.RecentBleat]
	humanF  *ecs.Filter2[components.Position, components.RecentBleat]
	bleats  *ecs.Map[components.RecentBleat]
	posMap  *ecs.Map[components.Position]
	humans  *ecs.Map[components.Human]
	rng     *rand.Rand
	effects Effects
	tally   *Tally

	spontaneousTick components.Timer
	rangeR          float32
	spontaneous     float64
	spread          float64
	humanCooldown   float32
	aiCooldown      float32
	spreadWindow    float32

	bleaters []ecs.Entity
	social   []*components.RecentBleat
}

// NewBleatSystem creates the bleat propagator.
func NewBleatSystem(w *ecs.World, flock *Flock, cfg *config.Config, rng *rand.Rand, effects Effects, tally *Tally) *BleatSystem {
	return &BleatSystem{
		flock:  flock,
		filter: ecs.NewFilter2[components.Position, components.RecentBleat](w),
		humanF: ecs.NewFilter2[components.Position, components.RecentBleat](w).
			With(ecs.C[components.Human]()),
		bleats:          ecs.NewMap[components.RecentBleat](w),
		posMap:          ecs.NewMap[components.Position](w),
		humans:          ecs.NewMap[components.Human](w),
		rng:             rng,
		effects:         effects,
		tally:           tally,
		spontaneousTick: components.NewTimer(float32(cfg.Bleat.TickInterval), components.Repeating),
		rangeR:          float32(cfg.Sheep.Range),
		spontaneous:     cfg.Bleat.SpontaneousChance,
		spread:          cfg.Bleat.SpreadChance,
		humanCooldown:   float32(cfg.Bleat.HumanCooldown),
		aiCooldown:      float32(cfg.Bleat.AICooldown),
		spreadWindow:    float32(cfg.Bleat.SpreadWindow),
	}
}

// Reset rearms the spontaneous tick.
func (s *BleatSystem) Reset() {
	s.spontaneousTick.Reset()
}

// Update ticks every cooldown, then applies the player trigger, the
// spontaneous roll and contagion, in that order.
func (s *BleatSystem) Update(dt float32, playerBleat bool) {
	s.spontaneousTick.Tick(dt)
	roll := s.spontaneousTick.JustFinished()

	s.bleaters = s.bleaters[:0]
	query := s.filter.Query()
	for query.Next() {
		_, rb := query.Get()
		rb.BleatCooldown.Tick(dt)
		rb.SpreadCooldown.Tick(dt)
		if !roll || !rb.BleatCooldown.Finished() {
			continue
		}
		e := query.Entity()
		if s.humans.Has(e) {
			continue
		}
		if s.rng.Float64() < s.spontaneous {
			s.bleaters = append(s.bleaters, e)
		}
	}

	if playerBleat {
		s.playerBleat()
	}
	for _, e := range s.bleaters {
		s.bleat(e, s.bleats.Get(e), BleatSpontaneous)
	}

	s.contagion()
}

func (s *BleatSystem) playerBleat() {
	query := s.humanF.Query()
	var host ecs.Entity
	found := false
	for query.Next() {
		_, rb := query.Get()
		if rb.BleatCooldown.Finished() {
			host = query.Entity()
			found = true
		}
	}
	if found {
		s.bleat(host, s.bleats.Get(host), BleatPlayer)
	}
}

// contagion lets a sheep whose spread cooldown just finished infect one
// in-range neighbor per pair.
func (s *BleatSystem) contagion() {
	s.flock.Rebuild()
	grid := s.flock.Grid()
	n := grid.Len()

	if cap(s.social) < n {
		s.social = make([]*components.RecentBleat, n)
	}
	social := s.social[:n]
	anySpreading := false
	for i := 0; i < n; i++ {
		social[i] = nil
		e := grid.Point(i).E
		if !s.bleats.Has(e) {
			continue
		}
		rb := s.bleats.Get(e)
		social[i] = rb
		if rb.SpreadCooldown.JustFinished() {
			anySpreading = true
		}
	}
	if !anySpreading {
		return
	}

	grid.ForEachPair(s.rangeR, func(i, j int, _ vmath.Vec2, _ float32) {
		a, b := social[i], social[j]
		if a == nil || b == nil {
			return
		}
		switch {
		case a.SpreadCooldown.JustFinished() && b.BleatCooldown.Finished():
			if s.rng.Float64() < s.spread {
				s.bleat(grid.Point(j).E, b, BleatContagion)
			}
		case b.SpreadCooldown.JustFinished() && a.BleatCooldown.Finished():
			if s.rng.Float64() < s.spread {
				s.bleat(grid.Point(i).E, a, BleatContagion)
			}
		}
	})
}

// bleat resets both cooldowns and requests the effect.
func (s *BleatSystem) bleat(e ecs.Entity, rb *components.RecentBleat, cause BleatCause) {
	human := s.humans.Has(e)
	cooldown := s.aiCooldown
	if cause == BleatPlayer {
		cooldown = s.humanCooldown
	}
	rb.BleatCooldown = components.NewTimer(cooldown, components.Once)
	rb.SpreadCooldown = components.NewTimer(s.spreadWindow, components.Once)

	s.tally.Bleats[cause]++
	s.effects.Bleat(e, s.posMap.Get(e).Vec2, human)
}
