package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
)

// EgoSystem decides which sheep the player controls and periodically moves
// control to another flocking sheep.
type EgoSystem struct {
	humans   *ecs.Filter1[components.Human]
	flockers *ecs.Filter1[components.SheepMind]
	humanMap *ecs.Map[components.Human]
	posMap   *ecs.Map[components.Position]
	rng      *rand.Rand
	effects  Effects
	tally    *Tally

	enabled bool
	jumpMin float32
	jumpMax float32
	jump    components.Timer

	pool    []ecs.Entity
	current []ecs.Entity
}

// NewEgoSystem creates the control assignment system.
func NewEgoSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand, effects Effects, tally *Tally) *EgoSystem {
	s := &EgoSystem{
		humans:   ecs.NewFilter1[components.Human](w),
		flockers: ecs.NewFilter1[components.SheepMind](w),
		humanMap: ecs.NewMap[components.Human](w),
		posMap:   ecs.NewMap[components.Position](w),
		rng:      rng,
		effects:  effects,
		tally:    tally,
		enabled:  cfg.Human.JumpEnabled,
		jumpMin:  float32(cfg.Human.JumpMin),
		jumpMax:  float32(cfg.Human.JumpMax),
	}
	s.jump = components.NewTimer(s.sampleJump(), components.Once)
	return s
}

func (s *EgoSystem) sampleJump() float32 {
	return s.jumpMin + s.rng.Float32()*(s.jumpMax-s.jumpMin)
}

// Human returns the player-controlled sheep, if any.
func (s *EgoSystem) Human() (ecs.Entity, bool) {
	query := s.humans.Query()
	for query.Next() {
		e := query.Entity()
		query.Close()
		return e, true
	}
	return ecs.Entity{}, false
}

// Reset hands control to a random flocking sheep and rearms the jump timer.
func (s *EgoSystem) Reset() bool {
	s.jump.Restart(s.sampleJump())
	return s.Assign()
}

// Assign moves the human marker to a random flocking sheep other than the
// current host. It reports false when no sheep is available.
func (s *EgoSystem) Assign() bool {
	s.current = s.current[:0]
	hq := s.humans.Query()
	for hq.Next() {
		s.current = append(s.current, hq.Entity())
	}

	s.pool = s.pool[:0]
	fq := s.flockers.Query()
	for fq.Next() {
		e := fq.Entity()
		if len(s.current) == 1 && e == s.current[0] {
			continue
		}
		s.pool = append(s.pool, e)
	}
	if len(s.pool) == 0 && len(s.current) == 1 {
		// The host is the only flocking sheep left.
		return true
	}
	if len(s.pool) == 0 {
		slog.Warn("no sheep available for human control")
		s.tally.EmptyPool++
		return false
	}

	for _, old := range s.current {
		s.effects.Burst(s.posMap.Get(old).Vec2)
		s.humanMap.Remove(old)
	}
	next := s.pool[s.rng.Intn(len(s.pool))]
	s.humanMap.Add(next, &components.Human{})
	return true
}

// Update jumps control when the timer elapses.
func (s *EgoSystem) Update(dt float32) {
	if !s.enabled {
		return
	}
	s.jump.Tick(dt)
	if !s.jump.JustFinished() {
		return
	}
	s.jump.Restart(s.sampleJump())
	if s.Assign() {
		s.tally.EgoJumps++
	}
}
