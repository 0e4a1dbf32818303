package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// MovementSystem integrates positions: eased walking for AI sheep, intent
// for the human sheep, and the wrap band for every flocking sheep.
type MovementSystem struct {
	walkers *ecs.Filter2[components.Position, components.SheepMind]
	humans  *ecs.Filter2[components.Position, components.SheepMind]

	humanSpeed float32
	wrapArea   vmath.Rect
}

// NewMovementSystem creates the movement integrator.
func NewMovementSystem(w *ecs.World, cfg *config.Config) *MovementSystem {
	return &MovementSystem{
		walkers: ecs.NewFilter2[components.Position, components.SheepMind](w).
			Without(ecs.C[components.Human]()),
		humans: ecs.NewFilter2[components.Position, components.SheepMind](w).
			With(ecs.C[components.Human]()),
		humanSpeed: float32(cfg.Human.Speed),
		wrapArea:   cfg.Derived.Bounds.Inset(-float32(cfg.Sheep.WrapMargin)),
	}
}

// Update moves every flocking sheep by one tick. intent is the player's
// direction and is applied to the human sheep only.
func (s *MovementSystem) Update(dt float32, intent vmath.Vec2) {
	query := s.walkers.Query()
	for query.Next() {
		pos, mind := query.Get()
		if mind.State == components.Moving {
			pos.Vec2 = pos.Vec2.Add(Walk(mind, dt))
		}
		pos.Vec2 = s.wrapArea.Wrap(pos.Vec2)
	}

	// Intent is expected to be normalized; longer vectors are capped.
	step := intent.Limit(1).Scale(s.humanSpeed * dt)
	hq := s.humans.Query()
	for hq.Next() {
		pos, _ := hq.Get()
		pos.Vec2 = s.wrapArea.Wrap(pos.Vec2.Add(step))
	}
}

// Walk returns the displacement of a Moving mind over dt, eased by the
// progress through its cycle.
func Walk(mind *components.SheepMind, dt float32) vmath.Vec2 {
	applied := mind.Speed * SpeedFromTime(mind.Cycle.Fraction())
	return mind.Goal.Normalize().Scale(applied * dt)
}
