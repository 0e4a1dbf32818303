// Package components defines ECS components for the simulation.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/vmath"
)

// Position represents an entity's world position.
type Position struct {
	vmath.Vec2
}

// At returns a Position at (x, y).
func At(x, y float32) Position {
	return Position{vmath.Vec2{X: x, Y: y}}
}

// Sheep tags every flock member, walkers included.
type Sheep struct{}

// Wolf tags predators.
type Wolf struct{}

// Cabbage tags food items.
type Cabbage struct{}

// Human marks the single sheep driven by player intent.
type Human struct{}

// EdgeWalker is carried by respawned sheep until they are back in bounds.
type EdgeWalker struct {
	Dir vmath.Vec2 // unit inward direction
}

// RecentBleat holds the two independent contagion cooldowns.
type RecentBleat struct {
	BleatCooldown  Timer // blocks re-bleating
	SpreadCooldown Timer // finishing triggers one spread attempt
}

// NewRecentBleat returns cooldowns that allow an immediate bleat and
// do not trigger a spread.
func NewRecentBleat() RecentBleat {
	return RecentBleat{
		BleatCooldown:  FinishedTimer(0),
		SpreadCooldown: FinishedTimer(0),
	}
}

// WolfMind is the predator state. Prey is a generation-tagged handle that
// must be checked with World.Alive before every use.
type WolfMind struct {
	Prey       ecs.Entity
	HasPrey    bool
	ThinkTimer Timer
}

// SetPrey records a new target.
func (w *WolfMind) SetPrey(e ecs.Entity) {
	w.Prey = e
	w.HasPrey = true
}

// ClearPrey forgets the current target.
func (w *WolfMind) ClearPrey() {
	w.Prey = ecs.Entity{}
	w.HasPrey = false
}
