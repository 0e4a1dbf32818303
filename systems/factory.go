package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/vmath"
)

// Factory creates the entity archetypes of the simulation.
type Factory struct {
	flockers *ecs.Map4[components.Position, components.Sheep, components.SheepMind, components.RecentBleat]
	walkers  *ecs.Map4[components.Position, components.Sheep, components.EdgeWalker, components.RecentBleat]
	wolves   *ecs.Map3[components.Position, components.Wolf, components.WolfMind]
	cabbages *ecs.Map2[components.Position, components.Cabbage]
}

// NewFactory creates a factory bound to w.
func NewFactory(w *ecs.World) *Factory {
	return &Factory{
		flockers: ecs.NewMap4[components.Position, components.Sheep, components.SheepMind, components.RecentBleat](w),
		walkers:  ecs.NewMap4[components.Position, components.Sheep, components.EdgeWalker, components.RecentBleat](w),
		wolves:   ecs.NewMap3[components.Position, components.Wolf, components.WolfMind](w),
		cabbages: ecs.NewMap2[components.Position, components.Cabbage](w),
	}
}

// Sheep creates a flocking sheep.
func (f *Factory) Sheep(at vmath.Vec2, mind components.SheepMind) ecs.Entity {
	pos := components.Position{Vec2: at}
	rb := components.NewRecentBleat()
	return f.flockers.NewEntity(&pos, &components.Sheep{}, &mind, &rb)
}

// Walker creates a respawned sheep walking in along dir.
func (f *Factory) Walker(at, dir vmath.Vec2) ecs.Entity {
	pos := components.Position{Vec2: at}
	walker := components.EdgeWalker{Dir: dir}
	rb := components.NewRecentBleat()
	return f.walkers.NewEntity(&pos, &components.Sheep{}, &walker, &rb)
}

// Wolf creates a predator.
func (f *Factory) Wolf(at vmath.Vec2, mind components.WolfMind) ecs.Entity {
	pos := components.Position{Vec2: at}
	return f.wolves.NewEntity(&pos, &components.Wolf{}, &mind)
}

// Cabbage creates a food item.
func (f *Factory) Cabbage(at vmath.Vec2) ecs.Entity {
	pos := components.Position{Vec2: at}
	return f.cabbages.NewEntity(&pos, &components.Cabbage{})
}
