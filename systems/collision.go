package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// collisionSlop keeps pairs that sit at the separation distance (up to
// float error) from being pushed again.
const collisionSlop = 1e-3

// CollisionSystem separates overlapping sheep before any AI decision runs.
type CollisionSystem struct {
	flock    *Flock
	posMap   *ecs.Map[components.Position]
	distance float32

	closest []collisionHit
}

type collisionHit struct {
	sep  vmath.Vec2 // away from the closest offender
	dist float32
	set  bool
}

// NewCollisionSystem creates a collision resolver over the shared index.
func NewCollisionSystem(w *ecs.World, flock *Flock, cfg *config.Config) *CollisionSystem {
	return &CollisionSystem{
		flock:    flock,
		posMap:   ecs.NewMap[components.Position](w),
		distance: float32(cfg.Sheep.CollisionDistance),
	}
}

// Update runs one resolution pass and returns the number of sheep moved.
func (s *CollisionSystem) Update() int {
	s.flock.Rebuild()
	grid := s.flock.Grid()
	n := grid.Len()

	if cap(s.closest) < n {
		s.closest = make([]collisionHit, n)
	}
	s.closest = s.closest[:n]
	for i := range s.closest {
		s.closest[i] = collisionHit{}
	}

	limit := s.distance - collisionSlop
	limitSq := limit * limit
	grid.ForEachPair(s.distance, func(i, j int, d vmath.Vec2, distSq float32) {
		if distSq >= limitSq {
			return
		}
		dist := d.Len()
		// d points from j to i.
		s.record(i, d, dist)
		s.record(j, d.Neg(), dist)
	})

	moved := 0
	for i := range s.closest {
		hit := s.closest[i]
		if !hit.set {
			continue
		}
		// Both members of a mutually closest pair move half the overlap,
		// which leaves them exactly at the separation distance.
		push := hit.sep.Normalize().Scale((s.distance - hit.dist) / 2)
		if push.IsZero() {
			continue
		}
		pos := s.posMap.Get(grid.Point(i).E)
		pos.Vec2 = pos.Vec2.Add(push)
		moved++
	}
	return moved
}

func (s *CollisionSystem) record(i int, sep vmath.Vec2, dist float32) {
	hit := &s.closest[i]
	if hit.set && dist >= hit.dist {
		return
	}
	hit.sep = sep
	hit.dist = dist
	hit.set = true
}
