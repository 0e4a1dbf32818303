package systems

import (
	"github.com/dhconnelly/rtreego"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/vmath"
)

// pointTolerance is the half-extent of the box each sheep occupies in the tree.
const pointTolerance = 0.005

// preyPoint is a sheep stored in the prey index.
type preyPoint struct {
	e    ecs.Entity
	pos  vmath.Vec2
	rect rtreego.Rect
}

func (p *preyPoint) Bounds() rtreego.Rect { return p.rect }

// PreyIndex answers nearest-sheep queries over the whole flock. It is rebuilt
// lazily, at most once per tick, the first time a wolf asks.
type PreyIndex struct {
	filter *ecs.Filter1[components.Position]
	tree   *rtreego.Rtree
	points []preyPoint
	stale  bool
}

// NewPreyIndex creates an index over every sheep.
func NewPreyIndex(w *ecs.World) *PreyIndex {
	return &PreyIndex{
		filter: ecs.NewFilter1[components.Position](w).With(ecs.C[components.Sheep]()),
		stale:  true,
	}
}

// Invalidate marks the index for rebuild before the next query.
func (x *PreyIndex) Invalidate() { x.stale = true }

func (x *PreyIndex) rebuild() {
	x.points = x.points[:0]
	query := x.filter.Query()
	for query.Next() {
		pos := query.Get()
		x.points = append(x.points, preyPoint{
			e:    query.Entity(),
			pos:  pos.Vec2,
			rect: rtreego.Point{float64(pos.X), float64(pos.Y)}.ToRect(pointTolerance),
		})
	}

	spatials := make([]rtreego.Spatial, len(x.points))
	for i := range x.points {
		spatials[i] = &x.points[i]
	}
	x.tree = rtreego.NewTree(2, 25, 50, spatials...)
	x.stale = false
}

// Nearest returns the sheep closest to p by straight-line distance.
func (x *PreyIndex) Nearest(p vmath.Vec2) (ecs.Entity, bool) {
	if x.stale {
		x.rebuild()
	}
	if len(x.points) == 0 {
		return ecs.Entity{}, false
	}
	hit := x.tree.NearestNeighbor(rtreego.Point{float64(p.X), float64(p.Y)})
	if hit == nil {
		return ecs.Entity{}, false
	}
	return hit.(*preyPoint).e, true
}

// Len returns the number of indexed sheep.
func (x *PreyIndex) Len() int {
	if x.stale {
		x.rebuild()
	}
	return len(x.points)
}
