package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

func collisionAt(d float64) func(*config.Config) {
	return func(cfg *config.Config) { cfg.Sheep.CollisionDistance = d }
}

func TestCollisionPairEndsAtDistance(t *testing.T) {
	f := newFixture(collisionAt(25))
	a := f.bareSheep(0, 0)
	b := f.bareSheep(10, 0)

	sys := NewCollisionSystem(f.world, f.flock, f.cfg)
	if moved := sys.Update(); moved != 2 {
		t.Fatalf("moved = %d, want 2", moved)
	}

	pa, pb := f.at(a), f.at(b)
	if !near(pb.Sub(pa).Len(), 25) {
		t.Errorf("separation = %v, want 25", pb.Sub(pa).Len())
	}
	// Pushed apart along the original axis.
	if pa.Y != 0 || pb.Y != 0 {
		t.Errorf("pushed off axis: %v %v", pa, pb)
	}
	if !(pa.X < 0 && pb.X > 10) {
		t.Errorf("sheep did not move apart: %v %v", pa, pb)
	}
}

func TestCollisionIdempotent(t *testing.T) {
	f := newFixture(collisionAt(25))
	f.bareSheep(0, 0)
	f.bareSheep(10, 0)
	f.bareSheep(200, 50)
	f.bareSheep(203, 46)

	sys := NewCollisionSystem(f.world, f.flock, f.cfg)
	sys.Update()

	f.flock.Rebuild()
	before := append([]GridPoint(nil), f.flock.Grid().Points()...)

	if moved := sys.Update(); moved != 0 {
		t.Fatalf("second pass moved %d sheep", moved)
	}
	for _, p := range before {
		if got := f.at(p.E); got != p.Pos {
			t.Errorf("sheep moved from %v to %v on a resolved configuration", p.Pos, got)
		}
	}
}

func TestCollisionMinimumSeparation(t *testing.T) {
	// Isolated pairs at various overlaps and angles.
	tests := []struct {
		name string
		a, b vmath.Vec2
	}{
		{"horizontal", vmath.V(0, 0), vmath.V(5, 0)},
		{"vertical", vmath.V(-100, 0), vmath.V(-100, 19)},
		{"diagonal", vmath.V(100, 100), vmath.V(107, 93)},
		{"touching", vmath.V(-200, -100), vmath.V(-200, -100.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(collisionAt(20))
			a := f.bareSheep(tt.a.X, tt.a.Y)
			b := f.bareSheep(tt.b.X, tt.b.Y)

			NewCollisionSystem(f.world, f.flock, f.cfg).Update()

			if d := f.at(a).Dist(f.at(b)); d < 20-eps {
				t.Errorf("separation %v below 20", d)
			}
		})
	}
}

func TestCollisionClosestOnly(t *testing.T) {
	// The middle sheep is closest to the right one, so it is pushed left only.
	f := newFixture(collisionAt(20))
	left := f.bareSheep(-15, 0)
	mid := f.bareSheep(0, 0)
	right := f.bareSheep(5, 0)

	NewCollisionSystem(f.world, f.flock, f.cfg).Update()

	if got := f.at(mid); !nearVec(got, vmath.V(-7.5, 0)) {
		t.Errorf("mid = %v, want (-7.5, 0)", got)
	}
	if got := f.at(right); !nearVec(got, vmath.V(12.5, 0)) {
		t.Errorf("right = %v, want (12.5, 0)", got)
	}
	if got := f.at(left); !nearVec(got, vmath.V(-17.5, 0)) {
		t.Errorf("left = %v, want (-17.5, 0)", got)
	}
}

func TestCollisionChainConverges(t *testing.T) {
	// One pass cannot clear a chain, since each sheep only answers its
	// closest neighbor. Repeated ticks spread it out.
	f := newFixture(collisionAt(20))
	chain := []ecs.Entity{f.bareSheep(-15, 0), f.bareSheep(0, 0), f.bareSheep(5, 0)}
	sys := NewCollisionSystem(f.world, f.flock, f.cfg)

	passes := 0
	for sys.Update() > 0 {
		passes++
		if passes > 50 {
			t.Fatal("chain did not settle within 50 passes")
		}
	}
	if passes < 2 {
		t.Errorf("settled after %d passes, expected a chain to need several", passes)
	}
	for i := 0; i < len(chain); i++ {
		for j := i + 1; j < len(chain); j++ {
			if d := f.at(chain[i]).Dist(f.at(chain[j])); d < 20-eps {
				t.Errorf("sheep %d and %d end %v apart", i, j, d)
			}
		}
	}
}

func TestCollisionCoincidentNoPush(t *testing.T) {
	f := newFixture(collisionAt(20))
	a := f.bareSheep(3, 3)
	b := f.bareSheep(3, 3)

	NewCollisionSystem(f.world, f.flock, f.cfg).Update()

	if f.at(a) != vmath.V(3, 3) || f.at(b) != vmath.V(3, 3) {
		t.Error("co-located sheep have no push direction and must stay put")
	}
}
