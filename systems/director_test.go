package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

type directorFixture struct {
	*fixture
	dir *DirectorSystem
}

func newDirectorFixture(mutate func(*config.Config)) *directorFixture {
	f := newFixture(mutate)
	factory := NewFactory(f.world)
	mind := NewMindSystem(f.world, f.flock, f.cfg, f.rng, f.tally)
	wolves := NewWolfSystem(f.world, f.cfg, NopEffects{}, f.tally)
	return &directorFixture{
		fixture: f,
		dir:     NewDirectorSystem(f.world, f.cfg, f.rng, factory, mind, wolves, f.tally),
	}
}

func TestDirectorWolfCapAt90(t *testing.T) {
	d := newDirectorFixture(nil)
	d.dir.Clock.Elapsed = 90
	if got := d.dir.WolfCap(); got != 4 {
		t.Errorf("WolfCap at 90s = %d, want 4", got)
	}
}

func TestDirectorSpawnsWolvesUpToCap(t *testing.T) {
	d := newDirectorFixture(func(cfg *config.Config) { cfg.Population.TargetSheep = 0 })

	// Spawner period is 5s; the clock reads 0, 5, 10 when it fires.
	want := []int{1, 1, 2}
	for i, w := range want {
		d.dir.Update(5)
		if got := d.dir.WolfCount(); got != w {
			t.Fatalf("after spawn tick %d: %d wolves, want %d", i, got, w)
		}
	}
	if d.tally.WolvesSpawned != 2 {
		t.Errorf("tally = %d, want 2", d.tally.WolvesSpawned)
	}
	if d.dir.Clock.Elapsed != 15 {
		t.Errorf("clock = %v, want 15", d.dir.Clock.Elapsed)
	}

	bounds := d.cfg.Derived.Bounds
	query := d.dir.wolves.Query()
	for query.Next() {
		if p := d.at(query.Entity()); bounds.Contains(p) {
			t.Errorf("wolf spawned inside the play area at %v", p)
		}
	}
}

func TestDirectorRespawnAndPromote(t *testing.T) {
	d := newDirectorFixture(func(cfg *config.Config) { cfg.Population.TargetSheep = 1 })

	d.dir.Update(float32(d.cfg.Population.RespawnInterval))
	if got := d.dir.SheepCount(); got != 1 {
		t.Fatalf("sheep = %d, want 1 walker", got)
	}

	query := d.dir.walkers.Query()
	if !query.Next() {
		t.Fatal("no edge walker spawned")
	}
	e := query.Entity()
	query.Close()

	if d.cfg.Derived.Bounds.Contains(d.at(e)) {
		t.Fatalf("walker spawned in bounds at %v", d.at(e))
	}
	if d.minds.Has(e) {
		t.Fatal("walker must not have a mind yet")
	}

	dt := float32(1.0 / 60)
	for i := 0; i < 600 && !d.minds.Has(e); i++ {
		d.dir.MoveWalkers(dt)
		d.dir.Update(dt)
	}

	if !d.minds.Has(e) {
		t.Fatalf("walker at %v never promoted", d.at(e))
	}
	if d.dir.walkerMap.Has(e) {
		t.Error("edge walk marker should be removed on promotion")
	}
	if d.tally.WalkersPromoted != 1 {
		t.Errorf("promoted tally = %d, want 1", d.tally.WalkersPromoted)
	}
	// Population at target: no more respawns.
	if d.tally.SheepRespawned != 1 {
		t.Errorf("respawned tally = %d, want 1", d.tally.SheepRespawned)
	}
}

func TestEdgePointWalksIntoPaddedArea(t *testing.T) {
	bounds := vmath.CenteredRect(640, 320)
	inner := bounds.Inset(16)
	outer := bounds.Inset(-16)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		p, dir := EdgePoint(bounds, 16, 16, rng)

		onEdge := near(p.X, outer.Min.X) || near(p.X, outer.Max.X) ||
			near(p.Y, outer.Min.Y) || near(p.Y, outer.Max.Y)
		if !onEdge {
			t.Fatalf("point %v not on the outer perimeter", p)
		}
		if bounds.Contains(p) {
			t.Fatalf("point %v inside bounds", p)
		}

		// margin+padding is 32, so 48 units inward always lands inside.
		if q := p.Add(dir.Scale(48)); !inner.Contains(q) {
			t.Fatalf("walking from %v along %v ends at %v, outside the padded area", p, dir, q)
		}
	}
}
