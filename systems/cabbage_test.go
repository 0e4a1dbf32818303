package systems

import (
	"testing"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
)

func TestCabbageSpawnerRespectsMax(t *testing.T) {
	f := newFixture(func(cfg *config.Config) { cfg.Cabbage.Chance = 1 })
	sys := NewCabbageSystem(f.world, f.cfg, f.rng, NewFactory(f.world), NopEffects{}, f.tally)

	interval := float32(f.cfg.Cabbage.Interval)
	for i := 0; i < 10; i++ {
		sys.Update(interval)
	}
	if got := sys.Count(); got != f.cfg.Cabbage.Max {
		t.Errorf("cabbages = %d, want max %d", got, f.cfg.Cabbage.Max)
	}

	area := f.cfg.Derived.Bounds.Inset(float32(f.cfg.Cabbage.Padding))
	query := sys.cabbages.Query()
	for query.Next() {
		if p := query.Get(); !area.Contains(p.Vec2) {
			t.Errorf("cabbage at %v outside the padded area", p.Vec2)
		}
	}
}

func TestCabbageFeedsHumanOnly(t *testing.T) {
	f := newFixture(nil)
	fx := &recordingEffects{}
	factory := NewFactory(f.world)
	sys := NewCabbageSystem(f.world, f.cfg, f.rng, factory, fx, f.tally)

	ai := f.flockSheep(100, 100)
	human := f.flockSheep(0, 0)
	f.humans.Add(human, &components.Human{})

	factory.Cabbage(f.at(ai))
	factory.Cabbage(f.at(human).Add(f.at(human).Sub(f.at(ai)).Normalize().Scale(5)))

	if fed := sys.Update(0.01); fed != 1 {
		t.Fatalf("fed = %d, want 1", fed)
	}
	if sys.Score.Fed != 1 || f.tally.CabbagesEaten != 1 || fx.eats != 1 {
		t.Errorf("score %d tally %d eats %d, want 1 each", sys.Score.Fed, f.tally.CabbagesEaten, fx.eats)
	}
	if sys.Count() != 1 {
		t.Errorf("cabbage next to the AI sheep should remain, have %d", sys.Count())
	}

	sys.Reset()
	if sys.Score.Fed != 0 {
		t.Error("Reset should zero the score")
	}
}
