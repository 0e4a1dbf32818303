package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
)

func bleatConfig(spontaneous, spread float64) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.Bleat.SpontaneousChance = spontaneous
		cfg.Bleat.SpreadChance = spread
	}
}

func TestSpontaneousBleat(t *testing.T) {
	f := newFixture(bleatConfig(1, 0))
	fx := &recordingEffects{}
	sys := NewBleatSystem(f.world, f.flock, f.cfg, f.rng, fx, f.tally)

	a := f.flockSheep(0, 0)
	f.flockSheep(200, 0)
	human := f.flockSheep(-200, 0)
	f.humans.Add(human, &components.Human{})

	// Nothing happens before the first 0.1s roll.
	sys.Update(0.05, false)
	if len(fx.bleats) != 0 {
		t.Fatalf("bleated before the roll: %v", fx.bleats)
	}

	sys.Update(0.06, false)
	if len(fx.bleats) != 2 {
		t.Fatalf("got %d bleats, want 2 (human excluded)", len(fx.bleats))
	}
	if f.tally.Bleats[BleatSpontaneous] != 2 {
		t.Errorf("spontaneous tally = %d, want 2", f.tally.Bleats[BleatSpontaneous])
	}

	rb := f.bleats.Get(a)
	if rb.BleatCooldown.Finished() || rb.BleatCooldown.Duration != float32(f.cfg.Bleat.AICooldown) {
		t.Errorf("bleat cooldown = %+v, want a fresh AI cooldown", rb.BleatCooldown)
	}
	if rb.SpreadCooldown.Duration != float32(f.cfg.Bleat.SpreadWindow) {
		t.Errorf("spread cooldown duration = %v, want %v", rb.SpreadCooldown.Duration, f.cfg.Bleat.SpreadWindow)
	}

	// Cooling down: the next rolls produce nothing.
	for i := 0; i < 5; i++ {
		sys.Update(0.1, false)
	}
	if len(fx.bleats) != 2 {
		t.Errorf("sheep re-bleated during cooldown: %d bleats", len(fx.bleats))
	}
}

func TestPlayerBleat(t *testing.T) {
	f := newFixture(bleatConfig(0, 0))
	fx := &recordingEffects{}
	sys := NewBleatSystem(f.world, f.flock, f.cfg, f.rng, fx, f.tally)

	f.flockSheep(50, 0)
	human := f.flockSheep(0, 0)
	f.humans.Add(human, &components.Human{})

	sys.Update(0.01, true)
	if len(fx.bleats) != 1 || fx.bleats[0] != human || fx.human != 1 {
		t.Fatalf("bleats = %v, want one human bleat", fx.bleats)
	}
	if d := f.bleats.Get(human).BleatCooldown.Duration; d != float32(f.cfg.Bleat.HumanCooldown) {
		t.Errorf("human cooldown = %v, want %v", d, f.cfg.Bleat.HumanCooldown)
	}

	// Pressing again while cooling down does nothing.
	sys.Update(0.01, true)
	if len(fx.bleats) != 1 {
		t.Errorf("bleated during cooldown")
	}

	// After the short cooldown the player can bleat again.
	sys.Update(float32(f.cfg.Bleat.HumanCooldown), false)
	sys.Update(0.01, true)
	if len(fx.bleats) != 2 {
		t.Errorf("got %d bleats, want 2 after cooldown", len(fx.bleats))
	}
}

func TestContagionSpreadsInRange(t *testing.T) {
	f := newFixture(bleatConfig(0, 1))
	fx := &recordingEffects{}
	sys := NewBleatSystem(f.world, f.flock, f.cfg, f.rng, fx, f.tally)

	src := f.flockSheep(0, 0)
	near := f.flockSheep(50, 0)
	far := f.flockSheep(250, 0)

	rb := f.bleats.Get(src)
	rb.BleatCooldown = components.NewTimer(5, components.Once)
	rb.SpreadCooldown = components.NewTimer(0.01, components.Once)

	sys.Update(0.02, false)

	if len(fx.bleats) != 1 || fx.bleats[0] != near {
		t.Fatalf("bleats = %v, want only the in-range neighbor", fx.bleats)
	}
	if f.tally.Bleats[BleatContagion] != 1 {
		t.Errorf("contagion tally = %d, want 1", f.tally.Bleats[BleatContagion])
	}
	if !f.bleats.Get(far).BleatCooldown.Finished() {
		t.Error("out-of-range sheep should be untouched")
	}
}

func TestContagionOneOutcomePerPair(t *testing.T) {
	f := newFixture(bleatConfig(0, 1))
	fx := &recordingEffects{}
	sys := NewBleatSystem(f.world, f.flock, f.cfg, f.rng, fx, f.tally)

	a := f.flockSheep(0, 0)
	b := f.flockSheep(30, 0)
	for _, e := range []ecs.Entity{a, b} {
		f.bleats.Get(e).SpreadCooldown = components.NewTimer(0.01, components.Once)
	}

	sys.Update(0.02, false)

	if len(fx.bleats) != 1 {
		t.Errorf("got %d bleats, want exactly one for a pair that qualifies both ways", len(fx.bleats))
	}
}

func TestBleatRateBounded(t *testing.T) {
	f := newFixture(bleatConfig(1, 1))
	fx := &recordingEffects{}
	sys := NewBleatSystem(f.world, f.flock, f.cfg, f.rng, fx, f.tally)

	const n = 30
	for i := 0; i < n; i++ {
		f.flockSheep(float32(i%6)*15, float32(i/6)*15)
	}

	const seconds = 10
	dt := float32(1.0 / 60)
	for i := 0; i < seconds*60; i++ {
		sys.Update(dt, false)
	}

	// Each sheep can bleat at most once per AI cooldown, plus the first.
	perSheep := int(seconds/f.cfg.Bleat.AICooldown) + 1
	if got := len(fx.bleats); got > n*perSheep {
		t.Errorf("%d bleats in %ds exceeds the cooldown bound %d", got, seconds, n*perSheep)
	}
	if len(fx.bleats) == 0 {
		t.Error("expected some bleats with certain chances")
	}
}
