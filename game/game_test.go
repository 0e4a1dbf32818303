package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/vmath"
)

func newTestGame(t *testing.T, mutate func(*config.Config), opts Options) *Game {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
		cfg.Recompute()
	}
	opts.Config = cfg
	g, err := NewGame(opts)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func countViews(g *Game) map[AgentKind]int {
	counts := make(map[AgentKind]int)
	g.Agents(func(v AgentView) {
		counts[v.Kind]++
	})
	return counts
}

func countHumans(g *Game) int {
	n := 0
	g.Agents(func(v AgentView) {
		if v.Human {
			n++
		}
	})
	return n
}

func TestNewGameSeedsSession(t *testing.T) {
	g := newTestGame(t, nil, Options{Seed: 1})
	cfg := g.Config()

	assert.Equal(t, Playing, g.State())
	assert.Equal(t, int32(0), g.Tick())
	assert.Equal(t, cfg.Sheep.InitialCount, countViews(g)[KindSheep])
	assert.Equal(t, 1, countHumans(g))

	radius := float32(cfg.Sheep.SpawnRadius)
	g.Agents(func(v AgentView) {
		assert.LessOrEqual(t, v.Pos.Len(), radius+1e-3, "sheep seeded outside the ring")
	})
}

func TestStepKeepsOneHuman(t *testing.T) {
	g := newTestGame(t, nil, Options{Seed: 2})

	for i := 0; i < 600; i++ {
		g.Step(Input{Intent: vmath.V(1, 0)})
		if g.State() != Playing {
			break
		}
		require.Equal(t, 1, countHumans(g), "tick %d", g.Tick())
	}
	assert.Positive(t, g.Status().Elapsed)
}

func TestDeterministicWithSeed(t *testing.T) {
	positions := func() []vmath.Vec2 {
		g := newTestGame(t, nil, Options{Seed: 7})
		auto := NewAutopilot()
		for i := 0; i < 300; i++ {
			g.Step(auto.Poll(g))
		}
		var out []vmath.Vec2
		g.Agents(func(v AgentView) { out = append(out, v.Pos) })
		return out
	}
	assert.Equal(t, positions(), positions())
}

// lonelySheep configures a single human sheep and a fast wolf.
func lonelySheep(cfg *config.Config) {
	cfg.Sheep.InitialCount = 1
	cfg.Population.TargetSheep = 1
	cfg.Human.JumpEnabled = false
	cfg.Wolf.SpawnInterval = 0.1
	cfg.Wolf.HungryInterval = 0.05
	cfg.Wolf.SpeedInitial = 1000
	cfg.Wolf.SpeedMax = 1000
}

func TestHumanEatenEndsSession(t *testing.T) {
	var results []Result
	g := newTestGame(t, lonelySheep, Options{
		Seed:       3,
		OnGameOver: func(r Result) { results = append(results, r) },
	})

	for i := 0; i < 600 && g.State() == Playing; i++ {
		g.Step(Input{})
	}
	require.Equal(t, GameOver, g.State())
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 1, res.SheepEaten)
	assert.GreaterOrEqual(t, res.PeakWolves, 1)
	assert.Equal(t, int64(3), res.Seed)
	assert.Equal(t, g.Tick(), res.Ticks)
	assert.Positive(t, res.Survived)

	// Stepping after game over changes nothing.
	tick := g.Tick()
	g.Step(Input{})
	assert.Equal(t, tick, g.Tick())
	assert.Len(t, results, 1)

	first := res.Session
	g.Reset()
	assert.Equal(t, Playing, g.State())
	assert.Equal(t, int32(0), g.Tick())
	assert.Zero(t, g.Status().Elapsed)
	assert.Zero(t, g.Status().Wolves)
	assert.NotEqual(t, first, g.Result().Session)
	assert.Equal(t, 1, countHumans(g))
}

func TestResetClearsWorld(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Cabbage.Chance = 1
		cfg.Cabbage.Interval = 0.1
	}, Options{Seed: 4})

	for i := 0; i < 120; i++ {
		g.Step(Input{})
	}
	require.Positive(t, countViews(g)[KindCabbage])

	g.Reset()
	counts := countViews(g)
	assert.Equal(t, g.Config().Sheep.InitialCount, counts[KindSheep])
	assert.Zero(t, counts[KindCabbage])
	assert.Zero(t, counts[KindWolf])
	assert.Zero(t, counts[KindWalker])
	assert.Zero(t, g.Status().Fed)
	assert.Zero(t, g.Effects().BubbleCount())
}

func TestAutopilotFleesWolf(t *testing.T) {
	g := newTestGame(t, lonelySheep, Options{Seed: 5})
	host, ok := g.HumanPos()
	require.True(t, ok)

	g.factory.Wolf(host.Add(vmath.V(10, 0)), g.wolves.NewMind())
	g.factory.Cabbage(host.Add(vmath.V(0, 50)))

	in := NewAutopilot().Poll(g)
	assert.InDelta(t, -1, in.Intent.X, 1e-4)
	assert.InDelta(t, 0, in.Intent.Y, 1e-4)
	assert.True(t, in.Bleat)
}

func TestAutopilotSeeksCabbage(t *testing.T) {
	g := newTestGame(t, lonelySheep, Options{Seed: 6})
	host, _ := g.HumanPos()
	g.factory.Cabbage(host.Add(vmath.V(0, 50)))
	g.factory.Cabbage(host.Add(vmath.V(200, 0)))

	in := NewAutopilot().Poll(g)
	assert.InDelta(t, 0, in.Intent.X, 1e-4)
	assert.InDelta(t, 1, in.Intent.Y, 1e-4)
	assert.False(t, in.Bleat)
}

func TestGameOverFlushesFinalWindow(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newTestGame(t, lonelySheep, Options{
		Seed:           3,
		StatsWindowSec: 1000,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 600 && g.State() == Playing; i++ {
		g.Step(Input{})
	}
	require.Equal(t, GameOver, g.State())

	// The window is far longer than the session, so only the game-over
	// flush can have produced it.
	require.Len(t, windows, 1)
	assert.Equal(t, g.Tick(), windows[0].WindowEndTick)
	assert.Equal(t, 1, windows[0].SheepEaten)
	assert.Positive(t, windows[0].WolvesSpawned)
}

func TestTelemetryOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var windows []telemetry.WindowStats
	g := newTestGame(t, nil, Options{
		Seed:           8,
		OutputDir:      dir,
		StatsWindowSec: 0.5,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 90; i++ {
		g.Step(Input{})
	}
	require.NoError(t, g.Close())

	require.Len(t, windows, 3)
	assert.Equal(t, int32(30), windows[0].WindowEndTick)
	assert.Positive(t, windows[0].Sheep)

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
