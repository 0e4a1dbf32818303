package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/vmath"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Sheep    int `csv:"sheep"`
	Walkers  int `csv:"walkers"`
	Wolves   int `csv:"wolves"`
	WolfCap  int `csv:"wolf_cap"`
	Cabbages int `csv:"cabbages"`

	// Difficulty at window end
	WolfSpeed float64 `csv:"wolf_speed"`
	SleepTime float64 `csv:"sleep_time"`

	// Events during window
	BleatsSpontaneous int `csv:"bleats_spontaneous"`
	BleatsPlayer      int `csv:"bleats_player"`
	BleatsContagion   int `csv:"bleats_contagion"`
	SheepEaten        int `csv:"sheep_eaten"`
	WolvesSpawned     int `csv:"wolves_spawned"`
	SheepRespawned    int `csv:"sheep_respawned"`
	WalkersPromoted   int `csv:"walkers_promoted"`
	CabbagesSpawned   int `csv:"cabbages_spawned"`
	CabbagesEaten     int `csv:"cabbages_eaten"`
	EgoJumps          int `csv:"ego_jumps"`
	MindDefects       int `csv:"mind_defects"`
	EmptyPool         int `csv:"empty_pool"`

	// Session score
	Fed int `csv:"fed"`

	// Distance of flocking sheep from the flock centroid
	SpreadMean float64 `csv:"spread_mean"`
	SpreadStd  float64 `csv:"spread_std"`
	SpreadP50  float64 `csv:"spread_p50"`
	SpreadP90  float64 `csv:"spread_p90"`
}

// Spread summarizes how far sheep stray from the flock centroid.
type Spread struct {
	Mean, Std, P50, P90 float64
}

// ComputeSpread measures distances from the centroid of points.
func ComputeSpread(points []vmath.Vec2) Spread {
	n := len(points)
	if n == 0 {
		return Spread{}
	}

	var centroid vmath.Vec2
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float32(n))

	dists := make([]float64, n)
	for i, p := range points {
		dists[i] = float64(p.Dist(centroid))
	}
	slices.Sort(dists)

	s := Spread{
		P50: stat.Quantile(0.5, stat.Empirical, dists, nil),
		P90: stat.Quantile(0.9, stat.Empirical, dists, nil),
	}
	if n < 2 {
		s.Mean = dists[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(dists, nil)
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}

// TotalBleats sums bleats over all causes.
func (s WindowStats) TotalBleats() int {
	return s.BleatsSpontaneous + s.BleatsPlayer + s.BleatsContagion
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("sheep", s.Sheep),
		slog.Int("walkers", s.Walkers),
		slog.Int("wolves", s.Wolves),
		slog.Int("wolf_cap", s.WolfCap),
		slog.Int("cabbages", s.Cabbages),
		slog.Float64("wolf_speed", s.WolfSpeed),
		slog.Float64("sleep_time", s.SleepTime),
		slog.Int("bleats_spontaneous", s.BleatsSpontaneous),
		slog.Int("bleats_player", s.BleatsPlayer),
		slog.Int("bleats_contagion", s.BleatsContagion),
		slog.Int("sheep_eaten", s.SheepEaten),
		slog.Int("wolves_spawned", s.WolvesSpawned),
		slog.Int("sheep_respawned", s.SheepRespawned),
		slog.Int("walkers_promoted", s.WalkersPromoted),
		slog.Int("cabbages_spawned", s.CabbagesSpawned),
		slog.Int("cabbages_eaten", s.CabbagesEaten),
		slog.Int("ego_jumps", s.EgoJumps),
		slog.Int("mind_defects", s.MindDefects),
		slog.Int("empty_pool", s.EmptyPool),
		slog.Int("fed", s.Fed),
		slog.Float64("spread_mean", s.SpreadMean),
		slog.Float64("spread_p90", s.SpreadP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"sheep", s.Sheep,
		"walkers", s.Walkers,
		"wolves", s.Wolves,
		"wolf_cap", s.WolfCap,
		"cabbages", s.Cabbages,
		"wolf_speed", s.WolfSpeed,
		"bleats", s.TotalBleats(),
		"contagion", s.BleatsContagion,
		"sheep_eaten", s.SheepEaten,
		"ego_jumps", s.EgoJumps,
		"mind_defects", s.MindDefects,
		"fed", s.Fed,
		"spread_mean", s.SpreadMean,
		"spread_p90", s.SpreadP90,
	)
}
