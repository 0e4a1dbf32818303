package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/systems"
)

// Phase names for the simulation step. They share IDs with the system
// registry so the HUD can label them.
const (
	PhaseCollision = systems.IDCollision
	PhaseMind      = systems.IDMind
	PhaseMovement  = systems.IDMovement
	PhaseBleat     = systems.IDBleat
	PhaseWolf      = systems.IDWolf
	PhaseDirector  = systems.IDDirector
	PhaseEgo       = systems.IDEgo
	PhaseCabbage   = systems.IDCabbage
	PhaseEffects   = systems.IDEffects
	PhaseTelemetry = systems.IDTelemetry
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhaseCollision, PhaseMind, PhaseMovement, PhaseBleat, PhaseWolf,
	PhaseDirector, PhaseEgo, PhaseCabbage, PhaseEffects, PhaseTelemetry,
}

// tickSample is one tick's wall time split by phase.
type tickSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps a ring of recent tick timings. Budget is the wall
// time one tick may take before the fixed step falls behind real time.
type PerfCollector struct {
	ring   []tickSample
	next   int
	filled int
	budget time.Duration

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector over the last windowSize ticks.
func NewPerfCollector(windowSize int, budget time.Duration) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:   make([]tickSample, windowSize),
		budget: budget,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the last phase and stores the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = tickSample{total: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame measures the time between rendered frames.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the collector's window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration
	P95Tick time.Duration

	// OverBudget is the fraction of ticks slower than the step budget.
	OverBudget float64

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	Slowest  string // phase with the largest share, empty without samples

	TicksPerSecond float64
	FrameDuration  time.Duration
	FPS            float64
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	sums := make(map[string]time.Duration)
	var sum time.Duration
	over := 0
	for i, t := range p.ring[:p.filled] {
		totals[i] = float64(t.total)
		sum += t.total
		if p.budget > 0 && t.total > p.budget {
			over++
		}
		for phase, d := range t.phases {
			sums[phase] += d
		}
	}
	slices.Sort(totals)

	n := time.Duration(p.filled)
	s.AvgTick = sum / n
	s.MinTick = time.Duration(totals[0])
	s.MaxTick = time.Duration(totals[len(totals)-1])
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	s.OverBudget = float64(over) / float64(p.filled)
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}

	var best float64
	for phase, d := range sums {
		avg := d / n
		s.PhaseAvg[phase] = avg
		if s.AvgTick > 0 {
			pct := float64(avg) / float64(s.AvgTick) * 100
			s.PhasePct[phase] = pct
			if pct > best || (pct == best && phase < s.Slowest) {
				best, s.Slowest = pct, phase
			}
		}
	}
	return s
}

// LogStats logs the window summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer. Phases below 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("over_budget", s.OverBudget),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	OverBudget   float64 `csv:"over_budget"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	Slowest      string  `csv:"slowest"`
	CollisionPct float64 `csv:"collision_pct"`
	MindPct      float64 `csv:"mind_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	BleatPct     float64 `csv:"bleat_pct"`
	WolfPct      float64 `csv:"wolf_pct"`
	DirectorPct  float64 `csv:"director_pct"`
	EgoPct       float64 `csv:"ego_pct"`
	CabbagePct   float64 `csv:"cabbage_pct"`
	EffectsPct   float64 `csv:"effects_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		OverBudget:   s.OverBudget,
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		Slowest:      s.Slowest,
		CollisionPct: s.PhasePct[PhaseCollision],
		MindPct:      s.PhasePct[PhaseMind],
		MovementPct:  s.PhasePct[PhaseMovement],
		BleatPct:     s.PhasePct[PhaseBleat],
		WolfPct:      s.PhasePct[PhaseWolf],
		DirectorPct:  s.PhasePct[PhaseDirector],
		EgoPct:       s.PhasePct[PhaseEgo],
		CabbagePct:   s.PhasePct[PhaseCabbage],
		EffectsPct:   s.PhasePct[PhaseEffects],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
