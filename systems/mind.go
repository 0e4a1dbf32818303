package systems

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// MindParams are the constants of the observation-to-goal rule.
type MindParams struct {
	CollisionDistance float32
	AvoidRange        float32
	AvoidWeight       float32
	Awareness         int
	FleeSpeed         float32
	FlockSpeed        float32
}

// MindParamsFromConfig extracts the mind constants.
func MindParamsFromConfig(cfg *config.Config) MindParams {
	return MindParams{
		CollisionDistance: float32(cfg.Sheep.CollisionDistance),
		AvoidRange:        float32(cfg.Sheep.AvoidRange),
		AvoidWeight:       float32(cfg.Sheep.AvoidWeight),
		Awareness:         cfg.Sheep.Awareness,
		FleeSpeed:         float32(cfg.Sheep.FleeSpeed),
		FlockSpeed:        float32(cfg.Sheep.FlockSpeed),
	}
}

// SpeedFromTime is the easing applied over a movement window: zero at both
// ends, peaking at t = 0.5.
func SpeedFromTime(t float32) float32 {
	return 4 * t * (1 - t)
}

// NearestNeighbors sorts neighbors ascending by length in place and returns
// at most awareness of them.
func NearestNeighbors(neighbors []vmath.Vec2, awareness int) []vmath.Vec2 {
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].LenSq() < neighbors[b].LenSq()
	})
	if len(neighbors) > awareness {
		return neighbors[:awareness]
	}
	return neighbors
}

// ConcludeFromObservation turns the neighbor vectors gathered while
// observing into a movement goal and base speed.
func ConcludeFromObservation(neighbors []vmath.Vec2, p MindParams) (goal vmath.Vec2, speed float32) {
	nearest := NearestNeighbors(neighbors, p.Awareness)
	if len(nearest) == 0 {
		return vmath.Vec2{}, 0
	}

	// Flee reflex overrides flocking.
	if nearest[0].Len() < p.CollisionDistance {
		return nearest[0].Neg(), p.FleeSpeed
	}

	var sum vmath.Vec2
	for _, v := range nearest {
		if v.Len() <= p.AvoidRange {
			sum = sum.Add(v.Neg().Scale(p.AvoidWeight))
		} else {
			sum = sum.Add(v)
		}
	}
	return sum.Scale(1 / float32(len(nearest))), p.FlockSpeed
}

// MindSystem advances every SheepMind: cycle timers, observation and the
// resulting goal.
type MindSystem struct {
	flock  *Flock
	filter *ecs.Filter1[components.SheepMind]
	minds  *ecs.Map[components.SheepMind]
	rng    *rand.Rand
	tally  *Tally

	params   MindParams
	rangeR   float32
	cycleMin float32
	cycleMax float32

	observing []*components.SheepMind // per grid index, nil unless observing
}

// NewMindSystem creates the sheep mind system.
func NewMindSystem(w *ecs.World, flock *Flock, cfg *config.Config, rng *rand.Rand, tally *Tally) *MindSystem {
	return &MindSystem{
		flock:    flock,
		filter:   ecs.NewFilter1[components.SheepMind](w),
		minds:    ecs.NewMap[components.SheepMind](w),
		rng:      rng,
		tally:    tally,
		params:   MindParamsFromConfig(cfg),
		rangeR:   float32(cfg.Sheep.Range),
		cycleMin: float32(cfg.Sheep.CycleMin),
		cycleMax: float32(cfg.Sheep.CycleMax),
	}
}

// NewMind returns an Idle mind with a freshly sampled cycle.
func (s *MindSystem) NewMind() components.SheepMind {
	return components.SheepMind{
		State: components.Idle,
		Cycle: components.NewTimer(s.sampleCycle(), components.Repeating),
	}
}

func (s *MindSystem) sampleCycle() float32 {
	return s.cycleMin + s.rng.Float32()*(s.cycleMax-s.cycleMin)
}

// Update ticks cycle timers, advances states, gathers neighbors for sheep
// that started observing and concludes their goal in the same tick.
func (s *MindSystem) Update(dt float32) {
	observing := s.advance(dt)
	if observing == 0 {
		return
	}
	s.observe()
	s.conclude()
}

// advance ticks every cycle timer and applies timer-driven transitions.
func (s *MindSystem) advance(dt float32) int {
	observing := 0
	query := s.filter.Query()
	for query.Next() {
		mind := query.Get()
		mind.Cycle.Tick(dt)
		if !mind.Cycle.JustFinished() {
			continue
		}
		mind.Cycle.Duration = s.sampleCycle()

		switch mind.State {
		case components.Moving:
			mind.Rest()
		case components.Idle:
			mind.Observe()
			observing++
		case components.Observing:
			slog.Warn("sheep mind still observing when its cycle elapsed, resetting",
				"entity", query.Entity().ID())
			s.tally.MindDefects++
			mind.Rest()
		}
	}
	return observing
}

// observe gathers relative vectors towards every sheep within range for
// each observing sheep.
func (s *MindSystem) observe() {
	s.flock.Rebuild()
	grid := s.flock.Grid()
	n := grid.Len()

	if cap(s.observing) < n {
		s.observing = make([]*components.SheepMind, n)
	}
	minds := s.observing[:n]
	for i := 0; i < n; i++ {
		minds[i] = nil
		e := grid.Point(i).E
		if !s.minds.Has(e) {
			continue
		}
		if m := s.minds.Get(e); m.State == components.Observing {
			minds[i] = m
		}
	}

	grid.ForEachPair(s.rangeR, func(i, j int, d vmath.Vec2, _ float32) {
		// d points from j to i.
		if m := minds[i]; m != nil {
			m.Neighbors = append(m.Neighbors, d.Neg())
		}
		if m := minds[j]; m != nil {
			m.Neighbors = append(m.Neighbors, d)
		}
	})
}

// conclude resolves every observing sheep into Moving.
func (s *MindSystem) conclude() {
	query := s.filter.Query()
	for query.Next() {
		mind := query.Get()
		if mind.State != components.Observing {
			continue
		}
		goal, speed := ConcludeFromObservation(mind.Neighbors, s.params)
		mind.Move(goal, speed)
	}
}
