package systems

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/vmath"
)

// DirectorSystem owns the difficulty clock and keeps the wolf and sheep
// populations at their targets.
type DirectorSystem struct {
	Clock Clock

	factory   *Factory
	mind      *MindSystem
	wolfSys   *WolfSystem
	wolves    *ecs.Filter1[components.Wolf]
	sheep     *ecs.Filter1[components.Sheep]
	walkers   *ecs.Filter2[components.Position, components.EdgeWalker]
	walkerMap *ecs.Map[components.EdgeWalker]
	mindMap   *ecs.Map[components.SheepMind]
	rng       *rand.Rand
	tally     *Tally

	curves       Curves
	bounds       vmath.Rect
	wolfMargin   float32
	sheepMargin  float32
	walkSpeed    float32
	padding      float32
	promoteArea  vmath.Rect
	targetSheep  int
	wolfSpawn    components.Timer
	sheepRespawn components.Timer

	promote []ecs.Entity
}

// NewDirectorSystem creates the director. Spawned minds come from the mind
// and wolf systems so they share their parameters.
func NewDirectorSystem(w *ecs.World, cfg *config.Config, rng *rand.Rand, factory *Factory, mind *MindSystem, wolfSys *WolfSystem, tally *Tally) *DirectorSystem {
	bounds := cfg.Derived.Bounds
	return &DirectorSystem{
		factory:      factory,
		mind:         mind,
		wolfSys:      wolfSys,
		wolves:       ecs.NewFilter1[components.Wolf](w),
		sheep:        ecs.NewFilter1[components.Sheep](w),
		walkers:      ecs.NewFilter2[components.Position, components.EdgeWalker](w),
		walkerMap:    ecs.NewMap[components.EdgeWalker](w),
		mindMap:      ecs.NewMap[components.SheepMind](w),
		rng:          rng,
		tally:        tally,
		curves:       CurvesFromConfig(cfg),
		bounds:       bounds,
		wolfMargin:   float32(cfg.Wolf.EdgeMargin),
		sheepMargin:  float32(cfg.Population.EdgeMargin),
		walkSpeed:    float32(cfg.Population.WalkSpeed),
		padding:      float32(cfg.Population.Padding),
		promoteArea:  bounds.Inset(float32(cfg.Population.Padding)),
		targetSheep:  cfg.Population.TargetSheep,
		wolfSpawn:    components.NewTimer(float32(cfg.Wolf.SpawnInterval), components.Repeating),
		sheepRespawn: components.NewTimer(float32(cfg.Population.RespawnInterval), components.Repeating),
	}
}

// Reset zeroes the clock and rearms both spawners.
func (s *DirectorSystem) Reset() {
	s.Clock.Reset()
	s.wolfSpawn.Reset()
	s.sheepRespawn.Reset()
}

// WolfCap returns the current wolf population cap.
func (s *DirectorSystem) WolfCap() int {
	return s.curves.WolfCap(s.Clock.Elapsed)
}

// MoveWalkers advances every edge walker along its inward direction.
func (s *DirectorSystem) MoveWalkers(dt float32) {
	query := s.walkers.Query()
	for query.Next() {
		pos, walker := query.Get()
		pos.Vec2 = pos.Vec2.Add(walker.Dir.Scale(s.walkSpeed * dt))
	}
}

// Update promotes walkers that reached the play area, runs both spawners and
// finally advances the clock.
func (s *DirectorSystem) Update(dt float32) {
	s.promoteWalkers()

	s.wolfSpawn.Tick(dt)
	if s.wolfSpawn.JustFinished() {
		if s.WolfCount() < s.WolfCap() {
			s.spawnWolf()
		}
	}

	s.sheepRespawn.Tick(dt)
	if s.sheepRespawn.JustFinished() {
		if s.SheepCount() < s.targetSheep {
			s.spawnWalker()
		}
	}

	s.Clock.Advance(dt)
}

func (s *DirectorSystem) promoteWalkers() {
	s.promote = s.promote[:0]
	query := s.walkers.Query()
	for query.Next() {
		pos, _ := query.Get()
		if s.promoteArea.Contains(pos.Vec2) {
			s.promote = append(s.promote, query.Entity())
		}
	}

	for _, e := range s.promote {
		s.walkerMap.Remove(e)
		mind := s.mind.NewMind()
		s.mindMap.Add(e, &mind)
		s.tally.WalkersPromoted++
	}
}

func (s *DirectorSystem) spawnWolf() {
	at, _ := EdgePoint(s.bounds, s.wolfMargin, 0, s.rng)
	e := s.factory.Wolf(at, s.wolfSys.NewMind())
	s.tally.WolvesSpawned++
	slog.Debug("wolf spawned", "wolf", e.ID(), "elapsed", s.Clock.Elapsed, "cap", s.WolfCap())
}

func (s *DirectorSystem) spawnWalker() {
	at, inward := EdgePoint(s.bounds, s.sheepMargin, s.padding, s.rng)
	s.factory.Walker(at, inward)
	s.tally.SheepRespawned++
}

// EdgePoint picks a random point just outside bounds, margin away from one
// of its edges, and returns it with the inward normal of that edge. The
// coordinate along the edge stays within bounds shrunk by padding, so walking
// along the normal always crosses the padded area. Edges are weighted by
// length.
func EdgePoint(bounds vmath.Rect, margin, padding float32, rng *rand.Rand) (vmath.Vec2, vmath.Vec2) {
	span := bounds.Inset(padding)
	w, h := span.Width(), span.Height()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	outer := bounds.Inset(-margin)

	t := rng.Float32() * 2 * (w + h)
	switch {
	case t < w:
		return vmath.V(span.Min.X+t, outer.Min.Y), vmath.V(0, 1)
	case t < w+h:
		return vmath.V(outer.Max.X, span.Min.Y+(t-w)), vmath.V(-1, 0)
	case t < 2*w+h:
		return vmath.V(span.Min.X+(t-w-h), outer.Max.Y), vmath.V(0, -1)
	default:
		along := t - 2*w - h
		if along > h {
			along = h
		}
		return vmath.V(outer.Min.X, span.Min.Y+along), vmath.V(1, 0)
	}
}

// WolfCount returns the number of live wolves.
func (s *DirectorSystem) WolfCount() int {
	n := 0
	query := s.wolves.Query()
	for query.Next() {
		n++
	}
	return n
}

// SheepCount returns the number of live sheep, walkers included.
func (s *DirectorSystem) SheepCount() int {
	n := 0
	query := s.sheep.Query()
	for query.Next() {
		n++
	}
	return n
}
