package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/vmath"
)

// BleatCause records what made a sheep bleat.
type BleatCause uint8

const (
	BleatSpontaneous BleatCause = iota
	BleatPlayer
	BleatContagion
	numBleatCauses
)

func (c BleatCause) String() string {
	switch c {
	case BleatSpontaneous:
		return "spontaneous"
	case BleatPlayer:
		return "player"
	case BleatContagion:
		return "contagion"
	}
	return "unknown"
}

// Effects receives fire-and-forget presentation requests. Implementations
// must not call back into the simulation.
type Effects interface {
	Bleat(e ecs.Entity, pos vmath.Vec2, human bool)
	Eat(pos vmath.Vec2)
	Burst(pos vmath.Vec2)
}

// NopEffects discards every request.
type NopEffects struct{}

func (NopEffects) Bleat(ecs.Entity, vmath.Vec2, bool) {}
func (NopEffects) Eat(vmath.Vec2) {}
func (NopEffects) Burst(vmath.Vec2) {}

// Tally accumulates event counts between telemetry flushes.
type Tally struct {
	Bleats          [numBleatCauses]int
	MindDefects     int
	SheepEaten      int
	WolvesSpawned   int
	SheepRespawned  int
	WalkersPromoted int
	CabbagesSpawned int
	CabbagesEaten   int
	EgoJumps        int
	EmptyPool       int // operations skipped for lack of sheep
}

// TotalBleats sums bleats over all causes.
func (t *Tally) TotalBleats() int {
	n := 0
	for _, b := range t.Bleats {
		n += b
	}
	return n
}

// Reset zeroes every count.
func (t *Tally) Reset() {
	*t = Tally{}
}
