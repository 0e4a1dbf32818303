package components

import "github.com/pthm-cable/flock/vmath"

// MindState enumerates the sheep behavior states.
type MindState uint8

const (
	Idle MindState = iota
	Observing
	Moving
)

func (s MindState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Observing:
		return "observing"
	case Moving:
		return "moving"
	}
	return "unknown"
}

// SheepMind is the per-sheep state machine. Neighbors is only meaningful
// while Observing; Goal and Speed only while Moving.
type SheepMind struct {
	State     MindState
	Neighbors []vmath.Vec2 // relative vectors towards neighbors
	Goal      vmath.Vec2
	Speed     float32 `inspect:"label,fmt:%.1f"`
	Cycle     Timer   `inspect:"bar"`
}

// Observe enters Observing with an empty neighbor list.
func (m *SheepMind) Observe() {
	m.State = Observing
	m.Neighbors = m.Neighbors[:0]
	m.Goal = vmath.Vec2{}
	m.Speed = 0
}

// Move enters Moving with the given goal and base speed.
func (m *SheepMind) Move(goal vmath.Vec2, speed float32) {
	m.State = Moving
	m.Neighbors = m.Neighbors[:0]
	m.Goal = goal
	m.Speed = speed
}

// Rest enters Idle.
func (m *SheepMind) Rest() {
	m.State = Idle
	m.Neighbors = m.Neighbors[:0]
	m.Goal = vmath.Vec2{}
	m.Speed = 0
}
