package game

import "github.com/pthm-cable/flock/vmath"

// Input is the player's command for one tick.
type Input struct {
	Intent vmath.Vec2 // desired direction, length at most 1
	Bleat  bool       // bleat this tick
}

// InputSource supplies the player's input once per tick.
type InputSource interface {
	Poll(g *Game) Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func(g *Game) Input

// Poll calls f.
func (f InputFunc) Poll(g *Game) Input { return f(g) }

// Autopilot plays the human sheep for headless runs: it runs from the
// nearest wolf inside FleeRadius and otherwise heads for the nearest cabbage.
type Autopilot struct {
	FleeRadius float32
	// BleatRadius makes the sheep bleat when a wolf is this close.
	BleatRadius float32
}

// NewAutopilot returns an autopilot with default radii.
func NewAutopilot() *Autopilot {
	return &Autopilot{FleeRadius: 90, BleatRadius: 40}
}

// Poll steers away from wolves or toward food.
func (a *Autopilot) Poll(g *Game) Input {
	host, ok := g.HumanPos()
	if !ok {
		return Input{}
	}

	var wolf, cabbage vmath.Vec2
	wolfDist, cabbageDist := float32(-1), float32(-1)
	g.Agents(func(v AgentView) {
		switch v.Kind {
		case KindWolf:
			if d := v.Pos.DistSq(host); wolfDist < 0 || d < wolfDist {
				wolf, wolfDist = v.Pos, d
			}
		case KindCabbage:
			if d := v.Pos.DistSq(host); cabbageDist < 0 || d < cabbageDist {
				cabbage, cabbageDist = v.Pos, d
			}
		}
	})

	if wolfDist >= 0 && wolfDist < a.FleeRadius*a.FleeRadius {
		return Input{
			Intent: host.Sub(wolf).Normalize(),
			Bleat:  wolfDist < a.BleatRadius*a.BleatRadius,
		}
	}
	if cabbageDist >= 0 {
		return Input{Intent: cabbage.Sub(host).Normalize()}
	}
	return Input{}
}

// IntentFromKeys turns held direction keys into a unit intent. World Y points
// up. Opposite keys cancel.
func IntentFromKeys(up, down, left, right bool) vmath.Vec2 {
	var v vmath.Vec2
	if up {
		v.Y++
	}
	if down {
		v.Y--
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	return v.Normalize()
}

// EdgeTrigger reports a button press once, on the tick it goes down.
type EdgeTrigger struct {
	held bool
}

// Update feeds the current button state and reports a new press.
func (t *EdgeTrigger) Update(down bool) bool {
	pressed := down && !t.held
	t.held = down
	return pressed
}
