package game

import (
	"time"

	"github.com/dustin/go-humanize/english"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/vmath"
)

// AgentKind identifies what an agent is for drawing.
type AgentKind uint8

const (
	KindSheep AgentKind = iota
	KindWalker
	KindWolf
	KindCabbage
)

func (k AgentKind) String() string {
	switch k {
	case KindSheep:
		return "sheep"
	case KindWalker:
		return "walker"
	case KindWolf:
		return "wolf"
	case KindCabbage:
		return "cabbage"
	}
	return "unknown"
}

// AgentView is the presentation state of one agent.
type AgentView struct {
	Kind       AgentKind
	Pos        vmath.Vec2
	Moving     bool
	FacingLeft bool
	Human      bool
	Hunting    bool
}

// Agents calls fn for every agent in the world.
func (g *Game) Agents(fn func(AgentView)) {
	query := g.all.Query()
	for query.Next() {
		e := query.Entity()
		v := AgentView{Pos: query.Get().Vec2}

		switch {
		case g.wolfMap.Has(e):
			v.Kind = KindWolf
			mind := g.wolfMap.Get(e)
			if mind.HasPrey && g.world.Alive(mind.Prey) {
				v.Hunting = true
				v.Moving = true
				v.FacingLeft = g.posMap.Get(mind.Prey).X < v.Pos.X
			}
		case g.walkerMap.Has(e):
			v.Kind = KindWalker
			v.Moving = true
			v.FacingLeft = g.walkerMap.Get(e).Dir.X < 0
		case g.humanMap.Has(e):
			v.Kind = KindSheep
			v.Human = true
			v.Moving = !g.intent.IsZero()
			v.FacingLeft = g.facingLeft
		case g.mindMap.Has(e):
			v.Kind = KindSheep
			mind := g.mindMap.Get(e)
			v.Moving = mind.State == components.Moving
			v.FacingLeft = mind.Goal.X < 0
		case g.sheepMap.Has(e):
			v.Kind = KindSheep
		default:
			v.Kind = KindCabbage
		}
		fn(v)
	}
}

// Status is a summary of the session for the HUD.
type Status struct {
	State    SessionState
	Fed      int
	Elapsed  float32
	Sheep    int
	Wolves   int
	WolfCap  int
	Cabbages int
	Tick     int32
}

// Status returns the current session summary.
func (g *Game) Status() Status {
	return Status{
		State:    g.state,
		Fed:      g.cabbage.Score.Fed,
		Elapsed:  g.director.Clock.Elapsed,
		Sheep:    g.director.SheepCount(),
		Wolves:   g.director.WolfCount(),
		WolfCap:  g.director.WolfCap(),
		Cabbages: g.cabbage.Count(),
		Tick:     g.tick,
	}
}

// HumanPos returns the position of the player's sheep.
func (g *Game) HumanPos() (vmath.Vec2, bool) {
	e, ok := g.ego.Human()
	if !ok {
		return vmath.Vec2{}, false
	}
	return g.posMap.Get(e).Vec2, true
}

// ScoreLine is the game-over headline.
func ScoreLine(fed int) string {
	return "We ate " + english.Plural(fed, "cabbage", "")
}

// SurvivalLine reports how long the session lasted.
func SurvivalLine(survived float32) string {
	d := time.Duration(float64(survived) * float64(time.Second)).Round(time.Second)
	return "The flock held out for " + d.String()
}
