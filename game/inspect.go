package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/vmath"
)

// Component is one named component of an inspected agent.
type Component struct {
	Name  string
	Value any
}

// Pick returns the agent nearest p within radius.
func (g *Game) Pick(p vmath.Vec2, radius float32) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := radius * radius
	found := false

	query := g.all.Query()
	for query.Next() {
		if d := query.Get().DistSq(p); d <= bestDist {
			best, bestDist, found = query.Entity(), d, true
		}
	}
	return best, found
}

// Inspect returns copies of e's components, or false once e is gone.
func (g *Game) Inspect(e ecs.Entity) ([]Component, bool) {
	if !g.world.Alive(e) || !g.posMap.Has(e) {
		return nil, false
	}

	comps := []Component{{Name: "Position", Value: *g.posMap.Get(e)}}
	if g.humanMap.Has(e) {
		comps = append(comps, Component{Name: "Player", Value: struct{ Intent vmath.Vec2 }{g.intent}})
	}
	if g.mindMap.Has(e) {
		comps = append(comps, Component{Name: "Mind", Value: *g.mindMap.Get(e)})
	}
	if g.bleatMap.Has(e) {
		comps = append(comps, Component{Name: "Bleat", Value: *g.bleatMap.Get(e)})
	}
	if g.walkerMap.Has(e) {
		comps = append(comps, Component{Name: "Walker", Value: *g.walkerMap.Get(e)})
	}
	if g.wolfMap.Has(e) {
		comps = append(comps, Component{Name: "Wolf", Value: *g.wolfMap.Get(e)})
	}
	return comps, true
}

// PositionOf returns e's position while it is alive.
func (g *Game) PositionOf(e ecs.Entity) (vmath.Vec2, bool) {
	if !g.world.Alive(e) || !g.posMap.Has(e) {
		return vmath.Vec2{}, false
	}
	return g.posMap.Get(e).Vec2, true
}
