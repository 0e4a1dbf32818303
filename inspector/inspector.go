// Package inspector tracks a selected agent and turns its components into
// labelled fields for the debug panel.
package inspector

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/vmath"
)

// PickRadius is how close, in world units, a click must land to an agent.
const PickRadius = 12

// Section is one inspected component.
type Section struct {
	Name   string
	Fields []Field
}

// Inspector manages agent selection.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
}

// New creates an inspector with nothing selected.
func New() *Inspector {
	return &Inspector{}
}

// Select picks the agent nearest p. Clicking empty ground deselects.
func (ins *Inspector) Select(g *game.Game, p vmath.Vec2) bool {
	e, ok := g.Pick(p, PickRadius)
	ins.selected, ins.hasSelected = e, ok
	return ok
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.selected = ecs.Entity{}
	ins.hasSelected = false
}

// Selected returns the selected agent.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Sections returns the selected agent's components as fields. A selection
// whose agent was removed is dropped.
func (ins *Inspector) Sections(g *game.Game) ([]Section, bool) {
	if !ins.hasSelected {
		return nil, false
	}
	comps, ok := g.Inspect(ins.selected)
	if !ok {
		ins.Deselect()
		return nil, false
	}

	sections := make([]Section, len(comps))
	for i, c := range comps {
		sections[i] = Section{Name: c.Name, Fields: ExtractFields(c.Value)}
	}
	return sections, true
}
