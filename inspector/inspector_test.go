package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/vmath"
)

func TestParseTag(t *testing.T) {
	w, opts := ParseTag("bar,max:200")
	assert.Equal(t, WidgetBar, w)
	assert.Equal(t, "200", opts["max"])
	assert.Equal(t, float32(200), GetMax(opts))

	w, _ = ParseTag("")
	assert.Equal(t, WidgetAuto, w)
	assert.Equal(t, float32(1), GetMax(nil))
}

func TestExtractFieldsSheepMind(t *testing.T) {
	mind := components.SheepMind{
		State:     components.Moving,
		Neighbors: []vmath.Vec2{{X: 1}, {X: 2}},
		Goal:      vmath.V(10, -5),
		Speed:     25,
		Cycle:     components.NewTimer(0.5, components.Repeating),
	}
	mind.Cycle.Tick(0.25)

	fields := ExtractFields(&mind)
	require.Len(t, fields, 5)

	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "moving", FormatValue(byName["State"].Value, ""))
	assert.Equal(t, WidgetCount, byName["Neighbors"].Widget)
	assert.Equal(t, "2", FormatValue(byName["Neighbors"].Value, ""))
	assert.Equal(t, "(10.0, -5.0)", FormatValue(byName["Goal"].Value, ""))
	assert.Equal(t, "25.0", FormatValue(byName["Speed"].Value, byName["Speed"].Options["fmt"]))

	cycle := byName["Cycle"]
	assert.Equal(t, WidgetBar, cycle.Widget)
	v, ok := GetFloatValue(cycle.Value)
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-6)
}

func TestExtractFieldsEmbedded(t *testing.T) {
	fields := ExtractFields(components.At(3, 4))
	require.Len(t, fields, 1)
	assert.Equal(t, "(3.0, 4.0)", FormatValue(fields[0].Value, ""))
	assert.Nil(t, ExtractFields(42))
}

func TestInspectorSelectsSheep(t *testing.T) {
	g, err := game.NewGame(game.Options{Config: config.Default(), Seed: 3})
	require.NoError(t, err)
	defer g.Close()

	var target vmath.Vec2
	found := false
	g.Agents(func(v game.AgentView) {
		if !found && v.Kind == game.KindSheep && !v.Human {
			target, found = v.Pos, true
		}
	})
	require.True(t, found)

	ins := New()
	require.True(t, ins.Select(g, target.Add(vmath.V(1, 1))))

	sections, ok := ins.Sections(g)
	require.True(t, ok)
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, "Position", names[0])
	assert.Contains(t, names, "Mind")
	assert.Contains(t, names, "Bleat")
	assert.NotContains(t, names, "Wolf")

	ins.Deselect()
	_, ok = ins.Sections(g)
	assert.False(t, ok)
}

func TestInspectorDropsRemovedAgent(t *testing.T) {
	g, err := game.NewGame(game.Options{Config: config.Default(), Seed: 3})
	require.NoError(t, err)
	defer g.Close()

	pos, ok := g.HumanPos()
	require.True(t, ok)

	ins := New()
	require.True(t, ins.Select(g, pos))

	// Reset clears the world, so the selection refers to a dead entity.
	g.Reset()
	_, ok = ins.Sections(g)
	assert.False(t, ok)
	_, ok = ins.Selected()
	assert.False(t, ok)
}

func TestSelectEmptyGround(t *testing.T) {
	g, err := game.NewGame(game.Options{Config: config.Default(), Seed: 3})
	require.NoError(t, err)
	defer g.Close()

	ins := New()
	// Far outside the wrap area.
	assert.False(t, ins.Select(g, vmath.V(5000, 5000)))
}
