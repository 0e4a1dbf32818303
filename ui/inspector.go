package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/inspector"
)

// Panel dimensions
const (
	inspectorWidth = 260
	barWidth       = 110
	barHeight      = 12
)

var (
	colorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	colorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	colorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	colorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// InspectorPanel selects agents with the mouse and lists their components.
type InspectorPanel struct {
	renderer *Renderer
	ins      *inspector.Inspector
	cam      *camera.Camera
}

// NewInspectorPanel creates the panel.
func NewInspectorPanel(cam *camera.Camera) *InspectorPanel {
	return &InspectorPanel{renderer: NewRenderer(), ins: inspector.New(), cam: cam}
}

// HandleInput selects on left click and clears on right click or Escape.
func (p *InspectorPanel) HandleInput(g *game.Game) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		p.ins.Deselect()
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		p.ins.Select(g, p.cam.ScreenToWorld(m.X, m.Y))
	}
}

// Draw renders the selected agent's panel at the bottom right and rings
// the agent.
func (p *InspectorPanel) Draw(g *game.Game, screenW, screenH int32) {
	sections, ok := p.ins.Sections(g)
	if !ok {
		return
	}
	th := p.renderer.Theme

	if e, ok := p.ins.Selected(); ok {
		if pos, ok := g.PositionOf(e); ok {
			x, y := p.cam.WorldToScreen(pos)
			rl.DrawCircleLines(int32(x), int32(y), p.cam.Scale(inspector.PickRadius), th.Header)
		}
	}

	rows := int32(0)
	for _, s := range sections {
		rows += 1 + int32(len(s.Fields))
	}
	height := rows*th.LineHeight + 2*th.Padding
	x := screenW - inspectorWidth - th.Padding
	y := screenH - height - 40
	p.renderer.DrawPanel(x, y, inspectorWidth, height)

	x += th.Padding
	y += th.Padding
	for _, s := range sections {
		rl.DrawText(s.Name, x, y, th.FontSize, th.Header)
		y += th.LineHeight
		for _, f := range s.Fields {
			y = p.drawField(x+8, y, f)
		}
	}
}

func (p *InspectorPanel) drawField(x, y int32, f inspector.Field) int32 {
	th := p.renderer.Theme
	switch f.Widget {
	case inspector.WidgetBar:
		v, _ := inspector.GetFloatValue(f.Value)
		ratio := min(max(v/inspector.GetMax(f.Options), 0), 1)
		rl.DrawText(f.Name, x, y, th.FontSize, th.LabelColor)
		bx := x + th.LabelWidth
		rl.DrawRectangle(bx, y+2, barWidth, barHeight, colorBarBg)
		rl.DrawRectangle(bx, y+2, int32(barWidth*ratio), barHeight, colorBarFill)
		rl.DrawText(fmt.Sprintf("%.2f", v), bx+barWidth+6, y, th.FontSize, th.ValueColor)
		return y + th.LineHeight
	case inspector.WidgetBool:
		on, _ := f.Value.(bool)
		color := colorBoolOff
		if on {
			color = colorBoolOn
		}
		rl.DrawText(f.Name, x, y, th.FontSize, th.LabelColor)
		rl.DrawCircle(x+th.LabelWidth+6, y+th.FontSize/2, 5, color)
		return y + th.LineHeight
	default:
		return p.renderer.DrawLabelValue(x, y, f.Name, inspector.FormatValue(f.Value, f.Options["fmt"]))
	}
}
