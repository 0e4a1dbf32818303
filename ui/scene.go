package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/effects"
	"github.com/pthm-cable/flock/game"
)

// Agent sizes in world units.
const (
	sheepRadius   = 8
	wolfRadius    = 10
	cabbageRadius = 6
	bubbleRadius  = 7
)

// Scene draws the play field from the game's agent view.
type Scene struct {
	renderer *Renderer
	cam      *camera.Camera
}

// NewScene creates a scene drawn through cam.
func NewScene(cam *camera.Camera) *Scene {
	return &Scene{renderer: NewRenderer(), cam: cam}
}

// Draw renders the field, agents, bubbles and particles.
func (s *Scene) Draw(g *game.Game) {
	th := s.renderer.Theme
	rl.ClearBackground(th.Background)

	bounds := g.Config().Derived.Bounds
	x0, y0 := s.cam.WorldToScreen(bounds.Min)
	x1, y1 := s.cam.WorldToScreen(bounds.Max)
	rl.DrawRectangle(int32(x0), int32(y1), int32(x1-x0), int32(y0-y1), th.Field)

	g.Agents(func(v game.AgentView) {
		if !s.cam.IsVisible(v.Pos, wolfRadius) {
			return
		}
		x, y := s.cam.WorldToScreen(v.Pos)
		switch v.Kind {
		case game.KindCabbage:
			rl.DrawCircle(int32(x), int32(y), s.cam.Scale(cabbageRadius), th.Cabbage)
		case game.KindWolf:
			color := th.Wolf
			if v.Hunting {
				color = th.Hunting
			}
			s.drawBody(x, y, s.cam.Scale(wolfRadius), v, color)
		case game.KindWalker:
			s.drawBody(x, y, s.cam.Scale(sheepRadius), v, th.Walker)
		default:
			color := th.Sheep
			if v.Human {
				color = th.Human
			}
			s.drawBody(x, y, s.cam.Scale(sheepRadius), v, color)
			if v.Human {
				rl.DrawCircleLines(int32(x), int32(y), s.cam.Scale(sheepRadius+3), th.Human)
			}
		}
	})

	board := g.Effects()
	board.Bubbles(func(b effects.Bubble) {
		x, y := s.cam.WorldToScreen(b.Pos)
		r := s.cam.Scale(bubbleRadius)
		y -= s.cam.Scale(sheepRadius) + r
		rl.DrawCircle(int32(x), int32(y), r, th.Bubble)
		if b.Human {
			rl.DrawCircleLines(int32(x), int32(y), r, th.Human)
		}
	})

	for _, p := range board.Particles() {
		x, y := s.cam.WorldToScreen(p.Pos)
		alpha := uint8(255 * p.Life / p.MaxLife)
		c := th.Spark
		c.A = alpha
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, s.cam.Scale(p.Size*0.5), c)
	}
}

// drawBody draws an agent as a circle with a head on the side it faces.
func (s *Scene) drawBody(x, y, r float32, v game.AgentView, color rl.Color) {
	rl.DrawCircle(int32(x), int32(y), r, color)
	dir := float32(1)
	if v.FacingLeft {
		dir = -1
	}
	head := rl.Vector2{X: x + dir*r*0.8, Y: y - r*0.3}
	if v.Moving {
		head.Y -= r * 0.15
	}
	rl.DrawCircleV(head, r*0.45, rl.Color{R: 40, G: 40, B: 40, A: 255})
}
