package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/game"
)

// Action is what the player chose on the game-over panel.
type Action uint8

const (
	ActionNone Action = iota
	ActionRestart
	ActionQuit
)

// GameOverPanel shows the final score with Restart and Quit buttons.
type GameOverPanel struct {
	renderer *Renderer
}

// NewGameOverPanel creates the game-over panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{renderer: NewRenderer()}
}

// Draw renders the panel centered on the screen and returns the chosen action.
func (p *GameOverPanel) Draw(res game.Result, screenW, screenH int32) Action {
	r := p.renderer
	const w, h = 320, 170
	x := screenW/2 - w/2
	y := screenH/2 - h/2

	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 0, G: 0, B: 0, A: 120})
	r.DrawPanel(x, y, w, h)
	r.DrawCentered(game.ScoreLine(res.Fed), screenW/2, y+24, r.Theme.HeaderFontSize, r.Theme.Header)
	r.DrawCentered(game.SurvivalLine(res.Survived), screenW/2, y+56, r.Theme.FontSize, r.Theme.LabelColor)

	bw, bh := float32(120), float32(32)
	by := float32(y + h - 52)
	if gui.Button(rl.Rectangle{X: float32(screenW/2) - bw - 10, Y: by, Width: bw, Height: bh}, "Restart") {
		return ActionRestart
	}
	if gui.Button(rl.Rectangle{X: float32(screenW/2) + 10, Y: by, Width: bw, Height: bh}, "Quit") {
		return ActionQuit
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		return ActionRestart
	}
	return ActionNone
}
