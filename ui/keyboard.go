package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/game"
)

// Keyboard reads the player's input from raylib: WASD or arrows to move and
// B to bleat.
type Keyboard struct {
	bleat game.EdgeTrigger
}

// Poll implements game.InputSource.
func (k *Keyboard) Poll(*game.Game) game.Input {
	return game.Input{
		Intent: game.IntentFromKeys(
			rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
			rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
			rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
			rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		),
		Bleat: k.bleat.Update(rl.IsKeyDown(rl.KeyB)),
	}
}
