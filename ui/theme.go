// Package ui draws the flock, the HUD and the game-over panel with raylib.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background  rl.Color
	Field       rl.Color
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color

	Sheep   rl.Color
	Human   rl.Color
	Walker  rl.Color
	Wolf    rl.Color
	Hunting rl.Color
	Cabbage rl.Color
	Bubble  rl.Color
	Spark   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  rl.Color{R: 58, G: 92, B: 48, A: 255},
		Field:       rl.Color{R: 86, G: 130, B: 64, A: 255},
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		LabelColor:  rl.LightGray,
		ValueColor:  rl.RayWhite,

		Sheep:   rl.Color{R: 240, G: 240, B: 232, A: 255},
		Human:   rl.Color{R: 255, G: 214, B: 92, A: 255},
		Walker:  rl.Color{R: 210, G: 210, B: 200, A: 255},
		Wolf:    rl.Color{R: 90, G: 90, B: 100, A: 255},
		Hunting: rl.Color{R: 150, G: 60, B: 60, A: 255},
		Cabbage: rl.Color{R: 120, G: 200, B: 90, A: 255},
		Bubble:  rl.Color{R: 255, G: 255, B: 255, A: 220},
		Spark:   rl.Color{R: 255, G: 240, B: 200, A: 255},

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		FontSize:       14,
		HeaderFontSize: 20,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawLabelValue draws a label and value on the same line and returns the
// next line's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawCentered draws text horizontally centered on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}
