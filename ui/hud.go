package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/game"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Status game.Status
	FPS    int32
	Best   string // best stored session, empty when history is off
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	s := data.Status
	x, y := r.Theme.Padding, r.Theme.Padding

	rl.DrawText(fmt.Sprintf("Cabbages: %d", s.Fed), x, y, r.Theme.HeaderFontSize, r.Theme.Header)
	y += r.Theme.HeaderFontSize + 4

	survived := time.Duration(float64(s.Elapsed) * float64(time.Second)).Round(time.Second)
	y = r.DrawLabelValue(x, y, "Time", survived.String())
	y = r.DrawLabelValue(x, y, "Sheep", fmt.Sprintf("%d", s.Sheep))
	y = r.DrawLabelValue(x, y, "Wolves", fmt.Sprintf("%d / %d", s.Wolves, s.WolfCap))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	if data.Best != "" {
		r.DrawLabelValue(x, y, "Best", data.Best)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("WASD/arrows: move | B: bleat | click: inspect | F3: perf | F11: fullscreen", 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-system timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y
	ids := p.registry.IDs()
	p.renderer.DrawPanel(x-6, y-6, 260, int32(len(ids))*14+60)

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s p95 %s (%.0f/s)", stats.AvgTick.Round(time.Microsecond), stats.P95Tick.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16
	if stats.OverBudget > 0 {
		rl.DrawText(fmt.Sprintf("Over budget: %.0f%% of ticks", stats.OverBudget*100), x, y, 12, rl.Red)
		y += 14
	}

	for _, id := range ids {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
