package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cannon/systems"
)

// HUDData is the simulation state shown in the top-left panel.
type HUDData struct {
	Title     string
	Particles int
	Neutral   int
	Bounced   int
	Dying     int
	Floors    int
	Tick      int64
	Gravity   float64
	Friction  float64
	Speed     int
	FPS       int32
	Paused    bool
}

// HUD draws the status panel, the perf panel and the key legend.
type HUD struct {
	renderer *Renderer
	perf     *PerfPanel
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		perf:     NewPerfPanel(10, 190),
		x:        10,
		y:        10,
		width:    230,
	}
}

// Draw renders the status panel.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding

	r.DrawPanel(h.x, h.y, h.width, 170)
	x, y := h.x+pad, h.y+pad

	rl.DrawText(data.Title, x, y, 18, r.Theme.ValueColor)
	y += 24

	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Colors", fmt.Sprintf("%d / %d / %d", data.Neutral, data.Bounced, data.Dying))
	y = r.DrawLabelValue(x, y, "Gravity", fmt.Sprintf("%.3f", data.Gravity))
	y = r.DrawLabelValue(x, y, "Friction", fmt.Sprintf("%.2f", data.Friction))
	y = r.DrawLabelValue(x, y, "Floors", fmt.Sprintf("%d", data.Floors))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d (%dx, %d fps)", data.Tick, data.Speed, data.FPS))

	if data.Paused {
		rl.DrawText("PAUSED", x, y+2, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	}
}

// DrawPerf renders the phase timing panel.
func (h *HUD) DrawPerf(data PerfPanelData) {
	h.perf.Draw(data)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, h.x, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds the phase timings to display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	P95        time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel lists the step phases with their share of the step.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders one row per registered phase in step order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	if data.Registry == nil {
		return
	}
	r := p.renderer
	pad := r.Theme.Padding
	phases := data.Registry.All()

	r.DrawPanel(p.x, p.y, 230, int32(len(phases))*14+64)
	x, y := p.x+pad, p.y+pad

	y = r.DrawSectionHeader(x, y, "Step Phases")
	y = r.DrawLabelValue(x, y, "Step", fmt.Sprintf("%s (p95 %s)", data.Total.Round(time.Microsecond), data.P95.Round(time.Microsecond)))

	for _, info := range phases {
		avg := data.PhaseTimes[info.ID]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += 14
	}
}
