// Bounce preview tool - plots the height of a single shot against time
// while the physics parameters are tuned with sliders.
//
// Usage: go run ./cmd/bouncepreview
package main

import (
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cannon/components"
	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/renderer"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotWidth    = 600
	plotHeight   = 600
	panelWidth   = windowWidth - plotWidth - 40
	traceTicks   = 1500
)

func main() {
	base, err := config.Defaults()
	if err != nil {
		log.Fatalf("failed to load defaults: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Bounce Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(base)
	var trace Trace
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			trace = simulateDrop(base, params, traceTicks)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot(trace, float64(params.FireHeight))

		statsY := int32(plotHeight + 25)
		removed := "alive"
		if trace.RemovedAt > 0 {
			removed = fmt.Sprintf("tick %d", trace.RemovedAt)
		}
		rl.DrawText(fmt.Sprintf("Bounces: %d  Removed: %s", trace.Bounces, removed), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Ticks plotted: %d", len(trace.Heights)), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(plotWidth + 30)
		panelY := float32(10)

		rl.DrawText("Drop Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, lo, hi string, value, minV, maxV float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				lo, hi, value, minV, maxV,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if v != value {
				needsRegen = true
			}
			return v
		}

		params.Gravity = slider("Gravity (speed lost per tick)", "0", "1.6", params.Gravity, 0, 1.6, "%.3f")
		params.Friction = slider("Friction (bounce damping)", "0", "3.2", params.Friction, 0, 3.2, "%.2f")
		params.Speed = slider("Initial vertical speed", "-3", "1", params.Speed, -3, 1, "%.2f")
		params.FireHeight = slider("Fire height", "-5", "40", params.FireHeight, -5, 40, "%.1f")

		floors := slider("Floors", "0", "10", float32(params.Floors), 0, 10, "%.0f")
		if int(floors) != params.Floors {
			params.Floors = int(floors)
		}

		removal := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 16, Height: 16}, "Remove settled particles", params.Removal)
		if removal != params.Removal {
			params.Removal = removal
			needsRegen = true
		}
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(base)
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// yamlLines renders the parameters as a config overlay.
func yamlLines(p DropParams) []string {
	return []string{
		"environment:",
		fmt.Sprintf("  gravity: %.3f", p.Gravity),
		fmt.Sprintf("  friction: %.2f", p.Friction),
		fmt.Sprintf("  remove_particles: %v", p.Removal),
		"particle:",
		fmt.Sprintf("  default_speed: %.2f", p.Speed),
		"pyramid:",
		fmt.Sprintf("  floors: %d", p.Floors),
	}
}

// drawPlot draws the floors as horizontal lines and the trace as a
// polyline colored by the particle state at each tick.
func drawPlot(t Trace, fireHeight float64) {
	const x0, y0 = 10, 10
	rl.DrawRectangle(x0, y0, plotWidth, plotHeight, rl.Black)
	rl.DrawRectangleLines(x0, y0, plotWidth, plotHeight, rl.DarkGray)

	lo, hi := t.heightRange(fireHeight)
	toY := func(h float64) int32 {
		return y0 + int32((hi-h)/(hi-lo)*float64(plotHeight-1))
	}
	toX := func(i int) int32 {
		return x0 + int32(float64(i)/float64(traceTicks)*float64(plotWidth-1))
	}

	for i, f := range t.Floors {
		c := renderer.FloorColor
		c.A = renderer.FloorAlpha(i, len(t.Floors))
		y := toY(f.Elevation)
		rl.DrawLine(x0, y, x0+plotWidth, y, c)
		rl.DrawText(fmt.Sprintf("%.1f", f.Elevation), x0+4, y-14, 10, rl.LightGray)
	}

	for i := 1; i < len(t.Heights); i++ {
		p := components.Particle{Color: t.Colors[i], Life: 100}
		rl.DrawLine(toX(i-1), toY(t.Heights[i-1]), toX(i), toY(t.Heights[i]), renderer.ParticleColor(&p))
	}
}
