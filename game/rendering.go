package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cannon/components"
	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/renderer"
	"github.com/pthm-cable/cannon/ui"
)

const controlsLegend = "[F] fire  [P] pause  [R] reset  [G] log  [1-6] camera  [7-0] cannon  [Q/W] floors  [Tab] panel"

// String returns the display name of the appearance.
func (a Appearance) String() string {
	switch a {
	case AppearanceSolidCube:
		return "Solid cube"
	case AppearanceWireCube:
		return "Wire cube"
	case AppearanceSolidSphere:
		return "Solid sphere"
	case AppearanceWireSphere:
		return "Wire sphere"
	default:
		return "Unknown"
	}
}

// Shape maps the appearance to the renderer primitive.
func (a Appearance) Shape() renderer.Shape {
	return renderer.Shape{
		Sphere: a == AppearanceSolidSphere || a == AppearanceWireSphere,
		Wire:   a == AppearanceWireCube || a == AppearanceWireSphere,
	}
}

// presetChoices tracks the selected entry of each preset table for cycling.
type presetChoices struct {
	gravity, friction, size, randomness, speed, appearance int
}

// initialChoices finds the preset entries matching the configured defaults.
func initialChoices(cfg *config.Config) presetChoices {
	return presetChoices{
		gravity:    choiceOf(cfg.Presets.Gravity, cfg.Environment.Gravity),
		friction:   choiceOf(cfg.Presets.Friction, cfg.Environment.Friction),
		size:       choiceOf(cfg.Presets.Size, cfg.Cannon.Scale),
		randomness: choiceOf(cfg.Presets.Randomness, cfg.Cannon.SpreadRandomness),
		speed:      choiceOf(cfg.Presets.Refresh, cfg.Environment.RefreshMillis),
		appearance: cfg.Viewer.Appearance,
	}
}

// choiceOf returns the 1-based position of v in table, or 0 when absent.
func choiceOf[T comparable](table []T, v T) int {
	for i, t := range table {
		if t == v {
			return i + 1
		}
	}
	return 0
}

// applyAction runs one command from the controls panel.
func (g *Game) applyAction(a ui.Action) {
	p := g.cfg.Presets
	c := &g.choices

	switch a {
	case ui.ActionFire:
		g.Fire()
	case ui.ActionReset:
		g.reset()
	case ui.ActionAddFloor:
		g.world.AddFloor()
	case ui.ActionRemoveFloor:
		g.world.RemoveFloor()
	case ui.ActionCycleGravity:
		c.gravity = Next(c.gravity, len(p.Gravity))
		g.world.SelectGravity(c.gravity)
	case ui.ActionCycleFriction:
		c.friction = Next(c.friction, len(p.Friction))
		g.world.SelectFriction(c.friction)
	case ui.ActionCycleSize:
		c.size = Next(c.size, len(p.Size))
		g.world.SelectSize(c.size)
	case ui.ActionCycleRandomness:
		c.randomness = Next(c.randomness, len(p.Randomness))
		g.world.SelectRandomness(c.randomness)
	case ui.ActionCycleSpeed:
		c.speed = Next(c.speed, len(p.Refresh))
		g.world.SelectAnimationSpeed(c.speed)
	case ui.ActionCycleAppearance:
		c.appearance = Next(c.appearance, int(AppearanceWireSphere))
		g.world.SelectAppearance(c.appearance)
	}
}

// applyToggles flips every environment switch that differs from t.
func (g *Game) applyToggles(t ui.Toggles) {
	env := g.world.Environment()
	if t.Paused != env.Paused {
		g.world.TogglePause()
	}
	if t.ContinuousFire != env.ContinuousFire {
		g.world.ToggleContinuousFire()
	}
	if t.RandomSpeed != env.RandomSpeed {
		g.world.ToggleRandomSpeed()
	}
	if t.RemoveParticles != env.RemoveParticles {
		g.world.ToggleRemoval()
	}
	if t.Collisions != env.Collisions {
		g.world.ToggleCollisions()
	}
	if t.Paths != env.Paths {
		g.world.TogglePaths()
	}
}

// Draw renders the scene and the overlays.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	env := g.world.Environment()
	particles := make([]components.Particle, 0, g.world.Count())
	g.world.EachParticle(func(p components.Particle) {
		particles = append(particles, p)
	})

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.scene.Draw(renderer.Frame{
		Camera:       g.camera,
		Floors:       g.world.Floors(),
		Particles:    particles,
		FirePosition: env.FirePosition,
		Shape:        env.Appearance.Shape(),
		Paths:        env.Paths,
	})

	counts := g.world.ColorCounts()
	g.hud.Draw(ui.HUDData{
		Title:     "Particle Cannon",
		Particles: len(particles),
		Neutral:   counts.Neutral,
		Bounced:   counts.Bounced,
		Dying:     counts.Dying,
		Floors:    env.Floors,
		Tick:      g.world.Tick(),
		Gravity:   env.Gravity,
		Friction:  env.Friction,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    env.Paused,
	})

	if g.showPanel {
		perf := g.perfCollector.Stats()
		g.hud.DrawPerf(ui.PerfPanelData{
			PhaseTimes: perf.PhaseAvg,
			Total:      perf.AvgTickDuration,
			P95:        perf.P95TickDuration,
			Registry:   g.registry,
		})

		result := g.controls.Draw(ui.ControlsState{
			Toggles: ui.Toggles{
				Paused:          env.Paused,
				ContinuousFire:  env.ContinuousFire,
				RandomSpeed:     env.RandomSpeed,
				RemoveParticles: env.RemoveParticles,
				Collisions:      env.Collisions,
				Paths:           env.Paths,
			},
			Gravity:    env.Gravity,
			Friction:   env.Friction,
			Scale:      env.Scale,
			Spread:     env.SpreadRandomness,
			RefreshMs:  env.RefreshMillis,
			Appearance: env.Appearance.String(),
			Floors:     env.Floors,
		})
		g.applyToggles(result.Toggles)
		for _, a := range result.Actions {
			g.applyAction(a)
		}
	}

	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)

	rl.EndDrawing()
}

