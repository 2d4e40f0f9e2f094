package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/camera"
	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/renderer"
	"github.com/pthm-cable/cannon/systems"
	"github.com/pthm-cable/cannon/telemetry"
	"github.com/pthm-cable/cannon/ui"
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil uses the embedded defaults
	Seed           int64
	LogStats       bool
	StatsWindow    int // Ticks per stats window, 0 uses config
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	ContinuousFire bool
	Collisions     bool

	// StatsCallback receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Game hosts a World and drives it from a frame loop.
type Game struct {
	cfg   *config.Config
	world *World
	rng   *rand.Rand

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	lifetimes     *telemetry.LifetimeTracker
	metrics       *telemetry.Metrics
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	headless       bool
	stepsPerUpdate int

	// Viewer
	camera    *camera.Camera
	scene     *renderer.Scene
	controls  *ui.Controls
	hud       *ui.HUD
	registry  *systems.SystemRegistry
	choices   presetChoices
	showPanel bool
	sinceStep time.Duration
	lastFrame time.Time
}

// NewGameWithOptions creates a game with the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Defaults()
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:            cfg,
		world:          NewWorld(cfg, rng),
		rng:            rng,
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.RefreshSecs),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimes:      telemetry.NewLifetimeTracker(),
		metrics:        telemetry.NewMetrics(),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		choices:        initialChoices(cfg),
		showPanel:      true,
	}
	g.world.SetPhaseTimer(g.perfCollector)

	env := g.world.Env()
	env.ContinuousFire = env.ContinuousFire || opts.ContinuousFire
	env.Collisions = env.Collisions || opts.Collisions

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Headless {
		v := cfg.Viewer
		g.camera = camera.New(v.Yaw, v.Height, v.Zoom, mgl64.Vec3{v.Target[0], v.Target[1], v.Target[2]}, v.Fovy)
		g.scene = renderer.NewScene()
		g.controls = ui.NewControls(int32(cfg.Screen.Width)-230, 10, 220)
		g.hud = ui.NewHUD()
		g.registry = systems.NewSystemRegistry()
	}

	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// UpdateHeadless runs stepsPerUpdate simulation steps without any input or pacing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Update handles input and runs the steps that are due at the current refresh rate.
func (g *Game) Update() {
	g.handleInput()

	now := time.Now()
	if !g.lastFrame.IsZero() {
		g.sinceStep += now.Sub(g.lastFrame)
	}
	g.lastFrame = now

	period := time.Duration(g.world.Environment().RefreshMillis) * time.Millisecond
	if period <= 0 {
		period = time.Millisecond
	}
	// Never catch up more than one frame's worth of steps
	for n := 0; g.sinceStep >= period && n < g.stepsPerUpdate; n++ {
		g.sinceStep -= period
		g.simulationStep()
	}
	if g.sinceStep > period {
		g.sinceStep = period
	}
}

// simulationStep runs one world step and feeds telemetry.
func (g *Game) simulationStep() {
	if g.world.Environment().Paused {
		return
	}

	start := time.Now()
	g.perfCollector.StartTick()
	report := g.world.Step()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordStep(report, time.Since(start))
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Fire spawns one particle outside the step loop.
func (g *Game) Fire() {
	id := g.world.Fire()
	g.lifetimes.Register(id, g.world.Tick())
	g.collector.RecordSpawn(1)
	g.metrics.RecordSpawn(1)
}

// Start fires one manual shot unless the world is already in continuous fire.
func (g *Game) Start() {
	if !g.world.Environment().ContinuousFire {
		g.Fire()
	}
}

// reset restores the world defaults and forgets tracked lifetimes.
func (g *Game) reset() {
	g.world.Reset()
	g.lifetimes.Clear()
	g.collector.Reset()
	g.choices = initialChoices(g.cfg)
	if g.camera != nil {
		g.camera.Reset()
	}
	slog.Info("reset", "floors", len(g.world.Floors()))
}

// Unload flushes the metrics snapshot and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.WriteMetrics(g.metrics); err != nil {
		slog.Error("failed to write metrics", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.world.Tick()
}
