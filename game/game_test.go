package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/telemetry"
)

func TestHeadlessGameFlushesWindows(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats

	g, err := NewGameWithOptions(Options{
		Seed:           7,
		StatsWindow:    10,
		OutputDir:      dir,
		Headless:       true,
		StepsPerUpdate: 5,
		ContinuousFire: true,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}

	for i := 0; i < 6; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if g.Tick() != 30 {
		t.Errorf("Tick() = %d, want 30", g.Tick())
	}
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	for i, w := range windows {
		if w.Spawned != 10 {
			t.Errorf("window %d spawned %d, want 10", i, w.Spawned)
		}
		if w.WindowEndTick != int64(10*(i+1)) {
			t.Errorf("window %d ends at %d, want %d", i, w.WindowEndTick, 10*(i+1))
		}
	}
	if windows[2].Particles != g.World().Count() {
		t.Errorf("last window particles = %d, world has %d", windows[2].Particles, g.World().Count())
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "metrics.prom"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
}

func TestHeadlessGameWithoutOutput(t *testing.T) {
	g, err := NewGameWithOptions(Options{Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	g.Fire()
	g.UpdateHeadless()

	if g.Tick() != 1 {
		t.Errorf("Tick() = %d, want 1", g.Tick())
	}
	if g.World().Count() != 1 {
		t.Errorf("Count() = %d, want 1", g.World().Count())
	}
}

func TestGamePausedDoesNotStep(t *testing.T) {
	g, err := NewGameWithOptions(Options{Headless: true, StepsPerUpdate: 3})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	g.Fire()
	g.World().TogglePause()
	g.UpdateHeadless()

	if g.Tick() != 0 {
		t.Errorf("Tick() = %d while paused, want 0", g.Tick())
	}
}

func TestGameResetClearsTracking(t *testing.T) {
	g, err := NewGameWithOptions(Options{Headless: true, ContinuousFire: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	g.UpdateHeadless()
	g.UpdateHeadless()
	g.reset()

	if g.Tick() != 0 || g.World().Count() != 0 {
		t.Errorf("tick %d count %d after reset", g.Tick(), g.World().Count())
	}
	if g.lifetimes.Count() != 0 {
		t.Errorf("tracked lifetimes = %d after reset", g.lifetimes.Count())
	}
	if g.World().Environment().ContinuousFire {
		t.Error("reset should restore the configured fire mode")
	}
}

func TestStartFiresOnlyWithoutContinuousFire(t *testing.T) {
	tests := []struct {
		name       string
		configFire bool
		optionFire bool
		want       int
	}{
		{"manual", false, false, 1},
		{"continuous from config", true, false, 0},
		{"continuous from options", false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.MustDefaults()
			cfg.Cannon.ContinuousFire = tt.configFire

			g, err := NewGameWithOptions(Options{
				Config:         cfg,
				Seed:           1,
				Headless:       true,
				ContinuousFire: tt.optionFire,
			})
			if err != nil {
				t.Fatalf("NewGameWithOptions: %v", err)
			}
			defer g.Unload()

			g.Start()

			if n := g.World().Count(); n != tt.want {
				t.Errorf("Count() after Start = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	cfg := config.MustDefaults()
	cfg.Particle.InitialLife = 0

	if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); err == nil {
		t.Error("expected error for zero initial life")
	}
}
