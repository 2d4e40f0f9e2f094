package main

import (
	"math/rand"

	"github.com/pthm-cable/cannon/components"
	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/game"
)

// DropParams holds the slider values for one preview shot.
type DropParams struct {
	Gravity    float32
	Friction   float32
	Speed      float32 // Initial vertical speed
	FireHeight float32
	Floors     int
	Removal    bool
}

// defaultParams mirrors the embedded config.
func defaultParams(cfg *config.Config) DropParams {
	return DropParams{
		Gravity:    float32(cfg.Environment.Gravity),
		Friction:   float32(cfg.Environment.Friction),
		Speed:      float32(cfg.Particle.DefaultSpeed),
		FireHeight: float32(cfg.Cannon.FirePosition[1]),
		Floors:     cfg.Pyramid.Floors,
		Removal:    cfg.Environment.RemoveParticles,
	}
}

// Trace is the recorded flight of a single particle.
type Trace struct {
	Heights   []float64
	Colors    []components.ColorState
	Floors    []components.Floor
	Bounces   int
	RemovedAt int64 // 0 while the particle is still alive
}

// Apply writes p into a copy of base.
func (p DropParams) Apply(base *config.Config) *config.Config {
	cfg := *base
	cfg.Environment.Gravity = float64(p.Gravity)
	cfg.Environment.Friction = float64(p.Friction)
	cfg.Environment.RemoveParticles = p.Removal
	cfg.Particle.DefaultSpeed = float64(p.Speed)
	cfg.Cannon.FirePosition[1] = float64(p.FireHeight)
	cfg.Cannon.SpreadRandomness = 0
	cfg.Cannon.RandomSpeed = false
	cfg.Cannon.ContinuousFire = false
	cfg.Pyramid.Floors = p.Floors
	return &cfg
}

// simulateDrop fires one particle straight down the pyramid axis and
// records its height every tick until it is removed or ticks run out.
func simulateDrop(base *config.Config, p DropParams, ticks int) Trace {
	w := game.NewWorld(p.Apply(base), rand.New(rand.NewSource(1)))
	id := w.Fire()

	tr := Trace{Floors: w.Floors()}
	for i := 0; i < ticks; i++ {
		report := w.Step()
		tr.Bounces += report.Bounces
		if report.Removed() > 0 {
			tr.RemovedAt = w.Tick()
			break
		}
		pt, ok := w.Particle(id)
		if !ok {
			break
		}
		tr.Heights = append(tr.Heights, pt.Position.Y())
		tr.Colors = append(tr.Colors, pt.Color)
	}
	return tr
}

// heightRange returns the vertical extent to plot, covering the fire
// height and every floor.
func (t Trace) heightRange(fireHeight float64) (lo, hi float64) {
	lo, hi = fireHeight, fireHeight
	for _, h := range t.Heights {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	for _, f := range t.Floors {
		lo = min(lo, f.Elevation)
	}
	if hi-lo < 1 {
		hi = lo + 1
	}
	return lo, hi
}
