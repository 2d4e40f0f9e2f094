package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/telemetry"
)

func TestParamRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.MustDefaults())

	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config has %v, spec default %v", spec.Path, got[i], spec.Default)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.MustDefaults()

	pv.ApplyToConfig(cfg, []float64{5, -2, 0.1, 0.3})

	if cfg.Environment.Gravity != 1.6 {
		t.Errorf("gravity = %v, want clamped 1.6", cfg.Environment.Gravity)
	}
	if cfg.Environment.Friction != 0 {
		t.Errorf("friction = %v, want clamped 0", cfg.Environment.Friction)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config invalid: %v", err)
	}
}

func TestComputeQuality(t *testing.T) {
	steady := []telemetry.WindowStats{{Particles: 1}, {Particles: 2}, {Particles: 50}, {Particles: 50}, {Particles: 50}}
	if q := computeQuality(steady); math.Abs(q-1) > 1e-12 {
		t.Errorf("steady population quality = %v, want 1", q)
	}

	swinging := []telemetry.WindowStats{{}, {}, {Particles: 10}, {Particles: 90}}
	if q := computeQuality(swinging); q >= 1 || q <= 0 {
		t.Errorf("swinging population quality = %v, want in (0, 1)", q)
	}

	if q := computeQuality(steady[:2]); q != 0 {
		t.Errorf("warmup-only quality = %v, want 0", q)
	}
}

func TestMeanLifespanWeighted(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 1000, nil, config.MustDefaults(), 100)

	windows := []telemetry.WindowStats{
		{Removed: 1, LifespanMean: 100},
		{Removed: 3, LifespanMean: 200},
		{Removed: 0, LifespanMean: 0},
	}
	if got := fe.meanLifespan(windows); math.Abs(got-175) > 1e-9 {
		t.Errorf("meanLifespan = %v, want 175", got)
	}
	if got := fe.meanLifespan(nil); got != 1000 {
		t.Errorf("meanLifespan without removals = %v, want run length", got)
	}
}

func TestEvaluateInvalidConfig(t *testing.T) {
	cfg := config.MustDefaults()
	cfg.Pyramid.Floors = cfg.Pyramid.MaxFloors + 1

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 50, []int64{1, 2}, cfg, 100)

	if got := fe.Evaluate(pv.DefaultVector()); !math.IsInf(got, 1) {
		t.Errorf("Evaluate with invalid config = %v, want +Inf", got)
	}
}
