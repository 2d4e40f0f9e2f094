package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/config"
)

// ErrInvalidFriction is returned when a friction value would divide by zero in a bounce.
var ErrInvalidFriction = config.ErrInvalidFriction

// Appearance selects how the viewer draws particles.
type Appearance int

const (
	AppearanceSolidCube Appearance = iota + 1
	AppearanceWireCube
	AppearanceSolidSphere
	AppearanceWireSphere
)

// Environment holds the externally controlled simulation parameters.
type Environment struct {
	Gravity         float64
	Friction        float64
	RemoveParticles bool
	Collisions      bool
	Paths           bool
	Paused          bool

	FirePosition     mgl64.Vec3
	SpreadRandomness float64
	Scale            float64
	ContinuousFire   bool
	RandomSpeed      bool

	Floors        int
	RefreshMillis int
	Appearance    Appearance
}

// DefaultEnvironment returns the environment a reset restores.
func DefaultEnvironment(cfg *config.Config) Environment {
	fp := cfg.Cannon.FirePosition
	return Environment{
		Gravity:          cfg.Environment.Gravity,
		Friction:         cfg.Environment.Friction,
		RemoveParticles:  cfg.Environment.RemoveParticles,
		Collisions:       cfg.Environment.Collisions,
		Paths:            cfg.Environment.Paths,
		FirePosition:     mgl64.Vec3{fp[0], fp[1], fp[2]},
		SpreadRandomness: cfg.Cannon.SpreadRandomness,
		Scale:            cfg.Cannon.Scale,
		ContinuousFire:   cfg.Cannon.ContinuousFire,
		RandomSpeed:      cfg.Cannon.RandomSpeed,
		Floors:           cfg.Pyramid.Floors,
		RefreshMillis:    cfg.Environment.RefreshMillis,
		Appearance:       Appearance(cfg.Viewer.Appearance),
	}
}

// SetFriction sets the bounce friction. Values at or below -1 are rejected
// and leave the environment unchanged.
func (e *Environment) SetFriction(f float64) error {
	if f <= -1 {
		return fmt.Errorf("friction %v: %w", f, ErrInvalidFriction)
	}
	e.Friction = f
	return nil
}

// preset returns table[choice-1]. Choices outside the table are reported as not found.
func preset[T any](table []T, choice int) (T, bool) {
	var zero T
	if choice < 1 || choice > len(table) {
		return zero, false
	}
	return table[choice-1], true
}

// Presets wraps the discrete selector tables from config.
type Presets struct {
	table config.PresetsConfig
}

// NewPresets creates presets from the config tables.
func NewPresets(cfg *config.Config) Presets {
	return Presets{table: cfg.Presets}
}

// SelectGravity applies gravity preset choice (1-based). Unknown choices are no-ops.
func (p Presets) SelectGravity(e *Environment, choice int) bool {
	g, ok := preset(p.table.Gravity, choice)
	if ok {
		e.Gravity = g
	}
	return ok
}

// SelectFriction applies friction preset choice (1-based). Unknown choices are no-ops.
func (p Presets) SelectFriction(e *Environment, choice int) bool {
	f, ok := preset(p.table.Friction, choice)
	if !ok {
		return false
	}
	return e.SetFriction(f) == nil
}

// SelectSize applies particle size preset choice (1-based). Unknown choices are no-ops.
func (p Presets) SelectSize(e *Environment, choice int) bool {
	s, ok := preset(p.table.Size, choice)
	if ok {
		e.Scale = s
	}
	return ok
}

// SelectRandomness applies spread randomness preset choice (1-based). Unknown choices are no-ops.
func (p Presets) SelectRandomness(e *Environment, choice int) bool {
	r, ok := preset(p.table.Randomness, choice)
	if ok {
		e.SpreadRandomness = r
	}
	return ok
}

// SelectAnimationSpeed applies an animation speed choice: 1 slow, 2 default, 3 fast, 4 toggles pause.
func (p Presets) SelectAnimationSpeed(e *Environment, choice int) bool {
	if choice == len(p.table.Refresh)+1 {
		e.Paused = !e.Paused
		return true
	}
	ms, ok := preset(p.table.Refresh, choice)
	if ok {
		e.RefreshMillis = ms
	}
	return ok
}

// SelectAppearance applies an appearance choice (1-4). Unknown choices are no-ops.
func (p Presets) SelectAppearance(e *Environment, choice int) bool {
	a := Appearance(choice)
	if a < AppearanceSolidCube || a > AppearanceWireSphere {
		return false
	}
	e.Appearance = a
	return true
}

// Next returns the choice after current in a table of n entries, wrapping to 1.
func Next(current, n int) int {
	if n <= 0 {
		return 0
	}
	return current%n + 1
}
