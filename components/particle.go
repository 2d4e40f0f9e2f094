// Package components defines ECS components for the simulation.
package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ColorState is the life stage of a particle. It only ever advances.
type ColorState uint8

const (
	Neutral ColorState = iota // Fired, no floor contact yet
	Bounced                   // Touched at least one floor
	Dying                     // Settled or off the pyramid, life counting down
)

// Next returns the following state, saturating at Dying.
func (c ColorState) Next() ColorState {
	if c >= Dying {
		return Dying
	}
	return c + 1
}

func (c ColorState) String() string {
	switch c {
	case Neutral:
		return "neutral"
	case Bounced:
		return "bounced"
	case Dying:
		return "dying"
	}
	return "unknown"
}

// Tuning holds the per-particle constants shared by every particle of a world.
type Tuning struct {
	InitialLife  int
	RadiusFactor float64 // Collision and floor offset = size * RadiusFactor
	PathInterval int     // Integrations skipped between path samples
	MaxCooldown  int     // Interparticle deflection cycle length
	SettleMargin float64 // Speed <= gravity - margin counts as settled
	Precision    float64 // Bounce speed is rounded to 1/Precision
}

// DefaultTuning matches the reference pyramid simulation.
var DefaultTuning = Tuning{
	InitialLife:  100,
	RadiusFactor: 5,
	PathInterval: 1,
	MaxCooldown:  5,
	SettleMargin: 0.01,
	Precision:    10000,
}

// Particle is a point mass fired from the cannon.
//
// Drift holds the horizontal velocity as (x, z). VerticalSpeed is the only
// gravity-affected component.
type Particle struct {
	ID            int
	Position      mgl64.Vec3
	Drift         mgl64.Vec2
	VerticalSpeed float64
	Size          float64
	Life          int
	Color         ColorState
	Cooldown      int
	Path          PathTrace

	pathCountdown int
	tuning        *Tuning
}

// NewParticle creates a particle at pos with full life and a path seeded at pos.
// A nil tuning uses DefaultTuning.
func NewParticle(id int, pos mgl64.Vec3, drift mgl64.Vec2, verticalSpeed, size float64, tuning *Tuning) Particle {
	if tuning == nil {
		tuning = &DefaultTuning
	}
	p := Particle{
		ID:            id,
		Position:      pos,
		Drift:         drift,
		VerticalSpeed: verticalSpeed,
		Size:          size,
		Life:          tuning.InitialLife,
		Color:         Neutral,
		Cooldown:      tuning.MaxCooldown,
		pathCountdown: tuning.PathInterval,
		tuning:        tuning,
	}
	p.Path.Append(pos)
	return p
}

func (p *Particle) params() *Tuning {
	if p.tuning == nil {
		return &DefaultTuning
	}
	return p.tuning
}

// Radius returns the collision radius used by floor and interparticle tests.
func (p *Particle) Radius() float64 {
	return p.Size * p.params().RadiusFactor
}

// Stationary reports whether the particle has stopped moving vertically.
func (p *Particle) Stationary() bool {
	return p.VerticalSpeed == 0
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Decaying reports whether the life countdown has started.
func (p *Particle) Decaying() bool {
	return p.Life < p.params().InitialLife
}

// Alpha returns the remaining life as a fraction in [0, 1] for fading.
func (p *Particle) Alpha() float64 {
	a := float64(p.Life) / float64(p.params().InitialLife)
	return math.Max(0, math.Min(1, a))
}

// Integrate applies gravity to the vertical speed and moves the particle one tick.
// The path is sampled once every PathInterval+1 calls while the particle moves.
func (p *Particle) Integrate(gravity float64) {
	p.VerticalSpeed -= gravity
	p.Position = p.Position.Add(mgl64.Vec3{p.Drift.X(), p.VerticalSpeed, p.Drift.Y()})

	if p.pathCountdown > 0 {
		p.pathCountdown--
	} else if p.VerticalSpeed != 0 {
		p.Path.Append(p.Position)
		p.pathCountdown = p.params().PathInterval
	}
}

// Bounce places the particle on top of a floor and reflects its damped vertical speed.
// friction must be greater than -1; callers validate it before it reaches the engine.
func (p *Particle) Bounce(floorElevation, friction float64) {
	t := p.params()
	p.Position[1] = floorElevation + p.Radius()
	p.VerticalSpeed = math.Round(t.Precision*(-p.VerticalSpeed/(1+friction))) / t.Precision
}

// DeathCheck reports whether the particle is decaying after a floor contact.
// An already decaying particle loses one life. A particle whose speed has
// settled within gravity of zero is stopped.
func (p *Particle) DeathCheck(gravity float64) bool {
	t := p.params()
	if p.Life < t.InitialLife {
		p.Life--
		return true
	}
	if p.VerticalSpeed <= gravity-t.SettleMargin && p.VerticalSpeed != 0 {
		p.VerticalSpeed = 0
		return true
	}
	return false
}

// KillPlaneCheck marks stationary particles and particles below the lowest floor as dying.
// Life drains while remove is set or while the particle is below the kill plane.
func (p *Particle) KillPlaneCheck(remove bool, lowestFloor float64) {
	below := p.Position.Y() < lowestFloor
	if p.VerticalSpeed == 0 || below {
		p.Color = Dying
		if remove || below {
			p.Life--
		}
	}
}

// Recolor advances the color state by one step.
func (p *Particle) Recolor() {
	p.Color = p.Color.Next()
}

// Deflect negates the selected velocity components when the cooldown is full.
// Every call advances the cooldown, wrapping from 0 back to the maximum.
// It reports whether the flip was applied.
func (p *Particle) Deflect(flipX, flipZ, flipY bool) bool {
	t := p.params()
	applied := p.Cooldown == t.MaxCooldown
	if applied {
		if flipX {
			p.Drift[0] = -p.Drift[0]
		}
		if flipZ {
			p.Drift[1] = -p.Drift[1]
		}
		if flipY {
			p.VerticalSpeed = -p.VerticalSpeed
		}
	}
	if p.Cooldown == 0 {
		p.Cooldown = t.MaxCooldown
	} else {
		p.Cooldown--
	}
	return applied
}
