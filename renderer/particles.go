package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/components"
)

// Shape selects the primitive used for particles.
type Shape struct {
	Sphere bool
	Wire   bool
}

// Particle palette by color state
var (
	NeutralColor = rl.Color{R: 0, G: 162, B: 211, A: 255}
	BouncedColor = rl.Color{R: 250, G: 224, B: 20, A: 255}
	DyingColor   = rl.Color{R: 224, G: 8, B: 133, A: 255}
	PathColor    = rl.Color{R: 255, G: 255, B: 255, A: 255}
)

// Sphere tessellation
const (
	sphereRings  = 10
	sphereSlices = 15
)

// ParticleColor returns the draw color of p, faded by its remaining life.
func ParticleColor(p *components.Particle) rl.Color {
	var c rl.Color
	switch p.Color {
	case components.Bounced:
		c = BouncedColor
	case components.Dying:
		c = DyingColor
	default:
		c = NeutralColor
	}
	c.A = uint8(p.Alpha() * 255)
	return c
}

// ParticleRenderer renders cannon particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all live particles, and their paths when enabled.
// Must be called between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(particles []components.Particle, shape Shape, paths bool) {
	for i := range particles {
		p := &particles[i]
		if !p.Alive() {
			continue
		}

		color := ParticleColor(p)
		pos := toVector3(p.Position)
		// Edge length for cubes, radius for spheres
		size := float32(p.Size * 5)

		switch {
		case shape.Sphere && shape.Wire:
			rl.DrawSphereWires(pos, size, sphereRings, sphereSlices, color)
		case shape.Sphere:
			rl.DrawSphereEx(pos, size, sphereRings, sphereSlices, color)
		case shape.Wire:
			rl.DrawCubeWires(pos, size, size, size, color)
		default:
			rl.DrawCube(pos, size, size, size, color)
		}

		if paths {
			r.drawPath(p, color.A)
		}
	}
}

// drawPath connects the sampled path points with white lines.
func (r *ParticleRenderer) drawPath(p *components.Particle, alpha uint8) {
	color := PathColor
	color.A = alpha
	p.Path.Segments(func(a, b mgl64.Vec3) {
		rl.DrawLine3D(toVector3(a), toVector3(b), color)
	})
}
