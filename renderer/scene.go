// Package renderer draws the pyramid scene with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/camera"
	"github.com/pthm-cable/cannon/components"
)

// FloorColor is the base floor color. Alpha is set per floor.
var FloorColor = rl.Color{R: 186, G: 126, B: 207, A: 255}

// Floor slab thickness
const floorThickness = 0.2

// Frame is everything the scene needs to draw one frame.
type Frame struct {
	Camera       *camera.Camera
	Floors       []components.Floor
	Particles    []components.Particle
	FirePosition mgl64.Vec3
	Shape        Shape
	Paths        bool
}

// Scene draws floors, particles and the cannon marker.
type Scene struct {
	particles *ParticleRenderer
}

// NewScene creates a new scene renderer.
func NewScene() *Scene {
	return &Scene{particles: NewParticleRenderer()}
}

// Draw renders one frame in 3D. The caller owns BeginDrawing/EndDrawing.
func (s *Scene) Draw(f Frame) {
	rl.BeginMode3D(ToCamera3D(f.Camera))

	// Particles first so translucent floors blend over them
	s.particles.Draw(f.Particles, f.Shape, f.Paths)
	drawFloors(f.Floors)
	rl.DrawCubeWires(toVector3(f.FirePosition), 1, 1, 1, rl.LightGray)

	rl.EndMode3D()
}

// FloorAlpha returns the alpha of floor i of n. The bottom floor is opaque
// and higher floors fade out.
func FloorAlpha(i, n int) uint8 {
	if n <= 0 {
		return 0
	}
	depth := n - 1 - i
	return uint8(255 - float64(depth)/float64(n)*255)
}

func drawFloors(floors []components.Floor) {
	for i, f := range floors {
		color := FloorColor
		color.A = FloorAlpha(i, len(floors))
		side := float32(f.HalfExtent * 2)
		rl.DrawCube(rl.Vector3{X: 0, Y: float32(f.Elevation), Z: 0}, side, floorThickness, side, color)
	}
}

// ToCamera3D converts the orbit camera to a raylib perspective camera.
func ToCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position()),
		Target:     toVector3(c.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}
