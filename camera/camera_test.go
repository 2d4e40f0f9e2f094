package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNew(t *testing.T) {
	cam := New(212.5, 25, 50, mgl64.Vec3{0, -20, 0}, 74)

	if cam.Yaw != 212.5 || cam.Height != 25 || cam.Zoom != 50 {
		t.Errorf("unexpected orbit (%v, %v, %v)", cam.Yaw, cam.Height, cam.Zoom)
	}
}

func TestPositionOnOrbit(t *testing.T) {
	cam := New(0, 10, 50, mgl64.Vec3{}, 74)

	pos := cam.Position()
	if math.Abs(pos.X()-50) > 1e-9 || pos.Y() != 10 || math.Abs(pos.Z()) > 1e-9 {
		t.Errorf("expected (50, 10, 0), got %v", pos)
	}

	// Horizontal distance to the axis equals the zoom for any yaw
	for _, yaw := range []float64{0.3, 1.7, 212.5, 359.9} {
		cam.Yaw = yaw
		p := cam.Position()
		r := math.Hypot(p.X(), p.Z())
		if math.Abs(r-50) > 1e-9 {
			t.Errorf("yaw %v: orbit radius %v, want 50", yaw, r)
		}
	}
}

func TestRotateWraps(t *testing.T) {
	tests := []struct {
		name  string
		yaw   float64
		delta float64
		want  float64
	}{
		{"forward", 10, 0.1, 10.1},
		{"backward", 10, -0.1, 9.9},
		{"wrap high", MaxYaw, 0.1, 0},
		{"wrap low", 0, -0.1, MaxYaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.yaw, 0, 10, mgl64.Vec3{}, 74)
			cam.Rotate(tt.delta)
			if math.Abs(cam.Yaw-tt.want) > 1e-9 {
				t.Errorf("Rotate(%v) from %v = %v, want %v", tt.delta, tt.yaw, cam.Yaw, tt.want)
			}
		})
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(0, 0, 5, mgl64.Vec3{}, 74)

	cam.ZoomBy(-100)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(1e6)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MaxZoom, cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(212.5, 25, 50, mgl64.Vec3{0, -20, 0}, 74)

	cam.Rotate(1)
	cam.Raise(-3)
	cam.ZoomBy(4)
	cam.Reset()

	if cam.Yaw != 212.5 || cam.Height != 25 || cam.Zoom != 50 {
		t.Errorf("reset failed: (%v, %v, %v)", cam.Yaw, cam.Height, cam.Zoom)
	}
}
