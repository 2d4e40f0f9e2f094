package components

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestParticle(y, speed float64) Particle {
	return NewParticle(1, mgl64.Vec3{0, y, 0}, mgl64.Vec2{}, speed, 0.25, nil)
}

func TestNewParticle(t *testing.T) {
	p := newTestParticle(15, -0.01)

	if p.Life != 100 || p.Color != Neutral || p.Cooldown != 5 {
		t.Errorf("unexpected initial state: life %d color %v cooldown %d", p.Life, p.Color, p.Cooldown)
	}
	if p.Path.Len() != 1 || p.Path.Points()[0] != p.Position {
		t.Errorf("path should be seeded with the spawn point, got %v", p.Path.Points())
	}
	if math.Abs(p.Radius()-1.25) > 1e-12 {
		t.Errorf("radius = %v, want 1.25", p.Radius())
	}
}

func TestIntegrateFirstStep(t *testing.T) {
	p := newTestParticle(15, -0.01)
	p.Integrate(0.1)

	if math.Abs(p.VerticalSpeed-(-0.11)) > 1e-9 {
		t.Errorf("speed = %v, want -0.11", p.VerticalSpeed)
	}
	if math.Abs(p.Position.Y()-14.89) > 1e-9 {
		t.Errorf("y = %v, want 14.89", p.Position.Y())
	}
}

func TestIntegrateAppliesDrift(t *testing.T) {
	p := NewParticle(1, mgl64.Vec3{1, 0, 2}, mgl64.Vec2{0.1, -0.05}, 0, 0.25, nil)
	p.Integrate(0)

	want := mgl64.Vec3{1.1, 0, 1.95}
	if !p.Position.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("position = %v, want %v", p.Position, want)
	}
}

func TestPathSampling(t *testing.T) {
	p := newTestParticle(15, -0.01)

	// Interval 1: every second integration records a point
	wantLens := []int{1, 2, 2, 3, 3, 4}
	for i, want := range wantLens {
		p.Integrate(0.1)
		if p.Path.Len() != want {
			t.Errorf("after %d integrations path has %d points, want %d", i+1, p.Path.Len(), want)
		}
	}

	points := p.Path.Points()
	if points[len(points)-1] != p.Position {
		t.Error("last sample should be the current position")
	}
}

func TestPathSkippedWhenStopped(t *testing.T) {
	p := newTestParticle(0, 0.1)
	p.Integrate(0.1) // countdown 1 -> 0, speed now 0
	p.Integrate(0)   // countdown 0 but stationary

	if p.Path.Len() != 1 {
		t.Errorf("stationary particle recorded a path point: %d", p.Path.Len())
	}
}

func TestBounceScenario(t *testing.T) {
	p := newTestParticle(4.9, -0.11)
	p.Bounce(5, 0.2)

	if math.Abs(p.Position.Y()-6.25) > 1e-12 {
		t.Errorf("y = %v, want 6.25", p.Position.Y())
	}
	if math.Abs(p.VerticalSpeed-0.0917) > 1e-12 {
		t.Errorf("speed = %v, want 0.0917", p.VerticalSpeed)
	}
}

func TestBounceDamping(t *testing.T) {
	frictions := []float64{0, 0.05, 0.2, 0.8, 3.2}
	speeds := []float64{-0.01, -0.11, -0.5, -1.234, -2.91, 0.3}

	for _, f := range frictions {
		for _, v := range speeds {
			p := newTestParticle(0, v)
			p.Bounce(0, f)

			// Rounding to 4 places may add at most half a unit
			if math.Abs(p.VerticalSpeed) > math.Abs(v)+0.00005 {
				t.Errorf("f=%v v=%v: |after| %v > |before|", f, v, p.VerticalSpeed)
			}
			if p.VerticalSpeed != 0 && math.Signbit(p.VerticalSpeed) == math.Signbit(v) {
				t.Errorf("f=%v v=%v: sign not reversed (%v)", f, v, p.VerticalSpeed)
			}
		}
	}
}

func TestDeathCheck(t *testing.T) {
	tests := []struct {
		name      string
		life      int
		speed     float64
		gravity   float64
		want      bool
		wantLife  int
		wantSpeed float64
	}{
		{"fast bounce survives", 100, 0.0917, 0.1, false, 100, 0.0917},
		{"slow bounce settles", 100, 0.05, 0.1, true, 100, 0},
		{"exactly at margin settles", 100, 0.09, 0.1, true, 100, 0},
		{"stopped is not settled again", 100, 0, 0.1, false, 100, 0},
		{"decaying loses life", 60, 0.5, 0.1, true, 59, 0.5},
		{"zero gravity keeps bouncing", 100, 0.2, 0, false, 100, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParticle(0, tt.speed)
			p.Life = tt.life

			got := p.DeathCheck(tt.gravity)
			if got != tt.want {
				t.Errorf("DeathCheck = %v, want %v", got, tt.want)
			}
			if p.Life != tt.wantLife {
				t.Errorf("life = %d, want %d", p.Life, tt.wantLife)
			}
			if math.Abs(p.VerticalSpeed-tt.wantSpeed) > 1e-12 {
				t.Errorf("speed = %v, want %v", p.VerticalSpeed, tt.wantSpeed)
			}
		})
	}
}

func TestKillPlaneCheck(t *testing.T) {
	tests := []struct {
		name      string
		y         float64
		speed     float64
		remove    bool
		wantColor ColorState
		wantLife  int
	}{
		{"moving above plane", 0, -0.5, true, Neutral, 100},
		{"stopped with removal", 0, 0, true, Dying, 99},
		{"stopped without removal", 0, 0, false, Dying, 100},
		{"below plane with removal", -20, -0.5, true, Dying, 99},
		{"below plane without removal", -20, -0.5, false, Dying, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParticle(tt.y, tt.speed)
			p.KillPlaneCheck(tt.remove, -15)

			if p.Color != tt.wantColor {
				t.Errorf("color = %v, want %v", p.Color, tt.wantColor)
			}
			if p.Life != tt.wantLife {
				t.Errorf("life = %d, want %d", p.Life, tt.wantLife)
			}
		})
	}
}

func TestColorMonotonic(t *testing.T) {
	c := Neutral
	seen := []ColorState{c}
	for i := 0; i < 5; i++ {
		next := c.Next()
		if next < c {
			t.Fatalf("color regressed from %v to %v", c, next)
		}
		c = next
		seen = append(seen, c)
	}
	if seen[1] != Bounced || seen[2] != Dying || c != Dying {
		t.Errorf("unexpected progression %v", seen)
	}
}

func TestLifeMonotonicOnceDecaying(t *testing.T) {
	p := newTestParticle(0, 0)
	p.Life = 99

	prev := p.Life
	for p.Alive() {
		p.DeathCheck(0.1)
		p.KillPlaneCheck(false, -15)
		if p.Life >= prev {
			t.Fatalf("life did not decrease: %d -> %d", prev, p.Life)
		}
		prev = p.Life
	}
	if p.Life != 0 {
		t.Errorf("life = %d, want 0", p.Life)
	}
}

func TestDeflectCooldown(t *testing.T) {
	p := NewParticle(1, mgl64.Vec3{}, mgl64.Vec2{0.1, 0.2}, -0.3, 0.25, nil)

	var applied []int
	for call := 1; call <= 13; call++ {
		if p.Deflect(true, true, true) {
			applied = append(applied, call)
		}
	}

	// Full cycle: fire at 5, count down to 0, wrap to 5
	want := []int{1, 7, 13}
	if len(applied) != len(want) {
		t.Fatalf("flips on calls %v, want %v", applied, want)
	}
	for i := range want {
		if applied[i] != want[i] {
			t.Fatalf("flips on calls %v, want %v", applied, want)
		}
	}

	// Odd number of flips leaves every component negated
	if p.Drift.X() != -0.1 || p.Drift.Y() != -0.2 || p.VerticalSpeed != 0.3 {
		t.Errorf("unexpected velocity after 3 flips: drift %v speed %v", p.Drift, p.VerticalSpeed)
	}
}

func TestDeflectSelectedAxes(t *testing.T) {
	p := NewParticle(1, mgl64.Vec3{}, mgl64.Vec2{0.1, 0.2}, -0.3, 0.25, nil)
	p.Deflect(true, false, false)

	if p.Drift.X() != -0.1 || p.Drift.Y() != 0.2 || p.VerticalSpeed != -0.3 {
		t.Errorf("only x should flip: drift %v speed %v", p.Drift, p.VerticalSpeed)
	}
	if p.Cooldown != 4 {
		t.Errorf("cooldown = %d, want 4", p.Cooldown)
	}
}

func TestAlpha(t *testing.T) {
	p := newTestParticle(0, 0)
	if p.Alpha() != 1 {
		t.Errorf("alpha = %v, want 1", p.Alpha())
	}
	p.Life = 25
	if p.Alpha() != 0.25 {
		t.Errorf("alpha = %v, want 0.25", p.Alpha())
	}
	p.Life = -3
	if p.Alpha() != 0 {
		t.Errorf("alpha = %v, want 0", p.Alpha())
	}
}
