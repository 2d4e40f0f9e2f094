package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/components"
)

func TestFloorAlpha(t *testing.T) {
	tests := []struct {
		i, n int
		want uint8
	}{
		{4, 5, 255}, // bottom floor is opaque
		{0, 5, 51},
		{2, 5, 153},
		{0, 1, 255},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := FloorAlpha(tt.i, tt.n); got != tt.want {
			t.Errorf("FloorAlpha(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestFloorAlphaIncreasesDownward(t *testing.T) {
	n := 10
	for i := 1; i < n; i++ {
		if FloorAlpha(i, n) <= FloorAlpha(i-1, n) {
			t.Errorf("floor %d alpha %d not above floor %d alpha %d", i, FloorAlpha(i, n), i-1, FloorAlpha(i-1, n))
		}
	}
}

func TestParticleColor(t *testing.T) {
	p := components.NewParticle(1, mgl64.Vec3{}, mgl64.Vec2{}, 0, 0.25, nil)

	c := ParticleColor(&p)
	if c.R != NeutralColor.R || c.G != NeutralColor.G || c.B != NeutralColor.B || c.A != 255 {
		t.Errorf("neutral color = %v", c)
	}

	p.Color = components.Bounced
	if c := ParticleColor(&p); c.R != BouncedColor.R || c.G != BouncedColor.G {
		t.Errorf("bounced color = %v", c)
	}

	p.Color = components.Dying
	p.Life = 50
	c = ParticleColor(&p)
	if c.R != DyingColor.R || c.B != DyingColor.B {
		t.Errorf("dying color = %v", c)
	}
	if c.A != 127 {
		t.Errorf("alpha at half life = %d, want 127", c.A)
	}
}
