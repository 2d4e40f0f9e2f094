package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/components"
)

func particleAt(id int, pos mgl64.Vec3, color components.ColorState) *components.Particle {
	p := components.NewParticle(id, pos, mgl64.Vec2{0.1, 0.1}, -0.5, 0.25, nil)
	p.Color = color
	return &p
}

func TestFloorCollisionFirstMatch(t *testing.T) {
	floors := []components.Floor{
		{Elevation: 5, HalfExtent: 5},
		{Elevation: 10, HalfExtent: 10},
		{Elevation: 15, HalfExtent: 15},
		{Elevation: 20, HalfExtent: 20},
		{Elevation: 25, HalfExtent: 25},
	}
	p := particleAt(1, mgl64.Vec3{0, 4, 0}, components.Neutral)

	elevation, ok := FloorCollision(p, floors)
	if !ok || elevation != 5 {
		t.Errorf("FloorCollision = (%v, %v), want (5, true)", elevation, ok)
	}
}

func TestFloorCollision(t *testing.T) {
	floors := components.DefaultPyramid.Build(5)

	tests := []struct {
		name    string
		pos     mgl64.Vec3
		want    float64
		wantHit bool
	}{
		{"above top floor", mgl64.Vec3{0, 0, 0}, 0, false},
		{"within radius of top floor", mgl64.Vec3{0, -3.8, 0}, -5, true},
		{"outside top footprint lands lower", mgl64.Vec3{8, -7, 0}, -7.5, true},
		{"footprint margin counts", mgl64.Vec3{6, -4, 0}, -5, true},
		{"beside the pyramid", mgl64.Vec3{40, -20, 0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := particleAt(1, tt.pos, components.Neutral)
			got, ok := FloorCollision(p, floors)
			if ok != tt.wantHit || got != tt.want {
				t.Errorf("FloorCollision(%v) = (%v, %v), want (%v, %v)", tt.pos, got, ok, tt.want, tt.wantHit)
			}
		})
	}
}

func TestFloorCollisionNoFloors(t *testing.T) {
	p := particleAt(1, mgl64.Vec3{0, -100, 0}, components.Neutral)
	if _, ok := FloorCollision(p, nil); ok {
		t.Error("expected no collision without floors")
	}
}

func TestCanDeflect(t *testing.T) {
	states := []components.ColorState{components.Neutral, components.Bounced, components.Dying}

	for _, ps := range states {
		for _, qs := range states {
			p := particleAt(1, mgl64.Vec3{}, ps)
			q := particleAt(2, mgl64.Vec3{}, qs)
			want := ps == components.Bounced && qs == components.Dying
			if got := CanDeflect(p, q); got != want {
				t.Errorf("CanDeflect(%v, %v) = %v, want %v", ps, qs, got, want)
			}
		}
	}
}

func TestResolveSustainedOverlap(t *testing.T) {
	p := particleAt(1, mgl64.Vec3{0.5, 1, 0.5}, components.Bounced)
	q := particleAt(2, mgl64.Vec3{0, 0, 0}, components.Dying)
	others := []*components.Particle{p, q}

	var flipCalls []int
	for call := 1; call <= 12; call++ {
		if ResolveParticleCollision(p, others) == 1 {
			flipCalls = append(flipCalls, call)
		}
	}

	// At most one flip in any 5 consecutive calls
	if len(flipCalls) != 2 || flipCalls[0] != 1 || flipCalls[1] != 7 {
		t.Errorf("flips on calls %v, want [1 7]", flipCalls)
	}
}

func TestResolveFlipsPositiveSide(t *testing.T) {
	p := particleAt(1, mgl64.Vec3{0.5, 1, -0.5}, components.Bounced)
	q := particleAt(2, mgl64.Vec3{0, 0, 0}, components.Dying)

	ResolveParticleCollision(p, []*components.Particle{q})

	// p is on the +x and +y side of q but the -z side
	if p.Drift.X() != -0.1 || p.Drift.Y() != 0.1 || p.VerticalSpeed != 0.5 {
		t.Errorf("drift %v speed %v", p.Drift, p.VerticalSpeed)
	}
}

func TestResolveNeverFlipsUngatedPairs(t *testing.T) {
	pairs := []struct {
		p, q components.ColorState
	}{
		{components.Neutral, components.Bounced},
		{components.Bounced, components.Neutral},
		{components.Neutral, components.Dying},
		{components.Dying, components.Bounced},
		{components.Bounced, components.Bounced},
	}

	for _, pair := range pairs {
		p := particleAt(1, mgl64.Vec3{}, pair.p)
		q := particleAt(2, mgl64.Vec3{}, pair.q)
		for i := 0; i < 10; i++ {
			if n := ResolveParticleCollision(p, []*components.Particle{q}); n != 0 {
				t.Fatalf("%v vs %v flipped", pair.p, pair.q)
			}
		}
		if p.Cooldown != 5 {
			t.Errorf("%v vs %v: cooldown advanced to %d", pair.p, pair.q, p.Cooldown)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	p := particleAt(1, mgl64.Vec3{0, 0, 0}, components.Bounced)
	q := particleAt(2, mgl64.Vec3{2.6, 0, 0}, components.Dying)

	if n := ResolveParticleCollision(p, []*components.Particle{q}); n != 0 {
		t.Errorf("particles 2.6 apart with combined radius 2.5 should not touch")
	}

	q.Position = mgl64.Vec3{2.5, 0, 0}
	if n := ResolveParticleCollision(p, []*components.Particle{q}); n != 1 {
		t.Errorf("particles exactly at combined radius should touch")
	}
}
