package systems

import (
	"github.com/pthm-cable/cannon/components"
)

// FloorCollision returns the elevation of the first floor, in the given order,
// that the particle is touching. ok is false when no floor is touched.
//
// A floor is touched when the particle is lower than its surface plus the
// particle radius and within its footprint grown by the same radius.
func FloorCollision(p *components.Particle, floors []components.Floor) (elevation float64, ok bool) {
	r := p.Radius()
	x, y, z := p.Position.X(), p.Position.Y(), p.Position.Z()
	for _, f := range floors {
		if y < f.Elevation+r && f.Contains(x, z, r) {
			return f.Elevation, true
		}
	}
	return 0, false
}

// CanDeflect reports whether q is allowed to deflect p.
// Only a dying particle deflects, and only a bounced particle is deflected.
func CanDeflect(p, q *components.Particle) bool {
	return q.Color == components.Dying && p.Color == components.Bounced
}

// Touching reports whether two particles overlap.
func Touching(p, q *components.Particle) bool {
	return p.Position.Sub(q.Position).Len() <= p.Radius()+q.Radius()
}

// ResolveParticleCollision deflects p off every other particle that may deflect it
// and overlaps it. Each axis is reflected when p lies on the positive side of q.
// others may contain p itself; it is skipped by ID. Returns the number of flips applied.
func ResolveParticleCollision(p *components.Particle, others []*components.Particle) int {
	flips := 0
	for _, q := range others {
		if q.ID == p.ID {
			continue
		}
		if !CanDeflect(p, q) {
			continue
		}
		if !Touching(p, q) {
			continue
		}
		if p.Deflect(
			p.Position.X() > q.Position.X(),
			p.Position.Z() > q.Position.Z(),
			p.Position.Y() > q.Position.Y(),
		) {
			flips++
		}
	}
	return flips
}
