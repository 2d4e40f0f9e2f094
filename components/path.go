package components

import "github.com/go-gl/mathgl/mgl64"

// PathTrace is an append-only polyline of sampled particle positions.
// It is only read by the viewer.
type PathTrace struct {
	points []mgl64.Vec3
}

// Append adds a point to the end of the trace.
func (t *PathTrace) Append(p mgl64.Vec3) {
	t.points = append(t.points, p)
}

// Len returns the number of sampled points.
func (t *PathTrace) Len() int {
	return len(t.points)
}

// Points returns a copy of the sampled points in order.
func (t *PathTrace) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(t.points))
	copy(out, t.points)
	return out
}

// Segments calls fn for every consecutive pair of points.
func (t *PathTrace) Segments(fn func(a, b mgl64.Vec3)) {
	for i := 1; i < len(t.points); i++ {
		fn(t.points[i-1], t.points[i])
	}
}
