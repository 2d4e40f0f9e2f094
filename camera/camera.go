// Package camera provides an orbit camera for viewing the pyramid.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Yaw wraps within [0, MaxYaw].
const MaxYaw = 359.9

// Camera orbits a fixed target on a horizontal circle.
// Yaw is fed directly to cos/sin, so one unit is one radian of orbit.
type Camera struct {
	Yaw    float64 // Angle around the vertical axis
	Height float64 // Eye height
	Zoom   float64 // Orbit radius
	Target mgl64.Vec3
	Fovy   float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	home orbit
}

// orbit holds the values restored by Reset.
type orbit struct {
	Yaw, Height, Zoom float64
}

// New creates a camera orbiting target.
func New(yaw, height, zoom float64, target mgl64.Vec3, fovy float64) *Camera {
	return &Camera{
		Yaw:     yaw,
		Height:  height,
		Zoom:    zoom,
		Target:  target,
		Fovy:    fovy,
		MinZoom: 1,
		MaxZoom: 300,
		home:    orbit{Yaw: yaw, Height: height, Zoom: zoom},
	}
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() mgl64.Vec3 {
	return mgl64.Vec3{
		c.Zoom * math.Cos(c.Yaw),
		c.Height,
		c.Zoom * math.Sin(c.Yaw),
	}
}

// Rotate turns the camera by delta, wrapping at the ends of [0, MaxYaw].
func (c *Camera) Rotate(delta float64) {
	switch {
	case delta > 0 && c.Yaw >= MaxYaw:
		c.Yaw = 0
	case delta < 0 && c.Yaw <= 0:
		c.Yaw = MaxYaw
	default:
		c.Yaw = math.Max(0, math.Min(MaxYaw, c.Yaw+delta))
	}
}

// Raise moves the eye up or down.
func (c *Camera) Raise(delta float64) {
	c.Height += delta
}

// SetZoom sets the orbit radius, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy adds delta to the orbit radius.
func (c *Camera) ZoomBy(delta float64) {
	c.SetZoom(c.Zoom + delta)
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.Yaw = c.home.Yaw
	c.Height = c.home.Height
	c.Zoom = c.home.Zoom
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
