// Package camera provides the look-at target interpolator and the orbiting
// camera that views the tile field.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hexfield/pkg/math"
)

// Orbit defaults.
const (
	DefaultOrbitRadius = 10.0
	DefaultOrbitHeight = 6.0
	DefaultOrbitRate   = 0.1
	DefaultViewUnit    = 6.0
	DefaultNear        = 1.0
	DefaultFar         = 20.0
)

const twoPi = 2 * gomath.Pi

// OrbitCamera circles the world origin at a fixed height and looks at a
// target point through an orthographic projection.
type OrbitCamera struct {
	// Orbit
	Radius float32
	Height float32
	Rate   float32 // Radians per second
	Angle  float32 // Current angle, kept in [0, 2π)

	// Projection
	ViewUnit float32 // Extent of the shorter viewport side in world units
	Near     float32
	Far      float32
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Radius:   DefaultOrbitRadius,
		Height:   DefaultOrbitHeight,
		Rate:     DefaultOrbitRate,
		ViewUnit: DefaultViewUnit,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// Update advances the orbit angle by delta seconds.
func (c *OrbitCamera) Update(delta float32) {
	if delta < 0 {
		delta = 0
	}
	a := gomath.Mod(float64(c.Angle)+float64(c.Rate*delta), twoPi)
	if a < 0 {
		a += twoPi
	}
	c.Angle = float32(a)
}

// Position returns the camera position in world space. Angle 0 puts the
// camera on the +Z axis.
func (c *OrbitCamera) Position() math.Vec3 {
	return math.Vec3{
		X: c.Radius * float32(gomath.Sin(float64(c.Angle))),
		Y: c.Height,
		Z: c.Radius * float32(gomath.Cos(float64(c.Angle))),
	}
}

// ViewMatrix returns the view matrix looking at target.
func (c *OrbitCamera) ViewMatrix(target math.Vec3) math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), target, up)
}

// Projection returns the orthographic projection for the given aspect
// ratio (width / height). The shorter viewport side always spans ViewUnit.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	w, h := c.ViewUnit, c.ViewUnit
	if aspect > 1 {
		w = aspect * c.ViewUnit
	} else {
		h = c.ViewUnit / aspect
	}
	return math.Ortho(-w/2, w/2, -h/2, h/2, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(target math.Vec3, aspect float32) math.Mat4 {
	return c.Projection(aspect).Mul(c.ViewMatrix(target))
}
