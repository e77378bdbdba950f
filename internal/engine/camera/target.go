package camera

import "github.com/Faultbox/hexfield/pkg/math"

// DefaultTargetRate is the progress rate of a camera target in units per second.
const DefaultTargetRate = 1.0

// channel is one interpolated scalar.
type channel struct {
	start, end float32
}

func (c channel) at(progress float32) float32 {
	if progress >= 1 {
		return c.end
	}
	if progress <= 0 {
		return c.start
	}
	return math.CubeLerp(c.start, c.end, progress)
}

// Target eases the camera look-at point between positions. The three axes
// share one progress counter and rate.
type Target struct {
	x, y, z  channel
	progress float32
	Rate     float32
}

// NewTarget creates a target resting at the origin.
func NewTarget(rate float32) *Target {
	return &Target{progress: 1, Rate: rate}
}

// SetPos retargets towards (x, y, z). The current interpolated point becomes
// the new start so the output never jumps.
func (t *Target) SetPos(x, y, z float32) {
	t.x = channel{start: t.X(), end: x}
	t.y = channel{start: t.Y(), end: y}
	t.z = channel{start: t.Z(), end: z}
	t.progress = 0
}

// Update advances progress by delta seconds. The counter may pass 1; the
// getters clamp.
func (t *Target) Update(delta float32) {
	if delta < 0 {
		delta = 0
	}
	if t.progress < 1 {
		t.progress += t.Rate * delta
	}
}

func (t *Target) X() float32 { return t.x.at(t.progress) }
func (t *Target) Y() float32 { return t.y.at(t.progress) }
func (t *Target) Z() float32 { return t.z.at(t.progress) }

// Position returns the current interpolated point.
func (t *Target) Position() math.Vec3 {
	return math.Vec3{X: t.X(), Y: t.Y(), Z: t.Z()}
}

// End returns the point the target is heading to.
func (t *Target) End() math.Vec3 {
	return math.Vec3{X: t.x.end, Y: t.y.end, Z: t.z.end}
}

// Progress returns the raw progress counter.
func (t *Target) Progress() float32 {
	return t.progress
}

// Settled reports whether the target has reached its end point.
func (t *Target) Settled() bool {
	return t.progress >= 1
}
