// Package hex implements cube-coordinate algebra for hexagonal grids.
//
// A Hexagon holds cube coordinates (X, Y, Z) with X+Y+Z == 0. X and Z are the
// free axial components; Y is derived. Integer hexagons address grid cells,
// fractional ones appear while interpolating or unprojecting pixels.
package hex

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/hexfield/pkg/math"
)

// Precondition errors.
var (
	ErrPrecondition     = errors.New("hex: precondition violated")
	ErrInvalidDirection = fmt.Errorf("%w: direction out of range [0,5]", ErrPrecondition)
	ErrNegativeRadius   = fmt.Errorf("%w: negative radius", ErrPrecondition)
)

// Hexagon is a cell (or fractional point) in cube coordinates.
// Values are immutable in practice: every operation returns a fresh Hexagon.
type Hexagon struct {
	X, Y, Z float64
}

// New returns the hexagon at axial (q, r), deriving Y = -q - r.
func New(q, r float64) Hexagon {
	return Hexagon{X: q, Y: -q - r, Z: r}
}

// Origin is the hexagon at (0, 0, 0).
var Origin = Hexagon{}

// String formats the axial coordinates.
func (h Hexagon) String() string {
	return fmt.Sprintf("(%g, %g)", h.X, h.Z)
}

// Axial returns the axial coordinates snapped with NearestInt.
func (h Hexagon) Axial() (q, r int) {
	i := h.ToInt()
	return int(i.X), int(i.Z)
}

// ToInt snaps X and Z to the nearest integers and re-derives Y.
func (h Hexagon) ToInt() Hexagon {
	return h.ToIntWith(NearestInt)
}

// ToIntWith snaps h to a grid cell using the given policy.
func (h Hexagon) ToIntWith(p RoundPolicy) Hexagon {
	return p.snap(h)
}

// Add returns h + other.
func (h Hexagon) Add(other Hexagon) Hexagon {
	return New(h.X+other.X, h.Z+other.Z)
}

// Sub returns h - other.
func (h Hexagon) Sub(other Hexagon) Hexagon {
	return New(h.X-other.X, h.Z-other.Z)
}

// Scale multiplies every cube component by amount.
func (h Hexagon) Scale(amount float64) Hexagon {
	return Hexagon{X: h.X * amount, Y: h.Y * amount, Z: h.Z * amount}
}

// IsSame reports whether h is exactly at axial (q, r).
func (h Hexagon) IsSame(q, r float64) bool {
	return h.X == q && h.Z == r
}

// IsSameInt reports whether h snaps to axial (q, r).
func (h Hexagon) IsSameInt(q, r int) bool {
	i := h.ToInt()
	return int(i.X) == q && int(i.Z) == r
}

// Equal compares X and Z exactly; Y is redundant.
func (h Hexagon) Equal(other Hexagon) bool {
	return h.X == other.X && h.Z == other.Z
}

// EqualInt compares both hexagons after snapping them to cells.
func (h Hexagon) EqualInt(other Hexagon) bool {
	return h.ToInt().Equal(other.ToInt())
}

// Within reports whether h is Equal to any member of set. It is a linear scan.
func (h Hexagon) Within(set []Hexagon) bool {
	for _, other := range set {
		if h.Equal(other) {
			return true
		}
	}
	return false
}

// Distance returns the cube distance (|dx| + |dy| + |dz|) / 2.
func (h Hexagon) Distance(other Hexagon) float64 {
	return (gomath.Abs(h.X-other.X) +
		gomath.Abs(h.Y-other.Y) +
		gomath.Abs(h.Z-other.Z)) / 2
}

// DistanceInt snaps Distance with NearestInt.
func (h Hexagon) DistanceInt(other Hexagon) int {
	return h.DistanceIntWith(other, NearestInt)
}

// DistanceIntWith snaps Distance with the given policy.
func (h Hexagon) DistanceIntWith(other Hexagon, p RoundPolicy) int {
	return int(p.scalar(h.Distance(other)))
}

// Lerp interpolates X, Y and Z independently. Y is not re-derived so the
// result stays continuous in all three channels.
func (h Hexagon) Lerp(other Hexagon, t float64) Hexagon {
	return Hexagon{
		X: math.Lerp(h.X, other.X, t),
		Y: math.Lerp(h.Y, other.Y, t),
		Z: math.Lerp(h.Z, other.Z, t),
	}
}

// Sum returns X+Y+Z, zero for every well-formed hexagon.
func (h Hexagon) Sum() float64 {
	return h.X + h.Y + h.Z
}
