package hex

import (
	"fmt"
	gomath "math"
)

const sqrt3 = 1.7320508075688772935274463415059

// Point is a 2D layout position in render-space units.
type Point struct {
	X, Y float64
}

// Orientation selects the hexagon orientation used for pixel projection.
type Orientation int

const (
	// PointyTop hexagons have a vertex pointing up (towards -Y).
	PointyTop Orientation = iota
	// FlatTop hexagons have an edge on top.
	FlatTop
)

// String returns the orientation name used in configuration files.
func (o Orientation) String() string {
	switch o {
	case PointyTop:
		return "pointy"
	case FlatTop:
		return "flat"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation parses "pointy" or "flat".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "pointy", "pointy-top", "":
		return PointyTop, nil
	case "flat", "flat-top":
		return FlatTop, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
}

// ToPixel projects h with the pointy-top layout:
// x = size*(√3*q + √3/2*r), y = size*3/2*r.
func (h Hexagon) ToPixel(size float64) Point {
	return Point{
		X: size * (sqrt3*h.X + sqrt3/2.0*h.Z),
		Y: size * 3.0 / 2.0 * h.Z,
	}
}

// FromPixel is the inverse of ToPixel. The result is fractional; snap it with
// ToInt or ToIntWith to address a cell.
func FromPixel(x, y, size float64) Hexagon {
	return New(
		(sqrt3/3.0*x-y/3.0)/size,
		2.0/3.0*y/size,
	)
}

// Layout binds an orientation and a tile size (the hexagon circumradius).
type Layout struct {
	Orientation Orientation
	Size        float64
}

// ToPixel projects h into layout space.
func (l Layout) ToPixel(h Hexagon) Point {
	if l.Orientation == FlatTop {
		return Point{
			X: l.Size * 3.0 / 2.0 * h.X,
			Y: l.Size * (sqrt3/2.0*h.X + sqrt3*h.Z),
		}
	}
	return h.ToPixel(l.Size)
}

// FromPixel unprojects a layout-space point into a fractional hexagon.
func (l Layout) FromPixel(p Point) Hexagon {
	if l.Orientation == FlatTop {
		return New(
			2.0/3.0*p.X/l.Size,
			(-p.X/3.0+sqrt3/3.0*p.Y)/l.Size,
		)
	}
	return FromPixel(p.X, p.Y, l.Size)
}

// Footprint returns the half extents of one tile in layout space.
func (l Layout) Footprint() (halfX, halfY float64) {
	if l.Orientation == FlatTop {
		return l.Size, sqrt3 / 2.0 * l.Size
	}
	return sqrt3 / 2.0 * l.Size, l.Size
}

// Distance returns the Euclidean distance between two layout points.
func (p Point) Distance(other Point) float64 {
	return gomath.Hypot(p.X-other.X, p.Y-other.Y)
}
