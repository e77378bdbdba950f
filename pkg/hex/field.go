package hex

import "fmt"

// Shape selects how GenerateField lays out cells around a center.
type Shape int

const (
	// ShapeSpiral is center plus rings 1..radius in ring-walk order.
	ShapeSpiral Shape = iota
	// ShapeRing is the single ring at radius.
	ShapeRing
	// ShapeRange is every cell within radius in range order.
	ShapeRange
)

// String returns the shape name used in configuration files.
func (s Shape) String() string {
	switch s {
	case ShapeSpiral:
		return "spiral"
	case ShapeRing:
		return "ring"
	case ShapeRange:
		return "range"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape parses a shape name.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "spiral", "":
		return ShapeSpiral, nil
	case "ring":
		return ShapeRing, nil
	case "range":
		return ShapeRange, nil
	default:
		return 0, fmt.Errorf("unknown field shape %q", s)
	}
}

// CellCount returns how many cells GenerateField yields for radius.
func (s Shape) CellCount(radius int) int {
	if radius < 0 {
		return 0
	}
	if s == ShapeRing && radius > 0 {
		return DirectionCount * radius
	}
	return CellCount(radius)
}

// GenerateField returns the ordered cells of a field. The order is the
// instance slot order used by the tile model.
func GenerateField(shape Shape, center Hexagon, radius int) ([]Hexagon, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}

	switch shape {
	case ShapeSpiral:
		return center.Spiral(radius), nil
	case ShapeRing:
		return center.Ring(radius), nil
	case ShapeRange:
		return center.Range(radius), nil
	default:
		return nil, fmt.Errorf("%w: unknown shape %d", ErrPrecondition, int(shape))
	}
}
