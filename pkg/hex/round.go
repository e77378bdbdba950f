package hex

import gomath "math"

// RoundPolicy selects how fractional hexagons snap to grid cells.
type RoundPolicy int

const (
	// NearestInt rounds X and Z independently to the nearest integer,
	// ties towards +Inf. This is the default for ToInt and Line.
	NearestInt RoundPolicy = iota
	// FloorInt floors X and Z independently.
	FloorInt
	// CubeNearest rounds all three cube components and repairs the one with
	// the largest rounding error, so the result is the cell that actually
	// contains the point. Used for picking.
	CubeNearest
)

// String returns the policy name.
func (p RoundPolicy) String() string {
	switch p {
	case NearestInt:
		return "nearest"
	case FloorInt:
		return "floor"
	case CubeNearest:
		return "cube"
	default:
		return "unknown"
	}
}

func (p RoundPolicy) scalar(v float64) float64 {
	if p == FloorInt {
		return gomath.Floor(v)
	}
	return gomath.Floor(v + 0.5)
}

func (p RoundPolicy) snap(h Hexagon) Hexagon {
	if p != CubeNearest {
		return New(p.scalar(h.X), p.scalar(h.Z))
	}

	x := gomath.Round(h.X)
	y := gomath.Round(h.Y)
	z := gomath.Round(h.Z)
	dx := gomath.Abs(x - h.X)
	dy := gomath.Abs(y - h.Y)
	dz := gomath.Abs(z - h.Z)

	switch {
	case dx > dy && dx > dz:
		x = -y - z
	case dy > dz:
		// y is derived below
	default:
		z = -x - y
	}
	return New(x, z)
}
