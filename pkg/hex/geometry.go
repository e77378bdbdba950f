package hex

import gomath "math"

// lineNudge breaks ties where a line passes exactly along a cell edge.
// The asymmetric offsets sum to zero so the nudged point stays on the plane.
var lineNudge = Hexagon{X: 0.000001, Y: 0.000002, Z: -0.000003}

func nudge(h Hexagon) Hexagon {
	start := New(h.X, h.Z)
	return Hexagon{X: start.X + lineNudge.X, Y: start.Y + lineNudge.Y, Z: start.Z + lineNudge.Z}
}

// Line returns the cells on the straight line from h to other, inclusive.
// Coincident endpoints yield a single cell.
func (h Hexagon) Line(other Hexagon) []Hexagon {
	dist := h.DistanceInt(other)
	if dist <= 0 {
		return []Hexagon{h.ToInt()}
	}

	start := nudge(h)
	end := nudge(other)

	result := make([]Hexagon, 0, dist+1)
	step := 1.0 / float64(dist)
	for i := 0; i <= dist; i++ {
		cell := start.Lerp(end, step*float64(i)).ToInt()
		if len(result) == 0 || !result[len(result)-1].Equal(cell) {
			result = append(result, cell)
		}
	}
	return result
}

type cellKey struct{ x, z float64 }

// cellSet keeps insertion order and drops duplicates.
type cellSet struct {
	seen  map[cellKey]struct{}
	cells []Hexagon
}

func newCellSet(capacity int) *cellSet {
	return &cellSet{
		seen:  make(map[cellKey]struct{}, capacity),
		cells: make([]Hexagon, 0, capacity),
	}
}

func (s *cellSet) add(h Hexagon) {
	k := cellKey{h.X, h.Z}
	if _, ok := s.seen[k]; ok {
		return
	}
	s.seen[k] = struct{}{}
	s.cells = append(s.cells, h)
}

// Range returns every cell within distance of h (the sign of distance is
// ignored), ordered by x then y offset.
func (h Hexagon) Range(distance int) []Hexagon {
	d := distance
	if d < 0 {
		d = -d
	}

	set := newCellSet(1 + 3*d*(d+1))
	for x := -d; x <= d; x++ {
		for y := max(-d, -x-d); y <= min(d, -x+d); y++ {
			offset := New(float64(x), float64(-x-y))
			set.add(h.Add(offset))
		}
	}
	return set.cells
}

// Intersection returns the cells within selfDist of h and within otherDist
// of other.
func (h Hexagon) Intersection(other Hexagon, selfDist, otherDist float64) []Hexagon {
	xMin := gomath.Max(h.X-selfDist, other.X-otherDist)
	xMax := gomath.Min(h.X+selfDist, other.X+otherDist)
	yMin := gomath.Max(h.Y-selfDist, other.Y-otherDist)
	yMax := gomath.Min(h.Y+selfDist, other.Y+otherDist)
	zMin := gomath.Max(h.Z-selfDist, other.Z-otherDist)
	zMax := gomath.Min(h.Z+selfDist, other.Z+otherDist)

	set := newCellSet(0)
	for x := xMin; x <= xMax; x++ {
		for y := gomath.Max(yMin, -x-zMax); y <= gomath.Min(yMax, -x-zMin); y++ {
			set.add(New(x, -x-y))
		}
	}
	return set.cells
}

// Rotate turns h around center by steps × 60°. Positive steps map the
// offset (x, y, z) to (-y, -z, -x); negative steps apply the inverse.
// A fresh value is returned for every step count, including zero.
func (h Hexagon) Rotate(center Hexagon, steps int) Hexagon {
	v := h.Sub(center)

	steps %= DirectionCount
	for ; steps > 0; steps-- {
		v = Hexagon{X: -v.Y, Y: -v.Z, Z: -v.X}
	}
	for ; steps < 0; steps++ {
		v = Hexagon{X: -v.Z, Y: -v.X, Z: -v.Y}
	}
	return v.Add(center)
}

// Ring returns the 6*radius cells at exactly radius from h, starting at the
// cell radius steps towards SouthWest and walking the six edges in direction
// order. Radius 0 yields h alone; a negative radius yields nothing.
func (h Hexagon) Ring(radius int) []Hexagon {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Hexagon{h}
	}

	result := make([]Hexagon, 0, DirectionCount*radius)
	cell := h.Add(SouthWest.offset().Scale(float64(radius)))
	for d := Direction(0); d < DirectionCount; d++ {
		for j := 0; j < radius; j++ {
			result = append(result, cell)
			cell = cell.Add(d.offset())
		}
	}
	return result
}

// Spiral returns h followed by Ring(1) through Ring(radius).
func (h Hexagon) Spiral(radius int) []Hexagon {
	if radius < 0 {
		radius = 0
	}
	result := make([]Hexagon, 0, CellCount(radius))
	result = append(result, h)
	for r := 1; r <= radius; r++ {
		result = append(result, h.Ring(r)...)
	}
	return result
}

// CellCount returns the number of cells within radius: 1 + 3r(r+1).
func CellCount(radius int) int {
	if radius < 0 {
		return 0
	}
	return 1 + 3*radius*(radius+1)
}
