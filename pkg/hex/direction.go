package hex

import "fmt"

// Direction indexes the six edge (or vertex) offsets of a hexagon.
type Direction int

// Edge directions in axial (q, r) terms for a pointy-top layout.
const (
	East      Direction = iota // (+1,  0)
	NorthEast                  // (+1, -1)
	NorthWest                  // ( 0, -1)
	West                       // (-1,  0)
	SouthWest                  // (-1, +1)
	SouthEast                  // ( 0, +1)
)

// DirectionCount is the number of directions around a hexagon.
const DirectionCount = 6

var directions = [DirectionCount][2]float64{
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
}

var diagonals = [DirectionCount][2]float64{
	{2, -1},
	{1, -2},
	{-1, -1},
	{-2, 1},
	{-1, 2},
	{1, 1},
}

// Valid reports whether d is in [0, 5].
func (d Direction) Valid() bool {
	return d >= 0 && d < DirectionCount
}

var directionNames = [DirectionCount]string{
	"east", "northeast", "northwest", "west", "southwest", "southeast",
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) check() error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return nil
}

// Offset returns the unit hexagon for an edge direction.
func (d Direction) Offset() (Hexagon, error) {
	if err := d.check(); err != nil {
		return Hexagon{}, err
	}
	return d.offset(), nil
}

func (d Direction) offset() Hexagon {
	return New(directions[d][0], directions[d][1])
}

func (d Direction) diagonal() Hexagon {
	return New(diagonals[d][0], diagonals[d][1])
}

// Neighbor returns the edge-adjacent cell in direction d.
func (h Hexagon) Neighbor(d Direction) (Hexagon, error) {
	if err := d.check(); err != nil {
		return Hexagon{}, err
	}
	return h.Add(d.offset()), nil
}

// DiagNeighbor returns the vertex-adjacent cell in direction d.
func (h Hexagon) DiagNeighbor(d Direction) (Hexagon, error) {
	if err := d.check(); err != nil {
		return Hexagon{}, err
	}
	return h.Add(d.diagonal()), nil
}

// Neighbors returns all six edge-adjacent cells in direction order.
func (h Hexagon) Neighbors() [DirectionCount]Hexagon {
	var result [DirectionCount]Hexagon
	for d := Direction(0); d < DirectionCount; d++ {
		result[d] = h.Add(d.offset())
	}
	return result
}
