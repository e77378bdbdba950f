// Package field models the animated tile field: one Tile per hex cell, each
// bound to a slot in an externally owned instanced-transform buffer.
package field

import (
	"github.com/Faultbox/hexfield/pkg/hex"
	"github.com/Faultbox/hexfield/pkg/math"
)

// State is the animation state of a tile.
type State uint8

const (
	StateIdleUnselected State = iota
	StateAnimating
	StateIdleSelected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdleUnselected:
		return "idle-unselected"
	case StateAnimating:
		return "animating"
	case StateIdleSelected:
		return "idle-selected"
	default:
		return "unknown"
	}
}

// Default animation bounds and rate.
const (
	DefaultMinHeight = 0.0
	DefaultMaxHeight = 0.3
	DefaultRate      = 1.0
)

// Tile is one cell's renderable and animatable state.
type Tile struct {
	ID   int         // Instance slot
	Cell hex.Hexagon // Grid cell the tile was placed from

	// Ground position is fixed; Y is the animated elevation.
	X, Y, Z float32

	Selected  bool
	MinHeight float32
	MaxHeight float32
	Rate      float32 // Progress units per second

	from, to float32
	amount   float32
	state    State
	dirty    bool
}

func newTile(id int, cell hex.Hexagon, pos hex.Point, opts Options) *Tile {
	return &Tile{
		ID:        id,
		Cell:      cell,
		X:         float32(pos.X),
		Y:         opts.MinHeight,
		Z:         float32(pos.Y),
		MinHeight: opts.MinHeight,
		MaxHeight: opts.MaxHeight,
		Rate:      opts.Rate,
		state:     StateIdleUnselected,
		dirty:     true,
	}
}

// State returns the current animation state.
func (t *Tile) State() State {
	return t.state
}

// Dirty reports whether the slot needs a transform upload.
func (t *Tile) Dirty() bool {
	return t.dirty
}

// Progress returns the animation progress clamped to [0, 1].
func (t *Tile) Progress() float32 {
	return math.Clamp01(t.amount)
}

// Position returns the tile's current world position.
func (t *Tile) Position() math.Vec3 {
	return math.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

// SetSelected starts an animation from the current elevation towards the
// bound matching selected. Calling it again restarts from wherever the tile
// is, so an in-flight animation is superseded without a jump.
func (t *Tile) SetSelected(selected bool) {
	t.Selected = selected
	t.from = t.Y
	if selected {
		t.to = t.MaxHeight
	} else {
		t.to = t.MinHeight
	}
	t.amount = 0
	t.state = StateAnimating
}

// Update advances the animation by delta seconds. Idle tiles only pay a
// state check. Negative deltas count as zero.
func (t *Tile) Update(delta float32) {
	if t.state != StateAnimating {
		return
	}
	if delta < 0 {
		delta = 0
	}

	t.amount += delta * t.Rate
	t.dirty = true

	if t.amount >= 1.0 {
		if t.Selected {
			t.Y = t.MaxHeight
			t.state = StateIdleSelected
		} else {
			t.Y = t.MinHeight
			t.state = StateIdleUnselected
		}
		return
	}
	t.Y = math.CubeLerp(t.from, t.to, t.amount)
}
