package field

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hexfield/pkg/hex"
	"github.com/Faultbox/hexfield/pkg/math"
)

// ErrSlotOutOfRange is returned for slot indices outside the field.
var ErrSlotOutOfRange = errors.New("field: slot out of range")

// Sink receives transform uploads for instance slots. m is only valid for
// the duration of the call.
type Sink interface {
	SetMatrixAt(slot int, m *math.Mat4)
}

// PositionSink adapts a position callback to a Sink.
type PositionSink func(slot int, x, y, z float32)

// SetMatrixAt forwards the translation of m.
func (f PositionSink) SetMatrixAt(slot int, m *math.Mat4) {
	t := m.Translation()
	f(slot, t.X, t.Y, t.Z)
}

// Options configures tile placement and animation.
type Options struct {
	Layout    hex.Layout
	MinHeight float32
	MaxHeight float32
	Rate      float32
}

// DefaultOptions returns the pointy-top, size 1 layout with default bounds.
func DefaultOptions() Options {
	return Options{
		Layout:    hex.Layout{Orientation: hex.PointyTop, Size: 1},
		MinHeight: DefaultMinHeight,
		MaxHeight: DefaultMaxHeight,
		Rate:      DefaultRate,
	}
}

type cellKey struct{ q, r int }

// Field is the ordered tile collection. Slot ids equal positions in the
// cell sequence it was built from.
type Field struct {
	tiles   []*Tile
	slots   map[cellKey]int
	layout  hex.Layout
	scratch math.Mat4
}

// New places one tile per cell. Each cell is snapped to the grid for slot
// lookup; duplicate cells keep the first slot for lookups.
func New(cells []hex.Hexagon, opts Options) *Field {
	f := &Field{
		tiles:   make([]*Tile, len(cells)),
		slots:   make(map[cellKey]int, len(cells)),
		layout:  opts.Layout,
		scratch: math.Identity(),
	}
	for i, cell := range cells {
		f.tiles[i] = newTile(i, cell, opts.Layout.ToPixel(cell), opts)
		q, r := cell.Axial()
		if _, ok := f.slots[cellKey{q, r}]; !ok {
			f.slots[cellKey{q, r}] = i
		}
	}
	return f
}

// Len returns the number of tiles.
func (f *Field) Len() int {
	return len(f.tiles)
}

// Layout returns the layout tiles were placed with.
func (f *Field) Layout() hex.Layout {
	return f.layout
}

func (f *Field) check(slot int) error {
	if slot < 0 || slot >= len(f.tiles) {
		return fmt.Errorf("%w: %d (len %d)", ErrSlotOutOfRange, slot, len(f.tiles))
	}
	return nil
}

// Tile returns the tile in slot.
func (f *Field) Tile(slot int) (*Tile, error) {
	if err := f.check(slot); err != nil {
		return nil, err
	}
	return f.tiles[slot], nil
}

// Tiles returns the tiles in slot order. The slice is owned by the field.
func (f *Field) Tiles() []*Tile {
	return f.tiles
}

// Position returns the current world position of slot.
func (f *Field) Position(slot int) (math.Vec3, error) {
	if err := f.check(slot); err != nil {
		return math.Vec3{}, err
	}
	return f.tiles[slot].Position(), nil
}

// Matrix returns the current transform of slot, built in the field's
// scratch matrix.
func (f *Field) Matrix(slot int) (math.Mat4, error) {
	if err := f.check(slot); err != nil {
		return math.Mat4{}, err
	}
	t := f.tiles[slot]
	f.scratch.SetTranslation(t.X, t.Y, t.Z)
	return f.scratch, nil
}

// SlotOf returns the slot of the tile placed at cell.
func (f *Field) SlotOf(cell hex.Hexagon) (int, bool) {
	q, r := cell.Axial()
	slot, ok := f.slots[cellKey{q, r}]
	return slot, ok
}

// SetSelected starts the selection animation of one tile.
func (f *Field) SetSelected(slot int, selected bool) error {
	if err := f.check(slot); err != nil {
		return err
	}
	f.tiles[slot].SetSelected(selected)
	return nil
}

// Update advances every tile in slot order and uploads each dirty tile's
// transform to sink exactly once. It returns the number of uploads. With a
// nil sink tiles advance but stay dirty.
func (f *Field) Update(delta float32, sink Sink) int {
	uploads := 0
	for _, t := range f.tiles {
		t.Update(delta)
		if t.dirty && sink != nil {
			f.upload(t, sink)
			uploads++
		}
	}
	return uploads
}

// UploadAll writes every slot regardless of dirty state, for filling a
// fresh instance buffer.
func (f *Field) UploadAll(sink Sink) {
	for _, t := range f.tiles {
		f.upload(t, sink)
	}
}

func (f *Field) upload(t *Tile, sink Sink) {
	f.scratch.SetTranslation(t.X, t.Y, t.Z)
	sink.SetMatrixAt(t.ID, &f.scratch)
	t.dirty = false
}

// Centroid returns the mean position of the given slots.
func (f *Field) Centroid(slots []int) (math.Vec3, error) {
	if len(slots) == 0 {
		return math.Vec3{}, fmt.Errorf("%w: no slots", ErrSlotOutOfRange)
	}
	var sum math.Vec3
	for _, slot := range slots {
		p, err := f.Position(slot)
		if err != nil {
			return math.Vec3{}, err
		}
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(slots))), nil
}

// Animating returns the number of tiles currently animating.
func (f *Field) Animating() int {
	n := 0
	for _, t := range f.tiles {
		if t.state == StateAnimating {
			n++
		}
	}
	return n
}
