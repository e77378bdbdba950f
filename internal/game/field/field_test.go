package field

import (
	"errors"
	gomath "math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Faultbox/hexfield/pkg/hex"
	"github.com/Faultbox/hexfield/pkg/math"
)

type upload struct {
	slot    int
	x, y, z float32
}

// recordingSink captures uploads for assertions.
type recordingSink struct {
	uploads []upload
}

func (s *recordingSink) SetMatrixAt(slot int, m *math.Mat4) {
	s.uploads = append(s.uploads, upload{slot, m[12], m[13], m[14]})
}

func (s *recordingSink) reset() {
	s.uploads = s.uploads[:0]
}

func demoField() *Field {
	return New(hex.New(0, 0).Spiral(3), DefaultOptions())
}

func TestTileSelectionScenario(t *testing.T) {
	Convey("Given a freshly placed field", t, func() {
		f := demoField()
		sink := &recordingSink{}
		tile, err := f.Tile(0)
		So(err, ShouldBeNil)

		Convey("every tile starts idle, unselected and dirty at the minimum height", func() {
			for _, tl := range f.Tiles() {
				So(tl.State(), ShouldEqual, StateIdleUnselected)
				So(tl.Dirty(), ShouldBeTrue)
				So(tl.Y, ShouldEqual, float32(DefaultMinHeight))
			}
		})

		Convey("the first update uploads every slot once, in slot order", func() {
			n := f.Update(0.016, sink)
			So(n, ShouldEqual, 37)
			So(len(sink.uploads), ShouldEqual, 37)
			for i, u := range sink.uploads {
				So(u.slot, ShouldEqual, i)
			}

			Convey("and idle tiles are not uploaded again", func() {
				sink.reset()
				So(f.Update(0.016, sink), ShouldEqual, 0)
				So(sink.uploads, ShouldBeEmpty)
			})
		})

		Convey("when a tile is selected", func() {
			f.Update(0, sink)
			sink.reset()
			So(f.SetSelected(0, true), ShouldBeNil)
			So(tile.State(), ShouldEqual, StateAnimating)

			Convey("it rises while animating and uploads every frame", func() {
				f.Update(0.25, sink)
				So(len(sink.uploads), ShouldEqual, 1)
				So(sink.uploads[0].slot, ShouldEqual, 0)
				So(tile.Y, ShouldBeGreaterThan, float32(0))
				So(tile.Y, ShouldBeLessThan, float32(DefaultMaxHeight))
			})

			Convey("it lands exactly on the maximum height once progress reaches 1", func() {
				for i := 0; i < 4; i++ {
					f.Update(0.25, sink)
				}
				So(tile.Y, ShouldEqual, float32(DefaultMaxHeight))
				So(tile.State(), ShouldEqual, StateIdleSelected)
				So(tile.Dirty(), ShouldBeFalse)
				So(sink.uploads[len(sink.uploads)-1].y, ShouldEqual, float32(DefaultMaxHeight))

				Convey("and deselecting restarts from the maximum height", func() {
					So(f.SetSelected(0, false), ShouldBeNil)
					f.Update(0.1, sink)
					So(tile.Y, ShouldBeLessThan, float32(DefaultMaxHeight))
					So(tile.Y, ShouldBeGreaterThan, float32(DefaultMinHeight))

					for i := 0; i < 20; i++ {
						f.Update(0.1, sink)
					}
					So(tile.Y, ShouldEqual, float32(DefaultMinHeight))
					So(tile.State(), ShouldEqual, StateIdleUnselected)
				})
			})

			Convey("re-selecting mid-flight restarts from the current elevation", func() {
				f.Update(0.5, sink)
				mid := tile.Y
				tile.SetSelected(true)
				So(tile.Progress(), ShouldEqual, float32(0))
				f.Update(0, sink)
				So(tile.Y, ShouldEqual, mid)
			})
		})
	})
}

func TestTileNegativeDelta(t *testing.T) {
	f := demoField()
	tile, _ := f.Tile(3)
	tile.SetSelected(true)
	tile.Update(-5)
	if tile.Y != 0 || tile.Progress() != 0 {
		t.Errorf("negative delta moved the tile: y=%v progress=%v", tile.Y, tile.Progress())
	}
	if tile.State() != StateAnimating {
		t.Errorf("expected animating, got %v", tile.State())
	}
}

func TestTileEasingIsMonotonic(t *testing.T) {
	f := demoField()
	tile, _ := f.Tile(5)
	tile.SetSelected(true)

	prev := tile.Y
	for i := 0; i < 30; i++ {
		tile.Update(1.0 / 30)
		if tile.Y < prev {
			t.Fatalf("elevation decreased at step %d: %v < %v", i, tile.Y, prev)
		}
		prev = tile.Y
	}
}

func TestPlacement(t *testing.T) {
	f := New([]hex.Hexagon{hex.New(0, 0), hex.New(1, 0), hex.New(0, 1)}, DefaultOptions())

	want := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: float32(gomath.Sqrt(3)), Y: 0, Z: 0},
		{X: float32(gomath.Sqrt(3) / 2), Y: 0, Z: 1.5},
	}
	for i, w := range want {
		got, err := f.Position(i)
		if err != nil {
			t.Fatalf("Position(%d): %v", i, err)
		}
		if got.Distance(w) > 1e-6 {
			t.Errorf("Position(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestSlotOf(t *testing.T) {
	cells := hex.New(0, 0).Spiral(2)
	f := New(cells, DefaultOptions())
	for i, c := range cells {
		slot, ok := f.SlotOf(c)
		if !ok || slot != i {
			t.Errorf("SlotOf(%v) = %d, %v; want %d", c, slot, ok, i)
		}
	}
	if _, ok := f.SlotOf(hex.New(9, 9)); ok {
		t.Error("SlotOf found a cell outside the field")
	}
}

func TestOutOfRange(t *testing.T) {
	f := demoField()
	for _, slot := range []int{-1, 37, 100} {
		if err := f.SetSelected(slot, true); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("SetSelected(%d) error = %v", slot, err)
		}
		if _, err := f.Tile(slot); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("Tile(%d) error = %v", slot, err)
		}
		if _, err := f.Matrix(slot); err == nil {
			t.Errorf("Matrix(%d) should fail", slot)
		}
	}
	if _, err := f.Centroid(nil); err == nil {
		t.Error("Centroid of no slots should fail")
	}
}

func TestMatrixAndUploadAll(t *testing.T) {
	f := demoField()
	m, err := f.Matrix(1)
	if err != nil {
		t.Fatal(err)
	}
	p, _ := f.Position(1)
	if m.Translation() != p {
		t.Errorf("Matrix translation %v, want %v", m.Translation(), p)
	}

	var got []int
	f.UploadAll(PositionSink(func(slot int, x, y, z float32) {
		got = append(got, slot)
	}))
	if len(got) != f.Len() {
		t.Fatalf("UploadAll wrote %d slots, want %d", len(got), f.Len())
	}
	for _, tl := range f.Tiles() {
		if tl.Dirty() {
			t.Errorf("tile %d still dirty after UploadAll", tl.ID)
		}
	}
}

func TestNilSinkKeepsDirty(t *testing.T) {
	f := demoField()
	if n := f.Update(0.1, nil); n != 0 {
		t.Errorf("nil sink reported %d uploads", n)
	}
	tl, _ := f.Tile(0)
	if !tl.Dirty() {
		t.Error("tile should stay dirty without a sink")
	}
}

func TestCentroid(t *testing.T) {
	f := New([]hex.Hexagon{hex.New(-1, 0), hex.New(1, 0)}, DefaultOptions())
	c, err := f.Centroid([]int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if gomath.Abs(float64(c.X)) > 1e-6 || c.Y != 0 || c.Z != 0 {
		t.Errorf("Centroid = %v, want origin", c)
	}
}

func TestAnimating(t *testing.T) {
	f := demoField()
	_ = f.SetSelected(1, true)
	_ = f.SetSelected(2, true)
	if n := f.Animating(); n != 2 {
		t.Errorf("Animating = %d, want 2", n)
	}
}
