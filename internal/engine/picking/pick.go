package picking

import (
	"sort"

	"github.com/Faultbox/hexfield/pkg/hex"
	"github.com/Faultbox/hexfield/pkg/math"
)

// DefaultTileHeight is the thickness of a tile's pick volume.
const DefaultTileHeight = 0.2

// Field is the view of the tile field picking needs.
type Field interface {
	Len() int
	Position(slot int) (math.Vec3, error)
	Layout() hex.Layout
	SlotOf(cell hex.Hexagon) (int, bool)
}

// Hit is one tile under a ray.
type Hit struct {
	Slot     int
	Distance float32
}

// TileBounds returns the box enclosing a tile centered at pos. The layout's
// Y axis maps to world Z.
func TileBounds(pos math.Vec3, layout hex.Layout, height float32) AABB {
	hx, hz := layout.Footprint()
	halfX, halfZ, halfY := float32(hx), float32(hz), height/2
	return NewAABB(
		pos.X-halfX, pos.Y-halfY, pos.Z-halfZ,
		pos.X+halfX, pos.Y+halfY, pos.Z+halfZ,
	)
}

// insideHex reports whether the world point p lies over the hexagon of the
// tile centered at center.
func insideHex(p [3]float32, center math.Vec3, layout hex.Layout) bool {
	local := hex.Point{X: float64(p[0] - center.X), Y: float64(p[2] - center.Z)}
	return layout.FromPixel(local).ToIntWith(hex.CubeNearest).Equal(hex.Origin)
}

// PickTiles returns every tile the ray passes through, nearest first.
// Boxes are refined against the hexagon outline at the entry, middle and
// exit of the ray's span so the corners between neighbours do not
// double-count.
func PickTiles(r Ray, f Field, height float32) []Hit {
	layout := f.Layout()
	var hits []Hit
	for slot := 0; slot < f.Len(); slot++ {
		pos, err := f.Position(slot)
		if err != nil {
			continue
		}
		tmin, tmax, ok := r.slabs(TileBounds(pos, layout, height))
		if !ok {
			continue
		}
		if tmin < 0 {
			tmin = 0
		}
		if !insideHex(r.At(tmin), pos, layout) &&
			!insideHex(r.At((tmin+tmax)/2), pos, layout) &&
			!insideHex(r.At(tmax), pos, layout) {
			continue
		}
		hits = append(hits, Hit{Slot: slot, Distance: tmin})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// PickNearest returns the slot of the nearest tile under the ray.
func PickNearest(r Ray, f Field, height float32) (int, bool) {
	hits := PickTiles(r, f, height)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[0].Slot, true
}

// PickCell intersects the ray with the ground plane, unprojects the point
// into the grid and returns the cell and the slot of the tile placed there.
func PickCell(r Ray, f Field) (hex.Hexagon, int, bool) {
	x, z, ok := r.IntersectPlaneY(0)
	if !ok {
		return hex.Hexagon{}, 0, false
	}
	cell := f.Layout().FromPixel(hex.Point{X: float64(x), Y: float64(z)}).ToIntWith(hex.CubeNearest)
	slot, ok := f.SlotOf(cell)
	return cell, slot, ok
}
