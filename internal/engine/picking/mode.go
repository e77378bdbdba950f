package picking

import "fmt"

// Mode selects how a pointer ray resolves to a tile.
type Mode int

const (
	// ModeTiles tests the ray against every tile's pick volume and takes
	// the nearest hit, so raised tiles catch the pointer first.
	ModeTiles Mode = iota
	// ModePlane intersects the ray with the ground plane and unprojects the
	// point into the grid. Tile height is ignored.
	ModePlane
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case ModeTiles:
		return "tiles"
	case ModePlane:
		return "plane"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "tiles" or "plane". Empty means tiles.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tiles", "":
		return ModeTiles, nil
	case "plane":
		return ModePlane, nil
	default:
		return 0, fmt.Errorf("unknown pick mode %q", s)
	}
}

// Pick resolves r to a tile slot with mode m.
func (m Mode) Pick(r Ray, f Field, height float32) (int, bool) {
	if m == ModePlane {
		_, slot, ok := PickCell(r, f)
		return slot, ok
	}
	return PickNearest(r, f, height)
}
