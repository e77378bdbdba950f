package hex

import "testing"

func checkPath(t *testing.T, path []Hexagon, start, goal Hexagon) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("expected path, got nil")
	}
	if !path[0].EqualInt(start) {
		t.Errorf("path should start at %v, got %v", start, path[0])
	}
	if !path[len(path)-1].EqualInt(goal) {
		t.Errorf("path should end at %v, got %v", goal, path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		if d := path[i-1].DistanceInt(path[i]); d != 1 {
			t.Errorf("step %d: %v -> %v has distance %d", i, path[i-1], path[i], d)
		}
	}
}

func TestPathFinder_Straight(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(3))
	start, goal := New(-3, 0), New(3, 0)

	path := pf.FindPath(start, goal)
	checkPath(t, path, start, goal)
	if len(path) != 7 {
		t.Errorf("path length = %d, want 7", len(path))
	}
}

func TestPathFinder_AroundObstacle(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(3))
	pf.Block(Origin, New(0, -1), New(0, 1))
	start, goal := New(-2, 0), New(2, 0)

	path := pf.FindPath(start, goal)
	checkPath(t, path, start, goal)
	for _, c := range path {
		if !pf.IsWalkable(c) {
			t.Errorf("path crosses blocked cell %v", c)
		}
	}
	if len(path) <= 5 {
		t.Errorf("path length = %d, expected a detour longer than 5", len(path))
	}
}

func TestPathFinder_NoPath(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(2))
	pf.Block(Origin.Ring(1)...)

	if path := pf.FindPath(Origin, New(2, 0)); path != nil {
		t.Errorf("expected nil for enclosed start, got %v", path)
	}
}

func TestPathFinder_OutsideOrBlocked(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(1))
	pf.Block(New(1, 0))

	tests := []struct {
		name        string
		start, goal Hexagon
	}{
		{"goal outside", Origin, New(3, 0)},
		{"start outside", New(-4, 2), Origin},
		{"goal blocked", Origin, New(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if path := pf.FindPath(tt.start, tt.goal); path != nil {
				t.Errorf("FindPath(%v, %v) = %v, want nil", tt.start, tt.goal, path)
			}
		})
	}
}

func TestPathFinder_SameCell(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(1))
	path := pf.FindPath(New(0.2, -0.1), Origin)
	if len(path) != 1 || !path[0].EqualInt(Origin) {
		t.Errorf("FindPath(same) = %v, want [origin]", path)
	}
}

func TestPathFinder_BlockOutsideIsIgnored(t *testing.T) {
	pf := NewPathFinder(Origin.Spiral(1))
	pf.Block(New(5, 5))
	if pf.IsWalkable(New(5, 5)) {
		t.Error("cell outside the set must not be walkable")
	}
}
