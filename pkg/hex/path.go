package hex

import "container/heap"

// pathNode is one open or closed cell in an A* search.
type pathNode struct {
	cell   Hexagon
	g, f   int
	parent *pathNode
	index  int
}

type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].f == h[j].f {
		return h[i].g > h[j].g
	}
	return h[i].f < h[j].f
}
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// PathFinder searches shortest edge-adjacent paths over a bounded set of
// cells. Cells outside the set, or blocked, cannot be entered.
type PathFinder struct {
	walkable map[cellKey]bool
}

// NewPathFinder creates a pathfinder over cells. Every cell starts walkable.
func NewPathFinder(cells []Hexagon) *PathFinder {
	pf := &PathFinder{walkable: make(map[cellKey]bool, len(cells))}
	for _, c := range cells {
		pf.walkable[keyOf(c)] = true
	}
	return pf
}

func keyOf(h Hexagon) cellKey {
	i := h.ToInt()
	return cellKey{i.X, i.Z}
}

// Block marks cells as not walkable.
func (pf *PathFinder) Block(cells ...Hexagon) {
	for _, c := range cells {
		if _, ok := pf.walkable[keyOf(c)]; ok {
			pf.walkable[keyOf(c)] = false
		}
	}
}

// IsWalkable reports whether h is inside the set and not blocked.
func (pf *PathFinder) IsWalkable(h Hexagon) bool {
	return pf.walkable[keyOf(h)]
}

// FindPath returns the cells from start to goal inclusive, or nil if goal
// cannot be reached. Both ends are snapped to cells first.
func (pf *PathFinder) FindPath(start, goal Hexagon) []Hexagon {
	start, goal = start.ToInt(), goal.ToInt()
	if !pf.IsWalkable(start) || !pf.IsWalkable(goal) {
		return nil
	}

	open := &pathHeap{}
	nodes := make(map[cellKey]*pathNode)
	closed := make(map[cellKey]bool)

	first := &pathNode{cell: start, f: start.DistanceInt(goal)}
	heap.Push(open, first)
	nodes[keyOf(start)] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.cell.EqualInt(goal) {
			return reconstructPath(current)
		}
		closed[keyOf(current.cell)] = true

		for _, next := range current.cell.Neighbors() {
			k := keyOf(next)
			if !pf.walkable[k] || closed[k] {
				continue
			}

			g := current.g + 1
			node, seen := nodes[k]
			switch {
			case !seen:
				node = &pathNode{cell: next, g: g, f: g + next.DistanceInt(goal), parent: current}
				nodes[k] = node
				heap.Push(open, node)
			case g < node.g:
				node.f -= node.g - g
				node.g = g
				node.parent = current
				heap.Fix(open, node.index)
			}
		}
	}
	return nil
}

func reconstructPath(node *pathNode) []Hexagon {
	var path []Hexagon
	for ; node != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
