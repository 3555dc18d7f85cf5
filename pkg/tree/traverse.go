package tree

// LevelOrder returns all nodes in breadth-first order from the root,
// children visited in their stored order.
func (t *Tree) LevelOrder() []NodeID {
	order := make([]NodeID, 0, t.Len())
	order = append(order, Root)
	for i := 0; i < len(order); i++ {
		order = append(order, t.children[order[i]]...)
	}
	return order
}

// SubtreeSizes returns, for every node, the number of nodes in its subtree
// (itself included).
func (t *Tree) SubtreeSizes() []int {
	sizes := make([]int, t.Len())
	order := t.LevelOrder()
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		sizes[id]++
		if p := t.parent[id]; p != NoNode {
			sizes[p] += sizes[id]
		}
	}
	return sizes
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	depth := make([]int, t.Len())
	best := 0
	for _, id := range t.LevelOrder() {
		if p := t.parent[id]; p != NoNode {
			depth[id] = depth[p] + 1
		}
		best = max(best, depth[id])
	}
	return best
}

// ChildRange is a non-mutating view of a node with only the children at
// positions Lo..Hi (inclusive) attached. A range with Hi < Lo has no
// children.
type ChildRange struct {
	Node NodeID
	Lo   int
	Hi   int
}

// FullRange returns the view of id with all of its children.
func FullRange(t *Tree, id NodeID) ChildRange {
	return ChildRange{Node: id, Lo: 0, Hi: t.ChildCount(id) - 1}
}

// Len returns the number of children in the view.
func (r ChildRange) Len() int { return max(r.Hi-r.Lo+1, 0) }

// Single reports whether exactly one child is in view.
func (r ChildRange) Single() bool { return r.Lo == r.Hi }

// Mid returns the position that ends the left half of a split.
func (r ChildRange) Mid() int { return (r.Lo + r.Hi) / 2 }

// Split divides the view into Lo..Mid and Mid+1..Hi. Both halves share the
// same node.
func (r ChildRange) Split() (left, right ChildRange) {
	mid := r.Mid()
	return ChildRange{Node: r.Node, Lo: r.Lo, Hi: mid}, ChildRange{Node: r.Node, Lo: mid + 1, Hi: r.Hi}
}
