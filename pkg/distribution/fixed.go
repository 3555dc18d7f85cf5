package distribution

import (
	"github.com/matzehuels/bwcolor/pkg/color"
)

// FixedRootMap stores, per root color and black count b in [0, size], the
// maximum number of white nodes in a subtree of size nodes.
type FixedRootMap struct {
	size  int
	table [color.Count][]int
}

// NewFixedRootMap returns a map for a subtree of size nodes with every cell
// set to [Invalid].
func NewFixedRootMap(size int) *FixedRootMap {
	m := &FixedRootMap{size: size}
	for c := range m.table {
		row := make([]int, size+1)
		for b := range row {
			row[b] = Invalid
		}
		m.table[c] = row
	}
	return m
}

// SingleNode returns the map of a one-node subtree: black uses one black
// node, white one white node, gray neither.
func SingleNode() *FixedRootMap {
	m := NewFixedRootMap(1)
	m.Set(color.Black, 1, 0)
	m.Set(color.White, 0, 1)
	m.Set(color.Gray, 0, 0)
	return m
}

// Size returns the number of nodes in the subtree.
func (m *FixedRootMap) Size() int { return m.size }

// Get returns the cell for root color c and b black nodes, or [Invalid] if
// b is outside [0, size].
func (m *FixedRootMap) Get(c color.Color, b int) int {
	if b < 0 || b > m.size {
		return Invalid
	}
	return m.table[c][b]
}

// Set stores w in the cell for root color c and b black nodes.
func (m *FixedRootMap) Set(c color.Color, b, w int) {
	m.table[c][b] = w
}

// Max returns the best white count for b over all root colors.
func (m *FixedRootMap) Max(b int) int {
	best := Invalid
	for _, c := range color.Colors {
		best = max(best, m.Get(c, b))
	}
	return best
}

// MinGray returns size-(b+white) for the cell (c, b). The second result is
// false for invalid cells.
func (m *FixedRootMap) MinGray(c color.Color, b int) (int, bool) {
	w := m.Get(c, b)
	if w == Invalid {
		return 0, false
	}
	return m.size - (b + w), true
}

// Table returns the root-color-free [MaxWhite] view.
func (m *FixedRootMap) Table() MaxWhite {
	values := make([]int, m.size+1)
	for b := range values {
		values[b] = m.Max(b)
	}
	return MaxWhite{values: values}
}

// ParentOfSingleChild returns the map of the subtree obtained by giving
// child's root a new parent that has no other children.
//
// A black parent needs a non-white child, a white parent a non-black child;
// a gray parent accepts anything.
func ParentOfSingleChild(child *FixedRootMap) *FixedRootMap {
	m := NewFixedRootMap(child.size + 1)
	for b := 0; b <= m.size; b++ {
		m.table[color.Black][b] = max(child.Get(color.Black, b-1), child.Get(color.Gray, b-1))

		if w := max(child.Get(color.White, b), child.Get(color.Gray, b)); w != Invalid {
			m.table[color.White][b] = w + 1
		}

		m.table[color.Gray][b] = child.Max(b)
	}
	return m
}
