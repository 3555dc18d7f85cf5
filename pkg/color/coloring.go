package color

import (
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

const uncolored Color = 0xFF

// Coloring assigns colors to the nodes of one tree and keeps per-color
// counts up to date. Nodes start uncolored.
//
// A Coloring is not safe for concurrent modification.
type Coloring struct {
	colors []Color
	count  [Count]int
}

// NewColoring returns an empty coloring for a tree of n nodes.
func NewColoring(n int) *Coloring {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = uncolored
	}
	return &Coloring{colors: colors}
}

// FromSlice builds a coloring from one color per node.
func FromSlice(colors []Color) *Coloring {
	c := NewColoring(len(colors))
	for i, col := range colors {
		c.Set(tree.NodeID(i), col)
	}
	return c
}

// Len returns the number of nodes, colored or not.
func (c *Coloring) Len() int { return len(c.colors) }

// Set colors id, replacing any previous color.
func (c *Coloring) Set(id tree.NodeID, col Color) {
	if prev := c.colors[id]; prev != uncolored {
		c.count[prev]--
	}
	c.colors[id] = col
	c.count[col]++
}

// Color returns the color of id; the second result is false if id is
// still uncolored.
func (c *Coloring) Color(id tree.NodeID) (Color, bool) {
	col := c.colors[id]
	return col, col != uncolored
}

// IsColored reports whether id has a color.
func (c *Coloring) IsColored(id tree.NodeID) bool { return c.colors[id] != uncolored }

// Count returns the number of nodes colored col.
func (c *Coloring) Count(col Color) int { return c.count[col] }

func (c *Coloring) Black() int { return c.count[Black] }
func (c *Coloring) White() int { return c.count[White] }
func (c *Coloring) Gray() int  { return c.count[Gray] }

// Colored returns the number of colored nodes.
func (c *Coloring) Colored() int { return c.count[Black] + c.count[White] + c.count[Gray] }

// Colors returns a copy of the per-node colors. It panics if any node is
// uncolored.
func (c *Coloring) Colors() []Color {
	out := make([]Color, len(c.colors))
	for i, col := range c.colors {
		if col == uncolored {
			panic("color: Colors called on incomplete coloring")
		}
		out[i] = col
	}
	return out
}

// Equal reports whether two colorings assign the same color to every node.
func (c *Coloring) Equal(other *Coloring) bool {
	if len(c.colors) != len(other.colors) {
		return false
	}
	for i := range c.colors {
		if c.colors[i] != other.colors[i] {
			return false
		}
	}
	return true
}

// Validate checks that c colors every node of t and that no edge joins a
// black node to a white one.
func Validate(t *tree.Tree, c *Coloring) error {
	if c.Len() != t.Len() {
		return bwerrors.New(bwerrors.ErrCodeInvalidInput, "coloring has %d nodes, tree has %d", c.Len(), t.Len())
	}
	for i := range c.colors {
		if c.colors[i] == uncolored {
			return bwerrors.New(bwerrors.ErrCodeInvalidInput, "node %q is uncolored", t.Label(tree.NodeID(i)))
		}
	}
	for _, e := range t.Edges() {
		pc, cc := c.colors[e.Parent], c.colors[e.Child]
		if !Compatible(pc, cc) {
			return bwerrors.New(bwerrors.ErrCodeInvalidInput, "edge %q-%q joins %s and %s",
				t.Label(e.Parent), t.Label(e.Child), pc, cc)
		}
	}
	return nil
}

// ByLabel returns the coloring keyed by node label.
func ByLabel(t *tree.Tree, c *Coloring) map[string]Color {
	out := make(map[string]Color, t.Len())
	for i, col := range c.colors {
		if col != uncolored {
			out[t.Label(tree.NodeID(i))] = col
		}
	}
	return out
}
