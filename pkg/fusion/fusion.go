// Package fusion records how the branches of a multi-child node were
// merged, so that a coloring can be reconstructed top-down.
//
// Every node with at least one child gets a fusion tree. Its leaves stand
// for single-child branches (the node plus one child subtree) and keep the
// branch's [distribution.FixedRootMap]. Its inner nodes stand for the union
// of two adjacent child ranges and keep the min-gray table of the united
// [distribution.MinGrayMap]. Both answer the same query: the minimal
// number of gray nodes for a given root color and black count.
//
// Nodes live in an [Arena] and refer to each other by [Handle].
package fusion

import (
	"sync"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
)

// Handle identifies a node inside an [Arena].
type Handle int

// NoHandle is the zero reference.
const NoHandle Handle = -1

// Kind distinguishes leaf and merge nodes.
type Kind uint8

const (
	Leaf Kind = iota
	Merge
)

func (k Kind) String() string {
	if k == Leaf {
		return "leaf"
	}
	return "merge"
}

type node struct {
	kind        Kind
	left, right Handle
	size        int

	// Leaf only.
	dist *distribution.FixedRootMap

	// Merge only: minGray[c][b], distribution.Invalid when unknown.
	minGray [color.Count][]int
}

// Arena owns the fusion nodes of one solve.
//
// AddLeaf and AddMerge are safe for concurrent use. Queries must not run
// concurrently with additions.
type Arena struct {
	mu    sync.Mutex
	nodes []node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// AddLeaf stores a single-child branch distribution.
func (a *Arena) AddLeaf(dist *distribution.FixedRootMap) Handle {
	return a.add(node{kind: Leaf, left: NoHandle, right: NoHandle, size: dist.Size(), dist: dist})
}

// AddMerge stores the union of the branches left and right, whose merged
// dual map is united.
func (a *Arena) AddMerge(united *distribution.MinGrayMap, left, right Handle) Handle {
	n := node{kind: Merge, left: left, right: right, size: united.Size()}
	for _, c := range color.Colors {
		row := make([]int, united.Size()+1)
		for b := range row {
			row[b] = distribution.Invalid
		}
		n.minGray[c] = row
	}
	for g := 0; g <= united.GrayBound(); g++ {
		for _, c := range color.Colors {
			for _, b := range united.Get(c, g) {
				n.minGray[c][b] = g
			}
		}
	}
	return a.add(n)
}

func (a *Arena) add(n node) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodes = append(a.nodes, n)
	return Handle(len(a.nodes) - 1)
}

// Len returns the number of stored nodes.
func (a *Arena) Len() int { return len(a.nodes) }

// Kind returns the variant of h.
func (a *Arena) Kind(h Handle) Kind { return a.nodes[h].kind }

// Left returns the left operand of a merge node, or NoHandle for a leaf.
func (a *Arena) Left(h Handle) Handle { return a.nodes[h].left }

// Right returns the right operand of a merge node, or NoHandle for a leaf.
func (a *Arena) Right(h Handle) Handle { return a.nodes[h].right }

// Size returns the number of tree nodes covered by h.
func (a *Arena) Size(h Handle) int { return a.nodes[h].size }

// MinGray returns the minimal gray count for root color c and b black
// nodes within the part of the tree covered by h. The second result is
// false when no legal coloring exists.
func (a *Arena) MinGray(h Handle, c color.Color, b int) (int, bool) {
	n := &a.nodes[h]
	if n.kind == Leaf {
		return n.dist.MinGray(c, b)
	}
	if b < 0 || b > n.size {
		return 0, false
	}
	g := n.minGray[c][b]
	return g, g != distribution.Invalid
}
