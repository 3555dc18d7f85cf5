package tree

import (
	"strconv"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

// NodeID is a dense handle of a node inside one [Tree].
type NodeID int

const (
	// Root is the handle of the root node of every tree.
	Root NodeID = 0

	// NoNode marks a missing node, e.g. the parent of the root.
	NoNode NodeID = -1
)

// Tree is an immutable rooted tree with ordered children.
//
// The zero value is not usable; construct trees with [Builder] or
// [FromParents]. A Tree is safe for concurrent reads.
type Tree struct {
	parent   []NodeID
	children [][]NodeID
	labels   []string
	index    map[string]NodeID
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.parent) }

// Root returns the root handle.
func (t *Tree) Root() NodeID { return Root }

// Parent returns the parent of id. The second result is false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.parent[id]
	return p, p != NoNode
}

// Children returns a copy of the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	out := make([]NodeID, len(t.children[id]))
	copy(out, t.children[id])
	return out
}

// ChildCount returns the number of children of id.
func (t *Tree) ChildCount(id NodeID) int { return len(t.children[id]) }

// ChildAt returns the child of id at position pos.
func (t *Tree) ChildAt(id NodeID, pos int) NodeID { return t.children[id][pos] }

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id NodeID) bool { return len(t.children[id]) == 0 }

// HasOnlyChild reports whether id has exactly one child.
func (t *Tree) HasOnlyChild(id NodeID) bool { return len(t.children[id]) == 1 }

// Label returns the label of id.
func (t *Tree) Label(id NodeID) string { return t.labels[id] }

// Lookup finds a node by label.
func (t *Tree) Lookup(label string) (NodeID, bool) {
	id, ok := t.index[label]
	return id, ok
}

// Parents returns the parent array of the tree, with -1 for the root.
// It is the inverse of [FromParents].
func (t *Tree) Parents() []int {
	out := make([]int, len(t.parent))
	for i, p := range t.parent {
		out[i] = int(p)
	}
	return out
}

// Labels returns a copy of all labels, indexed by NodeID.
func (t *Tree) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Edge is a parent-child pair.
type Edge struct {
	Parent NodeID
	Child  NodeID
}

// Edges returns all edges in level order of their child.
func (t *Tree) Edges() []Edge {
	edges := make([]Edge, 0, t.Len()-1)
	for _, id := range t.LevelOrder() {
		for _, c := range t.children[id] {
			edges = append(edges, Edge{Parent: id, Child: c})
		}
	}
	return edges
}

// =============================================================================
// Construction
// =============================================================================

// Builder grows a tree top-down. The root exists from the start.
type Builder struct {
	parent   []NodeID
	children [][]NodeID
	labels   []string
	index    map[string]NodeID
}

// NewBuilder starts a tree whose root carries rootLabel.
func NewBuilder(rootLabel string) *Builder {
	return &Builder{
		parent:   []NodeID{NoNode},
		children: [][]NodeID{nil},
		labels:   []string{rootLabel},
		index:    map[string]NodeID{rootLabel: Root},
	}
}

// AddChild appends a new last child to parent and returns its handle.
// An empty label is replaced by the decimal node id.
func (b *Builder) AddChild(parent NodeID, label string) (NodeID, error) {
	if parent < 0 || int(parent) >= len(b.parent) {
		return NoNode, bwerrors.New(bwerrors.ErrCodeInvalidTree, "unknown parent node %d", parent)
	}
	id := NodeID(len(b.parent))
	if label == "" {
		label = strconv.Itoa(int(id))
	}
	if _, dup := b.index[label]; dup {
		return NoNode, bwerrors.New(bwerrors.ErrCodeInvalidTree, "duplicate node label %q", label)
	}
	b.parent = append(b.parent, parent)
	b.children = append(b.children, nil)
	b.children[parent] = append(b.children[parent], id)
	b.labels = append(b.labels, label)
	b.index[label] = id
	return id, nil
}

// Len returns the number of nodes added so far, root included.
func (b *Builder) Len() int { return len(b.parent) }

// Build validates labels and returns the finished tree. The builder must not
// be used afterwards.
func (b *Builder) Build() (*Tree, error) {
	if b.labels[Root] == "" {
		delete(b.index, "")
		b.labels[Root] = "0"
		if _, dup := b.index["0"]; dup {
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "duplicate node label %q", "0")
		}
		b.index["0"] = Root
	}
	for _, l := range b.labels {
		if err := bwerrors.ValidateLabel(l); err != nil {
			return nil, err
		}
	}
	return &Tree{parent: b.parent, children: b.children, labels: b.labels, index: b.index}, nil
}

// FromParents builds a tree from a parent array: parents[i] is the parent of
// node i, and exactly one entry is -1. Children keep increasing index order.
// Nodes are renumbered in level order, so handles of the result generally
// differ from input indices; labels carry the identity across. labels may be
// nil, in which case original indices become labels.
func FromParents(parents []int, labels []string) (*Tree, error) {
	n := len(parents)
	if n == 0 {
		return nil, bwerrors.New(bwerrors.ErrCodeDegenerateTree, "tree has no nodes")
	}
	if labels != nil && len(labels) != n {
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "got %d labels for %d nodes", len(labels), n)
	}

	root := -1
	kids := make([][]int, n)
	for i, p := range parents {
		switch {
		case p == -1:
			if root != -1 {
				return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "nodes %d and %d are both roots", root, i)
			}
			root = i
		case p < 0 || p >= n:
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "node %d has out-of-range parent %d", i, p)
		case p == i:
			return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "node %d is its own parent", i)
		default:
			kids[p] = append(kids[p], i)
		}
	}
	if root == -1 {
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "no root (parent -1) found")
	}

	label := func(i int) string {
		if labels == nil || labels[i] == "" {
			return strconv.Itoa(i)
		}
		return labels[i]
	}

	b := NewBuilder(label(root))
	ids := make([]NodeID, n)
	for i := range ids {
		ids[i] = NoNode
	}
	ids[root] = Root
	queue := []int{root}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, c := range kids[v] {
			id, err := b.AddChild(ids[v], label(c))
			if err != nil {
				return nil, err
			}
			ids[c] = id
			queue = append(queue, c)
		}
	}
	if b.Len() != n {
		for i, id := range ids {
			if id == NoNode {
				return nil, bwerrors.New(bwerrors.ErrCodeInvalidTree, "node %d is not reachable from the root (cycle)", i)
			}
		}
	}
	return b.Build()
}

// Path returns a path of n nodes, each node the only child of the previous.
func Path(n int) (*Tree, error) {
	parents := make([]int, n)
	for i := range parents {
		parents[i] = i - 1
	}
	return FromParents(parents, nil)
}

// Star returns a root with n-1 leaf children.
func Star(n int) (*Tree, error) {
	parents := make([]int, n)
	for i := range parents {
		parents[i] = 0
	}
	if n > 0 {
		parents[0] = -1
	}
	return FromParents(parents, nil)
}
