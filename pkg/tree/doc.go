// Package tree provides the rooted, ordered tree consumed by the colorers.
//
// # Overview
//
// A [Tree] is an immutable arena: nodes are dense [NodeID] handles into
// slices holding parent links, ordered child lists and labels. Handles are
// stable for the lifetime of the tree, so algorithms keep their own per-node
// state in plain slices indexed by NodeID instead of hanging it off pointers.
//
// # Building
//
// Use a [Builder] to grow a tree top-down, or [FromParents] to decode a
// parent array (the root's parent is -1):
//
//	b := tree.NewBuilder("root")
//	a, _ := b.AddChild(tree.Root, "a")
//	_, _ = b.AddChild(a, "b")
//	t, err := b.Build()
//
//	t, err := tree.FromParents([]int{-1, 0, 0, 1}, nil)
//
// Both reject empty input with DEGENERATE_TREE and malformed input (several
// roots, cycles, unreachable nodes, duplicate labels) with INVALID_TREE.
//
// # Views
//
// Divide-and-conquer code often needs "this node, but only some of its
// children". A [ChildRange] describes that without touching the tree:
//
//	r := tree.FullRange(t, id)     // all children
//	left, right := r.Split()       // halves, shared parent
//
// # Generation
//
// [Generate] builds deterministic pseudo-random trees of a given [Shape] for
// tests, benchmarks and the generate command.
package tree
