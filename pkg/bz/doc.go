// Package bz implements the Berend-Zacker divide-and-conquer algorithm for
// black-white-gray tree coloring.
//
// # Problem
//
// Color every node of a tree black, white or gray so that no edge joins a
// black node to a white one. For each black count b in [0, n] the
// algorithm finds the largest achievable white count, and it reconstructs
// a concrete coloring for any feasible (b, w) pair.
//
// # Decomposition
//
// [Solve] repeatedly picks a separator: a node whose removal leaves no
// component larger than half of the current subtree. The part below the
// separator is solved first and then collapsed ("reduced") into a single
// node carrying its distribution, so every level of recursion works on a
// tree at most half as large. When the separator is the subtree root, its
// children are solved independently and their single-child branches are
// merged pairwise in a balanced binary order with
// [distribution.Unite]. Each merge is recorded in a [fusion.Arena].
//
// The merge only tracks gray counts up to floor(log2(size))+2, which keeps
// each FFT operand of [summator.PairwiseSummer] small. The whole solve
// takes roughly O(n^2 log^3 n) time and O(n^2) space for the per-node
// tables.
//
// # Reconstruction
//
// [Result.Coloring] walks the fusion trees top-down. At every merge it
// picks the root color, then the first split of black nodes between the
// two halves whose gray counts fit the budget. A final pass in level order
// repaints surplus white nodes gray, which never breaks legality.
//
// # Concurrency
//
// A [Result] is immutable; concurrent calls to [Result.Coloring] are safe.
// With [WithParallel], sibling subtrees are solved on separate goroutines
// through an errgroup; results do not depend on scheduling.
//
// # Observing
//
// An [Observer] receives separator, reduce and merge events. [LogObserver]
// writes them to a charm logger at debug level; the default discards them.
package bz
