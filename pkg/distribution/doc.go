// Package distribution holds the black/white/gray tables computed per
// subtree by the colorers.
//
// # Tables
//
// A [FixedRootMap] answers "with the subtree root colored c and exactly b
// black nodes in the subtree, how many white nodes can there be at most?".
// Cells that cannot be realized hold [Invalid].
//
// A [MinGrayMap] is the dual view used when merging branches: for each root
// color and gray count g it lists, in ascending order, the black counts b
// whose best coloring uses exactly g gray nodes. Only g up to
// [GrayUpperBound] of the subtree size is kept; larger gray counts never
// appear in an optimal coloring, which is what keeps the merge fast.
//
// [MaxWhite] is the public result: the maximum over root colors of a
// FixedRootMap, for every black count 0..n.
//
// # Recurrences
//
// [SingleNode] seeds a leaf. [ParentOfSingleChild] extends a subtree by a
// new parent whose only child is the old root. [Unite] joins two branches
// that share their root node, summing black and gray counts with a
// [summator.PairwiseSummer] and discounting the shared root once.
package distribution
