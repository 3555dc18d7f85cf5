package bz

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bwcolor/pkg/distribution"
	"github.com/matzehuels/bwcolor/pkg/fusion"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// decomposer holds the per-node state of one solve.
//
// size[v] is the current size of v's subtree, where every reduced node
// counts as one. It always equals 1 + the sum over v's children, which
// reduce maintains with atomic adds so that concurrently solved siblings
// can share ancestors.
type decomposer struct {
	t     *tree.Tree
	opts  options
	size  []atomic.Int32
	dist  []*distribution.FixedRootMap
	top   []fusion.Handle
	arena *fusion.Arena
}

// branch is one operand of a merge: a dual distribution plus the fusion
// node that records how it was built.
type branch struct {
	dual   *distribution.MinGrayMap
	fusion fusion.Handle
}

func newDecomposer(t *tree.Tree, opts options) *decomposer {
	n := t.Len()
	d := &decomposer{
		t:     t,
		opts:  opts,
		size:  make([]atomic.Int32, n),
		dist:  make([]*distribution.FixedRootMap, n),
		top:   make([]fusion.Handle, n),
		arena: fusion.NewArena(),
	}
	for v, s := range t.SubtreeSizes() {
		d.size[v].Store(int32(s))
		d.top[v] = fusion.NoHandle
		if s == 1 {
			d.dist[v] = distribution.SingleNode()
		}
	}
	return d
}

func (d *decomposer) sizeOf(v tree.NodeID) int { return int(d.size[v].Load()) }

// build computes dist[r] for the current subtree of r and reduces r.
func (d *decomposer) build(ctx context.Context, r tree.NodeID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch d.sizeOf(r) {
	case 1:
		return nil
	case 2:
		// Exactly one child, already reduced or a leaf.
		m := distribution.ParentOfSingleChild(d.dist[d.t.ChildAt(r, 0)])
		d.dist[r] = m
		d.top[r] = d.arena.AddLeaf(m)
		d.reduce(r)
		return nil
	}

	sep := d.separator(r)
	d.opts.observer.OnSeparator(r, sep, d.sizeOf(r))

	if sep != r {
		if err := d.build(ctx, sep); err != nil {
			return err
		}
		if d.sizeOf(sep) != 1 {
			d.reduce(sep)
		}
		return d.build(ctx, r)
	}

	if err := d.buildChildren(ctx, r); err != nil {
		return err
	}

	cc := d.t.ChildCount(r)
	branches := make([]branch, cc)
	for i := range branches {
		m := distribution.ParentOfSingleChild(d.dist[d.t.ChildAt(r, i)])
		branches[i] = branch{dual: distribution.FromFixedRoot(m), fusion: d.arena.AddLeaf(m)}
	}

	merged := d.merge(tree.FullRange(d.t, r), branches)
	d.dist[r] = merged.dual.ToFixedRoot()
	d.top[r] = merged.fusion
	if d.sizeOf(r) != 1 {
		d.reduce(r)
	}
	return nil
}

// buildChildren solves every child subtree of r, concurrently when enabled
// and r is large enough.
func (d *decomposer) buildChildren(ctx context.Context, r tree.NodeID) error {
	cc := d.t.ChildCount(r)
	if !d.opts.parallel || d.sizeOf(r) < d.opts.parallelThreshold {
		for i := 0; i < cc; i++ {
			if err := d.build(ctx, d.t.ChildAt(r, i)); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < cc; i++ {
		child := d.t.ChildAt(r, i)
		g.Go(func() error { return d.build(gctx, child) })
	}
	return g.Wait()
}

// separator returns the first node in level order below r whose removal
// splits the current subtree of r into parts of at most half its size.
// Reduced nodes are not descended into.
func (d *decomposer) separator(r tree.NodeID) tree.NodeID {
	total := d.sizeOf(r)
	half := total / 2

	queue := []tree.NodeID{r}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		sv := d.sizeOf(v)
		if total-sv <= half && d.childrenAtMost(v, half) {
			return v
		}
		if sv != 1 {
			for i := 0; i < d.t.ChildCount(v); i++ {
				queue = append(queue, d.t.ChildAt(v, i))
			}
		}
	}
	panic(fmt.Sprintf("bz: no separator in subtree of node %d (size %d)", r, total))
}

func (d *decomposer) childrenAtMost(v tree.NodeID, limit int) bool {
	for i := 0; i < d.t.ChildCount(v); i++ {
		if d.sizeOf(d.t.ChildAt(v, i)) > limit {
			return false
		}
	}
	return true
}

// merge unites the single-child branches of view in balanced binary order.
func (d *decomposer) merge(view tree.ChildRange, branches []branch) branch {
	if view.Single() {
		return branches[view.Lo]
	}
	lv, rv := view.Split()
	left := d.merge(lv, branches)
	right := d.merge(rv, branches)

	united := distribution.Unite(left.dual, right.dual, d.opts.summer)
	h := d.arena.AddMerge(united, left.fusion, right.fusion)
	d.opts.observer.OnMerge(view, united)
	return branch{dual: united, fusion: h}
}

// reduce collapses v into a single node and shrinks its ancestors.
func (d *decomposer) reduce(v tree.NodeID) {
	delta := d.size[v].Swap(1) - 1
	for p, ok := d.t.Parent(v); ok && delta != 0; p, ok = d.t.Parent(p) {
		d.size[p].Add(-delta)
	}
	d.opts.observer.OnReduce(v)
}
