package bz

import (
	"context"
	"time"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/fusion"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Result is the outcome of [Solve]: the MaxWhite table of a tree plus the
// fusion records needed to reconstruct colorings.
type Result struct {
	t        *tree.Tree
	maxWhite distribution.MaxWhite
	top      []fusion.Handle
	arena    *fusion.Arena
}

// Solve computes the MaxWhite table of t.
//
// Solve returns ctx's error if ctx is canceled before it finishes. A nil
// tree is rejected with DEGENERATE_TREE.
func Solve(ctx context.Context, t *tree.Tree, opts ...Option) (*Result, error) {
	if t == nil || t.Len() == 0 {
		return nil, bwerrors.New(bwerrors.ErrCodeDegenerateTree, "tree has no nodes")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	d := newDecomposer(t, o)
	if err := d.build(ctx, tree.Root); err != nil {
		return nil, err
	}
	o.logger.Debug("bz solve finished",
		"nodes", t.Len(),
		"fusion_nodes", d.arena.Len(),
		"parallel", o.parallel,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return &Result{
		t:        t,
		maxWhite: d.dist[tree.Root].Table(),
		top:      d.top,
		arena:    d.arena,
	}, nil
}

// Tree returns the solved tree.
func (r *Result) Tree() *tree.Tree { return r.t }

// MaxWhite returns the table b -> maximum white count.
func (r *Result) MaxWhite() distribution.MaxWhite { return r.maxWhite }

// FusionNodes returns the number of fusion records kept for reconstruction.
func (r *Result) FusionNodes() int { return r.arena.Len() }

// ColoringExists reports whether some legal coloring has exactly black
// black nodes and white white nodes.
func (r *Result) ColoringExists(black, white int) bool {
	return black >= 0 && white >= 0 && black+white <= r.t.Len() && r.maxWhite.At(black) >= white
}

// Coloring returns a legal coloring with exactly black black nodes and
// white white nodes, or an INFEASIBLE_REQUEST error if there is none.
//
// Every call returns a fresh coloring.
func (r *Result) Coloring(black, white int) (*color.Coloring, error) {
	if err := bwerrors.ValidateCounts(r.t.Len(), black, white); err != nil {
		return nil, err
	}
	if best := r.maxWhite.At(black); best < white {
		return nil, bwerrors.New(bwerrors.ErrCodeInfeasibleRequest,
			"no coloring with %d black and %d white nodes (at most %d white)", black, white, best)
	}

	rc := &reconstructor{
		t:     r.t,
		arena: r.arena,
		top:   r.top,
		col:   color.NewColoring(r.t.Len()),
	}
	gray := r.t.Len() - (black + r.maxWhite.At(black))
	rc.color(tree.FullRange(r.t, tree.Root), fusion.NoHandle, black, gray)
	rc.trimWhite(white)
	return rc.col, nil
}
