// Package exact computes black-white-gray tables with the classic O(n^2)
// tree knapsack.
//
// Every node folds its children in one at a time, combining
// (root color, black count) tables and remembering which child color and
// child black count produced each cell. It is simpler and slower than
// package bz and serves as a reference for it.
package exact

import (
	"context"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// choice packs a child's color and black count as black*color.Count+color.
// noChoice marks an unreachable cell.
type choice int32

const noChoice choice = -1

func pack(c color.Color, b int) choice { return choice(b*color.Count + int(c)) }

func (ch choice) unpack() (color.Color, int) {
	return color.Color(int(ch) % color.Count), int(ch) / color.Count
}

// Result holds the tables of one solved tree.
type Result struct {
	t        *tree.Tree
	root     *distribution.FixedRootMap
	maxWhite distribution.MaxWhite

	// choices[v][i][pc][b] is the child choice made when child i of v was
	// folded into a table whose root color is pc and black count is b.
	choices [][][color.Count][]choice
}

// Solve computes the MaxWhite table of t.
func Solve(ctx context.Context, t *tree.Tree) (*Result, error) {
	if t == nil || t.Len() == 0 {
		return nil, bwerrors.New(bwerrors.ErrCodeDegenerateTree, "tree has no nodes")
	}

	n := t.Len()
	tables := make([]*distribution.FixedRootMap, n)
	choices := make([][][color.Count][]choice, n)

	order := t.LevelOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		v := order[i]
		acc := distribution.SingleNode()
		choices[v] = make([][color.Count][]choice, t.ChildCount(v))
		for j := 0; j < t.ChildCount(v); j++ {
			child := t.ChildAt(v, j)
			acc, choices[v][j] = fold(acc, tables[child])
			tables[child] = nil
		}
		tables[v] = acc
	}

	root := tables[tree.Root]
	return &Result{
		t:        t,
		root:     root,
		maxWhite: root.Table(),
		choices:  choices,
	}, nil
}

// fold attaches a child subtree with table child below the root of acc.
func fold(acc, child *distribution.FixedRootMap) (*distribution.FixedRootMap, [color.Count][]choice) {
	out := distribution.NewFixedRootMap(acc.Size() + child.Size())
	var picks [color.Count][]choice
	for _, pc := range color.Colors {
		row := make([]choice, out.Size()+1)
		for b := range row {
			row[b] = noChoice
		}
		picks[pc] = row
	}

	for _, pc := range color.Colors {
		for b1 := 0; b1 <= acc.Size(); b1++ {
			w1 := acc.Get(pc, b1)
			if w1 == distribution.Invalid {
				continue
			}
			for _, cc := range color.Colors {
				if !color.Compatible(pc, cc) {
					continue
				}
				for b2 := 0; b2 <= child.Size(); b2++ {
					w2 := child.Get(cc, b2)
					if w2 == distribution.Invalid {
						continue
					}
					if w := w1 + w2; w > out.Get(pc, b1+b2) {
						out.Set(pc, b1+b2, w)
						picks[pc][b1+b2] = pack(cc, b2)
					}
				}
			}
		}
	}
	return out, picks
}

// Tree returns the solved tree.
func (r *Result) Tree() *tree.Tree { return r.t }

// MaxWhite returns the table b -> maximum white count.
func (r *Result) MaxWhite() distribution.MaxWhite { return r.maxWhite }

// ColoringExists reports whether a legal coloring with exactly black black
// and white white nodes exists.
func (r *Result) ColoringExists(black, white int) bool {
	return black >= 0 && white >= 0 && black+white <= r.t.Len() && r.maxWhite.At(black) >= white
}

// Coloring returns a legal coloring with exactly black black nodes and
// white white nodes.
func (r *Result) Coloring(black, white int) (*color.Coloring, error) {
	if err := bwerrors.ValidateCounts(r.t.Len(), black, white); err != nil {
		return nil, err
	}
	best := r.maxWhite.At(black)
	if best < white {
		return nil, bwerrors.New(bwerrors.ErrCodeInfeasibleRequest,
			"no coloring with %d black and %d white nodes (at most %d white)", black, white, best)
	}

	rootColor := color.Gray
	for _, c := range color.Colors {
		if r.root.Get(c, black) == best {
			rootColor = c
			break
		}
	}

	col := color.NewColoring(r.t.Len())
	blacks := make([]int, r.t.Len())
	col.Set(tree.Root, rootColor)
	blacks[tree.Root] = black

	for _, v := range r.t.LevelOrder() {
		c, _ := col.Color(v)
		b := blacks[v]
		for j := r.t.ChildCount(v) - 1; j >= 0; j-- {
			pick := r.choices[v][j][c][b]
			if pick == noChoice {
				panic("exact: unreachable table cell during reconstruction")
			}
			cc, cb := pick.unpack()
			child := r.t.ChildAt(v, j)
			col.Set(child, cc)
			blacks[child] = cb
			b -= cb
		}
	}

	excess := col.White() - white
	for _, v := range r.t.LevelOrder() {
		if excess <= 0 {
			break
		}
		if c, _ := col.Color(v); c == color.White {
			col.Set(v, color.Gray)
			excess--
		}
	}
	return col, nil
}
