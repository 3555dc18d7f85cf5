package bz

import (
	"fmt"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/fusion"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// reconstructor colors one tree top-down from the fusion records.
//
// Every call colors view with exactly black black and gray gray nodes,
// where the counts include view.Node even if an enclosing merge has
// already colored it.
type reconstructor struct {
	t     *tree.Tree
	arena *fusion.Arena
	top   []fusion.Handle
	col   *color.Coloring
}

func (rc *reconstructor) color(view tree.ChildRange, f fusion.Handle, black, gray int) {
	v := view.Node
	if rc.t.IsLeaf(v) {
		switch {
		case black == 1:
			rc.col.Set(v, color.Black)
		case gray == 1:
			rc.col.Set(v, color.Gray)
		default:
			rc.col.Set(v, color.White)
		}
		return
	}
	if rc.t.HasOnlyChild(v) || view.Single() {
		rc.colorSingleChild(v, view.Lo, black, gray)
		return
	}

	if f == fusion.NoHandle {
		f = rc.top[v]
	}
	cur, colored := rc.col.Color(v)
	fits := func(c color.Color) bool {
		if !rc.parentAllows(v, c) || (colored && cur != c) {
			return false
		}
		g, ok := rc.arena.MinGray(f, c, black)
		return ok && g <= gray
	}

	// Both halves count v, so its own contribution is added once more
	// before splitting.
	c := color.Gray
	switch {
	case fits(color.Black):
		c = color.Black
		black++
	case fits(color.White):
		c = color.White
	default:
		gray++
	}
	rc.col.Set(v, c)

	lf, rf := rc.arena.Left(f), rc.arena.Right(f)
	lv, rv := view.Split()
	for bl := 0; bl <= black; bl++ {
		lg, lok := rc.arena.MinGray(lf, c, bl)
		rg, rok := rc.arena.MinGray(rf, c, black-bl)
		if lok && rok && lg+rg <= gray {
			rc.color(lv, lf, bl, lg)
			rc.color(rv, rf, black-bl, rg)
			return
		}
	}
	panic(fmt.Sprintf("bz: no split of %d black nodes for node %d children %d..%d as %s",
		black, v, view.Lo, view.Hi, c))
}

// colorSingleChild handles v together with its child at pos only.
func (rc *reconstructor) colorSingleChild(v tree.NodeID, pos, black, gray int) {
	c, colored := rc.col.Color(v)
	if !colored {
		f := rc.top[v]
		exact := func(c color.Color) bool {
			g, ok := rc.arena.MinGray(f, c, black)
			return ok && g == gray && rc.parentAllows(v, c)
		}
		switch {
		case exact(color.Black):
			c = color.Black
		case exact(color.White):
			c = color.White
		default:
			c = color.Gray
		}
		rc.col.Set(v, c)
	}

	switch c {
	case color.Black:
		black--
	case color.Gray:
		gray--
	}
	child := rc.t.ChildAt(v, pos)
	rc.color(tree.FullRange(rc.t, child), fusion.NoHandle, black, gray)
}

// parentAllows reports whether v may take color c given its parent's
// color. An uncolored parent allows anything.
func (rc *reconstructor) parentAllows(v tree.NodeID, c color.Color) bool {
	p, ok := rc.t.Parent(v)
	if !ok {
		return true
	}
	pc, colored := rc.col.Color(p)
	return !colored || color.Compatible(pc, c)
}

// trimWhite repaints white nodes gray in level order until exactly white
// remain. Gray is compatible with everything, so legality is preserved.
func (rc *reconstructor) trimWhite(white int) {
	excess := rc.col.White() - white
	for _, v := range rc.t.LevelOrder() {
		if excess <= 0 {
			return
		}
		if c, _ := rc.col.Color(v); c == color.White {
			rc.col.Set(v, color.Gray)
			excess--
		}
	}
}
