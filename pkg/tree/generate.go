package tree

import (
	"math/rand/v2"
	"slices"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

// Shape selects the family of trees produced by [Generate].
type Shape string

const (
	// ShapeRandom attaches every node to a uniformly chosen earlier node.
	ShapeRandom Shape = "random"
	// ShapeDeep attaches every node to one of the few most recent nodes,
	// producing long, thin trees.
	ShapeDeep Shape = "deep"
	// ShapePath is a single chain.
	ShapePath Shape = "path"
	// ShapeStar is a root with n-1 leaves.
	ShapeStar Shape = "star"
	// ShapeCaterpillar is a spine of half the nodes with leaves hanging off it.
	ShapeCaterpillar Shape = "caterpillar"
	// ShapeBinary is a complete binary tree in heap order.
	ShapeBinary Shape = "binary"
)

// Shapes lists all supported shapes in a stable order.
var Shapes = []Shape{ShapeRandom, ShapeDeep, ShapePath, ShapeStar, ShapeCaterpillar, ShapeBinary}

// ValidShape reports whether s names a known shape.
func ValidShape(s Shape) bool { return slices.Contains(Shapes, s) }

// Generate returns a tree of n nodes of the given shape. The same
// (n, shape, seed) always yields the same tree.
func Generate(n int, shape Shape, seed uint64) (*Tree, error) {
	if n <= 0 {
		return nil, bwerrors.New(bwerrors.ErrCodeDegenerateTree, "cannot generate a tree of %d nodes", n)
	}
	if !ValidShape(shape) {
		return nil, bwerrors.New(bwerrors.ErrCodeInvalidInput, "unknown tree shape %q", shape)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	parents := make([]int, n)
	parents[0] = -1
	for i := 1; i < n; i++ {
		switch shape {
		case ShapeRandom:
			parents[i] = rng.IntN(i)
		case ShapeDeep:
			parents[i] = max(0, i-1-rng.IntN(3))
		case ShapePath:
			parents[i] = i - 1
		case ShapeStar:
			parents[i] = 0
		case ShapeCaterpillar:
			spine := (n + 1) / 2
			if i < spine {
				parents[i] = i - 1
			} else {
				parents[i] = rng.IntN(spine)
			}
		case ShapeBinary:
			parents[i] = (i - 1) / 2
		}
	}
	return FromParents(parents, nil)
}
