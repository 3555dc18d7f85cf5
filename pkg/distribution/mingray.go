package distribution

import (
	"math/bits"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/summator"
)

// GrayUpperBound returns floor(log2(size)) + 2, the largest gray count kept
// by a [MinGrayMap] of a subtree with size nodes.
func GrayUpperBound(size int) int {
	return bits.Len(uint(size)) - 1 + 2
}

// MinGrayMap is the gray-indexed dual of a [FixedRootMap]: for each root
// color c and gray count g <= GrayBound it lists the black counts b, in
// ascending order, whose maximal coloring leaves exactly g gray nodes.
type MinGrayMap struct {
	size    int
	bound   int
	buckets [color.Count][][]int
}

func newMinGrayMap(size int) *MinGrayMap {
	m := &MinGrayMap{size: size, bound: GrayUpperBound(size)}
	for c := range m.buckets {
		m.buckets[c] = make([][]int, m.bound+1)
	}
	return m
}

// FromFixedRoot builds the dual of fixed, dropping cells whose gray count
// exceeds the bound.
func FromFixedRoot(fixed *FixedRootMap) *MinGrayMap {
	m := newMinGrayMap(fixed.size)
	for b := 0; b <= fixed.size; b++ {
		for _, c := range color.Colors {
			g, ok := fixed.MinGray(c, b)
			if ok && g <= m.bound {
				m.buckets[c][g] = append(m.buckets[c][g], b)
			}
		}
	}
	return m
}

// Size returns the number of nodes in the subtree.
func (m *MinGrayMap) Size() int { return m.size }

// GrayBound returns the largest gray count stored.
func (m *MinGrayMap) GrayBound() int { return m.bound }

// Get returns the ascending black counts for root color c and exactly g
// gray nodes. It returns nil when g is negative or above the bound. The
// slice must not be modified.
func (m *MinGrayMap) Get(c color.Color, g int) []int {
	if g < 0 || g > m.bound {
		return nil
	}
	return m.buckets[c][g]
}

// ToFixedRoot converts back to a [FixedRootMap]. Cells dropped by the gray
// bound come back as [Invalid].
func (m *MinGrayMap) ToFixedRoot() *FixedRootMap {
	fixed := NewFixedRootMap(m.size)
	for g := 0; g <= m.bound; g++ {
		for _, c := range color.Colors {
			for _, b := range m.buckets[c][g] {
				fixed.Set(c, b, m.size-(b+g))
			}
		}
	}
	return fixed
}

// Unite merges two branches that share their root node into one map of
// size a.Size()+b.Size()-1.
//
// For every color the black counts of both branches are summed over all
// gray splits g1+g2 = g. Gray counts are visited from the largest down so
// the smallest gray reaching a black total wins. The shared root is then
// discounted once: a black root was counted in both black totals, a gray
// root in both gray totals.
func Unite(a, b *MinGrayMap, sum summator.PairwiseSummer) *MinGrayMap {
	m := newMinGrayMap(a.size + b.size - 1)
	blackToGray := make([]int, m.size+2)

	for _, c := range color.Colors {
		for x := range blackToGray {
			blackToGray[x] = Invalid
		}

		for g := m.bound; g >= 0; g-- {
			for g1 := 0; g1 <= g; g1++ {
				left, right := a.Get(c, g1), b.Get(c, g-g1)
				if len(left) == 0 || len(right) == 0 {
					continue
				}
				for _, x := range sum.Sums(left, right) {
					blackToGray[x] = g
				}
			}
		}

		for x, g := range blackToGray {
			if g == Invalid {
				continue
			}
			switch c {
			case color.Black:
				if x >= 1 {
					m.buckets[c][g] = append(m.buckets[c][g], x-1)
				}
			case color.White:
				m.buckets[c][g] = append(m.buckets[c][g], x)
			case color.Gray:
				if g >= 1 {
					m.buckets[c][g-1] = append(m.buckets[c][g-1], x)
				}
			}
		}
	}
	return m
}
