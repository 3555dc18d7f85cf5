package tree

import (
	"slices"
	"testing"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

func TestFromParents(t *testing.T) {
	tr, err := FromParents([]int{-1, 0, 0, 1}, []string{"root", "a", "b", "c"})
	if err != nil {
		t.Fatalf("FromParents() error: %v", err)
	}

	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}
	if tr.ChildCount(Root) != 2 {
		t.Errorf("ChildCount(root) = %d, want 2", tr.ChildCount(Root))
	}
	a, ok := tr.Lookup("a")
	if !ok {
		t.Fatal("Lookup(a) failed")
	}
	if !tr.HasOnlyChild(a) {
		t.Error("a should have exactly one child")
	}
	c := tr.ChildAt(a, 0)
	if tr.Label(c) != "c" || !tr.IsLeaf(c) {
		t.Errorf("child of a = %q, want leaf c", tr.Label(c))
	}
	if p, ok := tr.Parent(c); !ok || p != a {
		t.Errorf("Parent(c) = %d, %v; want %d, true", p, ok, a)
	}
	if _, ok := tr.Parent(Root); ok {
		t.Error("root should have no parent")
	}
}

func TestFromParentsErrors(t *testing.T) {
	tests := []struct {
		name     string
		parents  []int
		labels   []string
		wantCode bwerrors.Code
	}{
		{"empty", nil, nil, bwerrors.ErrCodeDegenerateTree},
		{"two roots", []int{-1, -1}, nil, bwerrors.ErrCodeInvalidTree},
		{"no root", []int{1, 0}, nil, bwerrors.ErrCodeInvalidTree},
		{"out of range", []int{-1, 5}, nil, bwerrors.ErrCodeInvalidTree},
		{"self parent", []int{-1, 1}, nil, bwerrors.ErrCodeInvalidTree},
		{"cycle", []int{-1, 2, 1}, nil, bwerrors.ErrCodeInvalidTree},
		{"label count", []int{-1, 0}, []string{"x"}, bwerrors.ErrCodeInvalidTree},
		{"duplicate labels", []int{-1, 0}, []string{"x", "x"}, bwerrors.ErrCodeInvalidTree},
		{"bad label", []int{-1, 0}, []string{"x", "a\"b"}, bwerrors.ErrCodeInvalidTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromParents(tt.parents, tt.labels)
			if err == nil {
				t.Fatal("FromParents() should fail")
			}
			if !bwerrors.Is(err, tt.wantCode) {
				t.Errorf("FromParents() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestFromParentsRenumbersInLevelOrder(t *testing.T) {
	// Root is node 2 in the input.
	tr, err := FromParents([]int{2, 2, -1, 0}, nil)
	if err != nil {
		t.Fatalf("FromParents() error: %v", err)
	}
	want := []string{"2", "0", "1", "3"}
	if got := tr.Labels(); !slices.Equal(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if got := tr.Parents(); !slices.Equal(got, []int{-1, 0, 0, 1}) {
		t.Errorf("Parents() = %v", got)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder("root")
	a, err := b.AddChild(Root, "a")
	if err != nil {
		t.Fatalf("AddChild() error: %v", err)
	}
	if _, err := b.AddChild(a, ""); err != nil {
		t.Fatalf("AddChild() with empty label error: %v", err)
	}
	if _, err := b.AddChild(a, "a"); !bwerrors.Is(err, bwerrors.ErrCodeInvalidTree) {
		t.Errorf("duplicate label error = %v", err)
	}
	if _, err := b.AddChild(42, "x"); !bwerrors.Is(err, bwerrors.ErrCodeInvalidTree) {
		t.Errorf("unknown parent error = %v", err)
	}

	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
	if tr.Label(2) != "2" {
		t.Errorf("default label = %q, want %q", tr.Label(2), "2")
	}
}

func TestSubtreeSizesAndLevelOrder(t *testing.T) {
	//        0
	//      /   \
	//     1     2
	//    / \    |
	//   3   4   5
	//           |
	//           6
	tr, err := FromParents([]int{-1, 0, 0, 1, 1, 2, 5}, nil)
	if err != nil {
		t.Fatalf("FromParents() error: %v", err)
	}

	if got, want := tr.SubtreeSizes(), []int{7, 3, 3, 1, 1, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("SubtreeSizes() = %v, want %v", got, want)
	}
	if got, want := tr.LevelOrder(), []NodeID{0, 1, 2, 3, 4, 5, 6}; !slices.Equal(got, want) {
		t.Errorf("LevelOrder() = %v, want %v", got, want)
	}
	if tr.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", tr.Depth())
	}
	if got := len(tr.Edges()); got != 6 {
		t.Errorf("len(Edges()) = %d, want 6", got)
	}
}

func TestChildRange(t *testing.T) {
	tr, _ := Star(6)
	r := FullRange(tr, Root)
	if r.Len() != 5 || r.Single() {
		t.Fatalf("FullRange = %+v", r)
	}

	left, right := r.Split()
	if left != (ChildRange{Node: Root, Lo: 0, Hi: 2}) {
		t.Errorf("left = %+v", left)
	}
	if right != (ChildRange{Node: Root, Lo: 3, Hi: 4}) {
		t.Errorf("right = %+v", right)
	}

	leaf := FullRange(tr, tr.ChildAt(Root, 0))
	if leaf.Len() != 0 {
		t.Errorf("leaf range Len() = %d, want 0", leaf.Len())
	}
	if !(ChildRange{Node: Root, Lo: 2, Hi: 2}).Single() {
		t.Error("one-child range should be Single")
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		shape     Shape
		n         int
		wantDepth int
	}{
		{ShapePath, 10, 9},
		{ShapeStar, 10, 1},
		{ShapeBinary, 7, 2},
		{ShapeCaterpillar, 10, -1},
		{ShapeRandom, 50, -1},
		{ShapeDeep, 50, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			a, err := Generate(tt.n, tt.shape, 7)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if a.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", a.Len(), tt.n)
			}
			if tt.wantDepth >= 0 && a.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", a.Depth(), tt.wantDepth)
			}

			b, _ := Generate(tt.n, tt.shape, 7)
			if !slices.Equal(a.Parents(), b.Parents()) {
				t.Error("Generate() is not deterministic for the same seed")
			}
		})
	}

	if _, err := Generate(0, ShapeRandom, 1); !bwerrors.Is(err, bwerrors.ErrCodeDegenerateTree) {
		t.Errorf("Generate(0) error = %v", err)
	}
	if _, err := Generate(5, "fractal", 1); !bwerrors.Is(err, bwerrors.ErrCodeInvalidInput) {
		t.Errorf("Generate(unknown shape) error = %v", err)
	}
}
