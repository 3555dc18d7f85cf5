package colorer

import (
	"context"
	"testing"

	"github.com/matzehuels/bwcolor/pkg/color"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    Algorithm
		want    Algorithm
		wantErr bool
	}{
		{"", AlgorithmBZ, false},
		{AlgorithmBZ, AlgorithmBZ, false},
		{AlgorithmExact, AlgorithmExact, false},
		{"greedy", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			c, err := New(tt.name)
			if tt.wantErr {
				if !bwerrors.Is(err, bwerrors.ErrCodeInvalidAlgorithm) {
					t.Errorf("New(%q) error = %v, want INVALID_ALGORITHM", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.name, err)
			}
			if c.Algorithm() != tt.want {
				t.Errorf("Algorithm() = %q, want %q", c.Algorithm(), tt.want)
			}
		})
	}
}

func TestAlgorithmsAgree(t *testing.T) {
	bzc, _ := New(AlgorithmBZ, WithParallel(true))
	ex, _ := New(AlgorithmExact)

	for seed := uint64(0); seed < 10; seed++ {
		tr, _ := tree.Generate(60, tree.ShapeRandom, seed)
		a, err := bzc.Solve(context.Background(), tr)
		if err != nil {
			t.Fatalf("bz Solve() error: %v", err)
		}
		b, err := ex.Solve(context.Background(), tr)
		if err != nil {
			t.Fatalf("exact Solve() error: %v", err)
		}
		if !a.MaxWhite().Equal(b.MaxWhite()) {
			t.Fatalf("seed %d: bz %v, exact %v", seed, a.MaxWhite(), b.MaxWhite())
		}

		for _, r := range []Result{a, b} {
			blacks := tr.Len() / 4
			whites := r.MaxWhite().At(blacks)
			c, err := r.Coloring(blacks, whites)
			if err != nil {
				t.Fatalf("Coloring() error: %v", err)
			}
			if err := Verify(r, c, blacks, whites); err != nil {
				t.Errorf("Verify() error: %v", err)
			}
		}
	}
}

func TestSolveDegenerate(t *testing.T) {
	for _, a := range Algorithms {
		c, _ := New(a)
		if _, err := c.Solve(context.Background(), nil); !bwerrors.Is(err, bwerrors.ErrCodeDegenerateTree) {
			t.Errorf("%s: Solve(nil) error = %v", a, err)
		}
	}
}

func TestVerifyRejectsWrongCounts(t *testing.T) {
	tr, _ := tree.Path(3)
	c, _ := New(AlgorithmBZ)
	r, _ := c.Solve(context.Background(), tr)

	col := color.FromSlice([]color.Color{color.White, color.White, color.White})
	if err := Verify(r, col, 0, 3); err != nil {
		t.Errorf("Verify() error: %v", err)
	}
	if err := Verify(r, col, 0, 2); err == nil {
		t.Error("Verify() should reject mismatched counts")
	}
	bad := color.FromSlice([]color.Color{color.White, color.Black, color.Gray})
	if err := Verify(r, bad, 1, 1); err == nil {
		t.Error("Verify() should reject a black-white edge")
	}
}

func TestValidAlgorithm(t *testing.T) {
	if !ValidAlgorithm("bz") || !ValidAlgorithm("exact") || ValidAlgorithm("x") {
		t.Error("ValidAlgorithm() mismatch")
	}
}
