// Package colorer is the entry point for computing black-white-gray
// colorings of trees.
//
// A [Colorer] turns a tree into a [Result]; the result answers MaxWhite
// queries and builds concrete colorings. Two algorithms are available:
//
//   - [AlgorithmBZ]: the Berend-Zacker divide-and-conquer algorithm from
//     package bz, roughly O(n^2 log^3 n) time and O(n^2) space.
//   - [AlgorithmExact]: the O(n^2) tree knapsack from package exact.
//
// Colorers are built explicitly with [New]; there is no package-level
// registry.
//
//	c, _ := colorer.New(colorer.AlgorithmBZ, colorer.WithParallel(true))
//	r, err := c.Solve(ctx, t)
//	if err != nil { ... }
//	coloring, err := r.Coloring(3, r.MaxWhite().At(3))
package colorer

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bwcolor/pkg/bz"
	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/exact"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Algorithm names a coloring algorithm.
type Algorithm string

const (
	AlgorithmBZ    Algorithm = "bz"
	AlgorithmExact Algorithm = "exact"
)

// Algorithms lists the supported algorithms.
var Algorithms = []Algorithm{AlgorithmBZ, AlgorithmExact}

// ValidAlgorithm reports whether a names a supported algorithm.
func ValidAlgorithm(a Algorithm) bool { return slices.Contains(Algorithms, a) }

// Result is a solved tree.
//
// Results are immutable; every method is safe for concurrent use.
type Result interface {
	// Tree returns the tree the result was computed for.
	Tree() *tree.Tree

	// MaxWhite returns the table b -> maximal white count.
	MaxWhite() distribution.MaxWhite

	// ColoringExists reports whether a legal coloring with exactly black
	// black nodes and white white nodes exists.
	ColoringExists(black, white int) bool

	// Coloring returns such a coloring or an INFEASIBLE_REQUEST error.
	Coloring(black, white int) (*color.Coloring, error)
}

// Colorer solves trees.
type Colorer interface {
	Algorithm() Algorithm
	Solve(ctx context.Context, t *tree.Tree) (Result, error)
}

// Option configures a [Colorer].
type Option func(*settings)

type settings struct {
	logger   *log.Logger
	observer bz.Observer
	parallel bool
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(s *settings) { s.logger = l } }

// WithObserver installs a decomposition observer. Only the bz algorithm
// emits events.
func WithObserver(o bz.Observer) Option { return func(s *settings) { s.observer = o } }

// WithParallel solves independent subtrees concurrently. Only the bz
// algorithm supports it.
func WithParallel(enabled bool) Option { return func(s *settings) { s.parallel = enabled } }

// New returns a colorer for the named algorithm. An empty name selects
// [AlgorithmBZ].
func New(name Algorithm, opts ...Option) (Colorer, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	switch name {
	case "", AlgorithmBZ:
		return bzColorer{s}, nil
	case AlgorithmExact:
		return exactColorer{s}, nil
	}
	return nil, bwerrors.New(bwerrors.ErrCodeInvalidAlgorithm, "unknown algorithm %q (want one of %v)", name, Algorithms)
}

type bzColorer struct{ s settings }

func (bzColorer) Algorithm() Algorithm { return AlgorithmBZ }

func (c bzColorer) Solve(ctx context.Context, t *tree.Tree) (Result, error) {
	opts := []bz.Option{bz.WithParallel(c.s.parallel)}
	if c.s.logger != nil {
		opts = append(opts, bz.WithLogger(c.s.logger))
	}
	if c.s.observer != nil {
		opts = append(opts, bz.WithObserver(c.s.observer))
	}
	r, err := bz.Solve(ctx, t, opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type exactColorer struct{ s settings }

func (exactColorer) Algorithm() Algorithm { return AlgorithmExact }

func (c exactColorer) Solve(ctx context.Context, t *tree.Tree) (Result, error) {
	r, err := exact.Solve(ctx, t)
	if err != nil {
		return nil, err
	}
	if c.s.logger != nil {
		c.s.logger.Debug("exact solve finished", "nodes", t.Len())
	}
	return r, nil
}

// Verify checks that c is a legal coloring of r's tree with exactly black
// black and white white nodes.
func Verify(r Result, c *color.Coloring, black, white int) error {
	if err := color.Validate(r.Tree(), c); err != nil {
		return err
	}
	if c.Black() != black || c.White() != white {
		return bwerrors.New(bwerrors.ErrCodeInternal,
			"coloring has %d black and %d white nodes, requested %d and %d", c.Black(), c.White(), black, white)
	}
	return nil
}
