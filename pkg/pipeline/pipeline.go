// Package pipeline runs the load -> solve -> color -> render stages with
// caching, tracing and metrics hooks.
//
// The CLI and the HTTP server both go through a [Runner], so a table solved
// by one is served from the cache by the other.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	sol, cached, err := runner.Solve(ctx, t, pipeline.Options{})
//	col, err := runner.Color(ctx, t, 3, sol.MaxWhite.At(3), pipeline.Options{})
//	svg, _, err := runner.Render(ctx, t, col.Coloring, pipeline.Options{Format: "svg"})
//
// # Caching
//
// MaxWhite tables are cached under [cache.Keyer.TableKey], so a cached table
// answers MaxWhite queries and rejects infeasible colorings without solving.
// Building a coloring needs the full decomposition, which is kept in memory
// per runner for repeated requests on the same tree. Rendered artifacts are
// cached under [cache.Keyer.ArtifactKey].
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bwcolor/pkg/cache"
	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/colorer"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/render/dot"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAlgorithm is used when Options.Algorithm is empty.
	DefaultAlgorithm = string(colorer.AlgorithmBZ)

	// DefaultFormat is the default render format.
	DefaultFormat = dot.FormatSVG

	// DefaultTTL is how long cached tables and artifacts live.
	DefaultTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline call. It supports JSON for API requests.
type Options struct {
	Algorithm string `json:"algorithm,omitempty"`
	Parallel  bool   `json:"parallel,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// Runtime options (not serialized)

	// TraceMerges logs every merge of the bz solver. A trace needs a real
	// solve, so it also skips cached tables and in-memory results.
	TraceMerges bool        `json:"-"`
	Logger      *log.Logger `json:"-"`

	validated bool
}

// skipReads reports whether cached results must be ignored.
func (o Options) skipReads() bool { return o.Refresh || o.TraceMerges }

// ValidateAndSetDefaults checks enumerated fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if !colorer.ValidAlgorithm(colorer.Algorithm(o.Algorithm)) {
		return bwerrors.New(bwerrors.ErrCodeInvalidAlgorithm, "invalid algorithm: %q (must be one of: %v)", o.Algorithm, colorer.Algorithms)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if !slices.Contains(dot.Formats, o.Format) {
		return bwerrors.New(bwerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %v)", o.Format, dot.Formats)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for a rendered coloring.
func (o *Options) ArtifactKeyOpts(c *color.Coloring) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Black:     c.Black(),
		White:     c.White(),
		Algorithm: o.Algorithm,
		Detailed:  o.Detailed,
	}
}

// =============================================================================
// Results
// =============================================================================

// Solution is a solved MaxWhite table.
type Solution struct {
	// ID identifies this run in logs and API responses.
	ID string

	// TreeHash is the content hash of the tree's JSON encoding.
	TreeHash  string
	Algorithm string
	Nodes     int
	MaxWhite  distribution.MaxWhite
	Duration  time.Duration
}

// ColorResult is a reconstructed coloring.
type ColorResult struct {
	ID       string
	Coloring *color.Coloring
	Duration time.Duration
}
