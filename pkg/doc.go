// Package pkg provides the core libraries for bwcolor, black-white-gray
// tree coloring.
//
// # Overview
//
// A coloring assigns every node of a tree black, white or gray so that no
// edge joins a black node to a white one. For each number of black nodes b
// the libraries find MaxWhite(b), the largest number of white nodes any
// legal coloring with b black nodes can have, and build colorings that
// reach it. The pkg directory is organized into four areas:
//
//  1. Model: [tree], [color], [distribution]
//  2. Algorithms: [bz], [exact], [summator], [fusion], behind [colorer]
//  3. Input and output: [io], [render/dot]
//  4. Infrastructure: [pipeline], [cache], [config], [errors],
//     [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	tree file (JSON, YAML, parent list)
//	         ↓
//	    [io] package (parse + validate)
//	         ↓
//	    [colorer] package (bz or exact solve → MaxWhite table)
//	         ↓
//	    Result.Coloring(b, w)
//	         ↓
//	    [render/dot] package (DOT, SVG, PNG)
//
// [pipeline] runs these stages with caching, tracing and metrics for the
// CLI and the HTTP server.
//
// # Quick Start
//
//	t, _ := io.ImportFile("tree.json")
//
//	c, _ := colorer.New(colorer.AlgorithmBZ)
//	r, err := c.Solve(ctx, t)
//	if err != nil { ... }
//
//	mw := r.MaxWhite()
//	coloring, err := r.Coloring(3, mw.At(3))
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(t, coloring, dot.Options{}))
//
// # Main Packages
//
// [tree] - Immutable rooted trees with ordered children, built from parent
// arrays or a [tree.Builder], plus [tree.ChildRange] views that split a
// node's children without copying.
//
// [distribution] - Per-subtree tables: fixed-root maps, min-gray maps and
// the public MaxWhite table, with the merge operations the solvers use.
//
// [bz] - The Berend-Zacker divide-and-conquer solver, roughly O(n^2 log^3 n)
// time and O(n^2) space.
//
// [exact] - The quadratic tree knapsack, used as a reference and for small
// trees.
//
// [summator] - Sumsets of small integer sets via FFT.
//
// [fusion] - Merge records that drive top-down reconstruction.
//
// [cache] - Result caching over files, bbolt, Redis or MongoDB.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/bz/...                 # Specific package
//	go test -run Example                 # Examples only
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/tree
// [color]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/color
// [distribution]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/distribution
// [bz]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/bz
// [exact]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/exact
// [summator]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/summator
// [fusion]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/fusion
// [colorer]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/colorer
// [io]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/io
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bwcolor/pkg/buildinfo
package pkg
