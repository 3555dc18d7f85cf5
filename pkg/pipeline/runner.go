package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/bwcolor/pkg/bz"
	"github.com/matzehuels/bwcolor/pkg/cache"
	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/colorer"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	bwio "github.com/matzehuels/bwcolor/pkg/io"
	"github.com/matzehuels/bwcolor/pkg/observability"
	"github.com/matzehuels/bwcolor/pkg/render/dot"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

const tracerName = "github.com/matzehuels/bwcolor/pkg/pipeline"

// maxResults bounds the solved decompositions a Runner keeps in memory.
const maxResults = 16

// Runner encapsulates pipeline execution with caching.
//
// Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to every cache write. Zero selects DefaultTTL.
	TTL time.Duration

	Tracer trace.Tracer

	mu      sync.Mutex
	results map[string]colorer.Result
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		TTL:     DefaultTTL,
		Tracer:  otel.Tracer(tracerName),
		results: make(map[string]colorer.Result),
	}
}

// Solve returns the MaxWhite table of t and whether it came from the cache.
func (r *Runner) Solve(ctx context.Context, t *tree.Tree, opts Options) (*Solution, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := checkTree(t); err != nil {
		return nil, false, err
	}
	ctx, span := r.Tracer.Start(ctx, "pipeline.Solve", trace.WithAttributes(
		attribute.Int("tree.nodes", t.Len()),
		attribute.String("algorithm", opts.Algorithm),
	))
	defer span.End()

	hash, err := treeHash(t)
	if err != nil {
		return nil, false, fail(span, err)
	}
	sol := &Solution{
		ID:        uuid.NewString(),
		TreeHash:  hash,
		Algorithm: opts.Algorithm,
		Nodes:     t.Len(),
	}
	span.SetAttributes(attribute.String("run.id", sol.ID))

	key := r.Keyer.TableKey(hash, opts.Algorithm)
	if !opts.skipReads() {
		if mw, ok := r.loadTable(ctx, key, t.Len()); ok {
			sol.MaxWhite = mw
			span.SetAttributes(attribute.Bool("cache.hit", true))
			r.Logger.Debug("table cache hit", "tree", cache.TreeKey(hash), "run", sol.ID)
			return sol, true, nil
		}
	}

	res, d, err := r.solve(ctx, t, hash, opts)
	if err != nil {
		return nil, false, fail(span, err)
	}
	sol.MaxWhite = res.MaxWhite()
	sol.Duration = d
	r.storeTable(ctx, key, sol.MaxWhite)
	span.SetAttributes(attribute.Bool("cache.hit", false))
	return sol, false, nil
}

// Color returns a legal coloring of t with exactly black black and white
// white nodes. A cached table rejects infeasible requests without solving.
func (r *Runner) Color(ctx context.Context, t *tree.Tree, black, white int, opts Options) (*ColorResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := checkTree(t); err != nil {
		return nil, err
	}
	ctx, span := r.Tracer.Start(ctx, "pipeline.Color", trace.WithAttributes(
		attribute.Int("tree.nodes", t.Len()),
		attribute.Int("black", black),
		attribute.Int("white", white),
		attribute.String("algorithm", opts.Algorithm),
	))
	defer span.End()

	start := time.Now()
	out := &ColorResult{ID: uuid.NewString()}
	col, err := r.color(ctx, t, black, white, opts)
	out.Duration = time.Since(start)
	observability.Solve().OnColor(ctx, t.Len(), black, white, out.Duration, err)
	if err != nil {
		return nil, fail(span, err)
	}
	out.Coloring = col
	span.SetAttributes(attribute.Int("gray", col.Gray()))
	r.Logger.Info("colored tree", "nodes", t.Len(), "black", black, "white", white, "gray", col.Gray(),
		"duration", out.Duration, "run", out.ID)
	return out, nil
}

func (r *Runner) color(ctx context.Context, t *tree.Tree, black, white int, opts Options) (*color.Coloring, error) {
	if err := bwerrors.ValidateCounts(t.Len(), black, white); err != nil {
		return nil, err
	}
	hash, err := treeHash(t)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.TableKey(hash, opts.Algorithm)
	if !opts.skipReads() {
		if mw, ok := r.loadTable(ctx, key, t.Len()); ok && mw.At(black) < white {
			return nil, bwerrors.New(bwerrors.ErrCodeInfeasibleRequest,
				"no coloring with %d black and %d white nodes: at most %d white", black, white, mw.At(black))
		}
	}

	res, _, err := r.solve(ctx, t, hash, opts)
	if err != nil {
		return nil, err
	}
	r.storeTable(ctx, key, res.MaxWhite())
	return res.Coloring(black, white)
}

// Render draws t colored by c in opts.Format and reports whether the
// artifact came from the cache.
func (r *Runner) Render(ctx context.Context, t *tree.Tree, c *color.Coloring, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := checkTree(t); err != nil {
		return nil, false, err
	}
	ctx, span := r.Tracer.Start(ctx, "pipeline.Render", trace.WithAttributes(
		attribute.Int("tree.nodes", t.Len()),
		attribute.String("format", opts.Format),
	))
	defer span.End()

	var doc bytes.Buffer
	if err := bwio.WriteJSON(&doc, t, c); err != nil {
		return nil, false, fail(span, err)
	}
	key := r.Keyer.ArtifactKey(cache.Hash(doc.Bytes()), opts.ArtifactKeyOpts(c))

	if !opts.Refresh {
		if data, ok := r.get(ctx, key, "artifact"); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return data, true, nil
		}
	}

	start := time.Now()
	data, err := dot.Render(ctx, dot.ToDOT(t, c, dot.Options{Detailed: opts.Detailed}), opts.Format)
	observability.Solve().OnRender(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fail(span, err)
	}
	r.set(ctx, key, "artifact", data)
	r.Logger.Debug("rendered", "format", opts.Format, "bytes", len(data), "duration", time.Since(start))
	span.SetAttributes(attribute.Bool("cache.hit", false), attribute.Int("bytes", len(data)))
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// solve returns the full decomposition of t, reusing one computed earlier
// by this runner unless opts.Refresh or opts.TraceMerges is set.
func (r *Runner) solve(ctx context.Context, t *tree.Tree, hash string, opts Options) (colorer.Result, time.Duration, error) {
	memo := hash + "/" + opts.Algorithm
	if !opts.skipReads() {
		r.mu.Lock()
		res, ok := r.results[memo]
		r.mu.Unlock()
		if ok {
			return res, 0, nil
		}
	}

	copts := []colorer.Option{
		colorer.WithLogger(opts.Logger),
		colorer.WithParallel(opts.Parallel),
	}
	if opts.TraceMerges {
		copts = append(copts, colorer.WithObserver(bz.LogObserver{Logger: opts.Logger, Tree: t}))
	}
	c, err := colorer.New(colorer.Algorithm(opts.Algorithm), copts...)
	if err != nil {
		return nil, 0, err
	}

	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, opts.Algorithm, t.Len())
	start := time.Now()
	res, err := c.Solve(ctx, t)
	d := time.Since(start)
	hooks.OnSolveComplete(ctx, opts.Algorithm, t.Len(), d, err)
	if err != nil {
		return nil, d, err
	}
	r.Logger.Info("solved tree", "nodes", t.Len(), "algorithm", opts.Algorithm, "duration", d)

	r.mu.Lock()
	if len(r.results) >= maxResults {
		clear(r.results)
	}
	r.results[memo] = res
	r.mu.Unlock()
	return res, d, nil
}

func (r *Runner) loadTable(ctx context.Context, key string, n int) (distribution.MaxWhite, bool) {
	data, ok := r.get(ctx, key, "table")
	if !ok {
		return distribution.MaxWhite{}, false
	}
	var mw distribution.MaxWhite
	if err := json.Unmarshal(data, &mw); err != nil || mw.Size() != n {
		r.Logger.Warn("discarding corrupt cached table", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		return distribution.MaxWhite{}, false
	}
	return mw, true
}

func (r *Runner) storeTable(ctx context.Context, key string, mw distribution.MaxWhite) {
	data, err := json.Marshal(mw)
	if err != nil {
		return
	}
	r.set(ctx, key, "table", data)
}

// get reads the cache; failures count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, keyType, "get", err)
		r.Logger.Warn("cache read failed", "key_type", keyType, "err", err)
		return nil, false
	case !hit:
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// set writes the cache; failures are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte) {
	hooks := observability.Cache()
	ttl := r.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		hooks.OnCacheError(ctx, keyType, "set", err)
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	hooks.OnCacheSet(ctx, keyType, len(data))
}

func checkTree(t *tree.Tree) error {
	if t == nil || t.Len() == 0 {
		return bwerrors.New(bwerrors.ErrCodeDegenerateTree, "tree has no nodes")
	}
	return nil
}

func treeHash(t *tree.Tree) (string, error) {
	data, err := bwio.MarshalJSON(t)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(bwerrors.GetCode(err)))
	return err
}
