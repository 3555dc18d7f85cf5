// Package cli implements the bwcolor command-line interface.
//
// The CLI reads trees from JSON, YAML or parent-list files, solves their
// MaxWhite tables, builds colorings and renders them with Graphviz. All
// work goes through a [pipeline.Runner], so results are cached in the
// backend selected by the config file.
//
// # Commands
//
//   - maxwhite: print the MaxWhite table of a tree
//   - color: build a coloring with given black and white counts
//   - render: draw a coloring as SVG, PNG or DOT
//   - explore: browse the table interactively
//   - generate: write a random tree of a given shape
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, and
// --trace-merges additionally logs every merge of the divide-and-conquer
// solver.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/buildinfo"
	"github.com/matzehuels/bwcolor/pkg/cache"
	"github.com/matzehuels/bwcolor/pkg/config"
	"github.com/matzehuels/bwcolor/pkg/pipeline"
)

const appName = "bwcolor"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs and then overridden by
	// the global flags.
	Config config.Config

	flags globalFlags
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configPath  string
	verbose     bool
	algorithm   string
	parallel    bool
	noCache     bool
	traceMerges bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bwcolor computes black-white-gray colorings of trees",
		Long: `bwcolor colors the nodes of a tree black, white or gray so that no black
node is adjacent to a white one. For every number of black nodes b it finds
the largest number of white nodes that can go with it, and builds colorings
that reach those counts.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.addGlobalFlags(root)

	root.AddCommand(c.maxWhiteCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache. The
// caller closes the runner, which closes the cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	dialCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	cc, err := c.newCache(dialCtx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.Config.Cache.KeyPrefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// newCache opens the backend named in the config. --no-cache selects
// the null cache regardless of the config.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.flags.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendBolt:
		path, err := c.boltPath()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		return cache.NewBoltCache(path)
	}
	dir, err := c.fileCacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// options builds pipeline options from the config and the global flags.
func (c *CLI) options() pipeline.Options {
	return pipeline.Options{
		Algorithm:   c.Config.Algorithm,
		Parallel:    c.Config.Parallel,
		TraceMerges: c.flags.traceMerges,
		Logger:      c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bwcolor/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func (c *CLI) fileCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func (c *CLI) boltPath() (string, error) {
	if c.Config.Cache.BoltPath != "" {
		return c.Config.Cache.BoltPath, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".db"), nil
}

// commandTimeout bounds cache connection attempts made while starting up.
const commandTimeout = 10 * time.Second
