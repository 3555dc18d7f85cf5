// Package config loads bwcolor settings from a TOML file.
//
// Every field has a default, so a missing file is not an error unless its
// path was given explicitly. Command-line flags override file values.
//
//	algorithm = "bz"
//	parallel = false
//
//	[cache]
//	backend = "file"   # file | none | redis | bolt | mongo
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	max_nodes = 20000
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bwcolor/pkg/colorer"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

const (
	appName = "bwcolor"

	// EnvPath names the environment variable holding the config path.
	EnvPath = "BWCOLOR_CONFIG"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendBolt  = "bolt"
	BackendMongo = "mongo"
)

// Backends lists the valid cache backends.
var Backends = []string{BackendFile, BackendNone, BackendRedis, BackendBolt, BackendMongo}

// Duration is a time.Duration read from strings such as "5s" or "168h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full configuration.
type Config struct {
	Algorithm string       `toml:"algorithm"`
	Parallel  bool         `toml:"parallel"`
	Cache     CacheConfig  `toml:"cache"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	KeyPrefix     string   `toml:"key_prefix"`
	RedisURL      string   `toml:"redis_url"`
	BoltPath      string   `toml:"bolt_path"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr              string   `toml:"addr"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
	MaxNodes          int      `toml:"max_nodes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm: string(colorer.AlgorithmBZ),
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           Duration{7 * 24 * time.Hour},
			RedisURL:      "redis://localhost:6379/0",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{5 * time.Second},
			MaxNodes:          20000,
		},
	}
}

// DefaultPath returns $BWCOLOR_CONFIG, or config.toml under the XDG config
// directory (~/.config/bwcolor/config.toml).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults and validates the result.
// An empty path loads [DefaultPath] and tolerates its absence.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
		explicit = os.Getenv(EnvPath) != ""
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, bwerrors.Wrap(bwerrors.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return cfg, bwerrors.Wrap(bwerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, bwerrors.New(bwerrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields and numeric ranges.
func (c Config) Validate() error {
	if !colorer.ValidAlgorithm(colorer.Algorithm(c.Algorithm)) {
		return bwerrors.New(bwerrors.ErrCodeInvalidConfig, "unknown algorithm %q", c.Algorithm)
	}
	if !slices.Contains(Backends, c.Cache.Backend) {
		return bwerrors.New(bwerrors.ErrCodeInvalidConfig, "unknown cache backend %q (want one of %s)",
			c.Cache.Backend, strings.Join(Backends, ", "))
	}
	if c.Cache.TTL.Duration < 0 {
		return bwerrors.New(bwerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.MaxNodes < 0 {
		return bwerrors.New(bwerrors.ErrCodeInvalidConfig, "server max_nodes must not be negative")
	}
	return nil
}
