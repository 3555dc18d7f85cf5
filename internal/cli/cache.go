package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/cache"
	"github.com/matzehuels/bwcolor/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached tables and drawings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cc, err := c.newCache(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printWarning(out, "The %s cache cannot be cleared", c.Config.Cache.Backend)
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case count == 0:
				printInfo(out, "Cache is empty")
			case count < 0:
				printSuccess(out, "Cleared cache")
			default:
				printSuccess(out, "Cleared %d cached entries", count)
			}
			location, _ := c.cacheLocation()
			printDetail(out, "Location: %s", location)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := c.cacheLocation()
			if err != nil {
				return fmt.Errorf("get cache location: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), location)
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory, a file or
// a server URL.
func (c *CLI) cacheLocation() (string, error) {
	if c.flags.noCache {
		return "disabled", nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return "disabled", nil
	case config.BackendRedis:
		return redact(cfg.RedisURL), nil
	case config.BackendMongo:
		return redact(cfg.MongoURI) + " (database " + cfg.MongoDatabase + ")", nil
	case config.BackendBolt:
		return c.boltPath()
	}
	return c.fileCacheDir()
}

// redact hides the password of a connection URL.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
