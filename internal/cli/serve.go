package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/internal/server"
	"github.com/matzehuels/bwcolor/pkg/observability"
	"github.com/matzehuels/bwcolor/pkg/observability/metrics"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the MaxWhite, coloring and render endpoints over HTTP until interrupted.
Address and limits come from the [server] section of the config file; --addr
overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := server.Config{
				MaxNodes:          c.Config.Server.MaxNodes,
				Algorithm:         c.Config.Algorithm,
				Parallel:          c.Config.Parallel,
				ReadHeaderTimeout: c.Config.Server.ReadHeaderTimeout.Duration,
			}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				metrics.New(reg).Register()
				defer observability.Reset()
				cfg.Gatherer = reg
			}

			c.Logger.Info("starting server", "addr", c.Config.Server.Addr, "algorithm", cfg.Algorithm,
				"cache", c.Config.Cache.Backend, "max_nodes", cfg.MaxNodes)
			return server.New(runner, c.Logger, cfg).ListenAndServe(cmd.Context(), c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
