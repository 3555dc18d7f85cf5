package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/colorer"
	"github.com/matzehuels/bwcolor/pkg/config"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	bwio "github.com/matzehuels/bwcolor/pkg/io"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

func (c *CLI) addGlobalFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	f.StringVar(&c.flags.configPath, "config", "", "config file (default $"+config.EnvPath+" or ~/.config/bwcolor/config.toml)")
	f.StringVar(&c.flags.algorithm, "algorithm", "", "coloring algorithm: bz or exact")
	f.BoolVar(&c.flags.parallel, "parallel", false, "solve independent subproblems concurrently")
	f.BoolVar(&c.flags.noCache, "no-cache", false, "disable the result cache")
	f.BoolVar(&c.flags.traceMerges, "trace-merges", false, "log every merge of the bz solver (implies -v)")

	_ = root.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(colorer.Algorithms))
		for i, a := range colorer.Algorithms {
			names[i] = string(a)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// setup loads the config file and applies the global flags on top of it.
// Flags only override the config when set explicitly.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.flags.verbose || c.flags.traceMerges {
		c.SetLogLevel(LogDebug)
	}

	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = c.flags.algorithm
	}
	if flags.Changed("parallel") {
		cfg.Parallel = c.flags.parallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "algorithm", cfg.Algorithm, "parallel", cfg.Parallel, "cache", cfg.Cache.Backend)
	return nil
}

// readTree loads a tree file. "-" reads JSON from the command's stdin.
func readTree(cmd *cobra.Command, path string) (*tree.Tree, error) {
	if path == "-" {
		return bwio.ReadJSON(cmd.InOrStdin())
	}
	return bwio.ImportFile(path)
}

// countFlags registers the -b/--black and -w/--white flags shared by
// color and render.
func countFlags(cmd *cobra.Command, black, white *int) {
	cmd.Flags().IntVarP(black, "black", "b", 0, "number of black nodes")
	cmd.Flags().IntVarP(white, "white", "w", -1, "number of white nodes (default: the maximum for --black)")
}

// resolveWhite turns the "-1 means maximal" default of --white into a
// concrete count using the solved table.
func resolveWhite(black, white, maxWhite int) (int, error) {
	if white >= 0 {
		return white, nil
	}
	if maxWhite < 0 {
		return 0, bwerrors.New(bwerrors.ErrCodeInfeasibleRequest, "no coloring with %d black nodes", black)
	}
	return maxWhite, nil
}
