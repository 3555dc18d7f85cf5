package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/pipeline"
)

// maxWhiteOutput is the --json form of the maxwhite command.
type maxWhiteOutput struct {
	Algorithm string `json:"algorithm"`
	Size      int    `json:"size"`
	MaxWhite  []int  `json:"max_white"`
	Cached    bool   `json:"cached"`
}

// maxWhiteCommand creates the maxwhite command.
func (c *CLI) maxWhiteCommand() *cobra.Command {
	var (
		asJSON  bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "maxwhite <tree>",
		Short: "Print the MaxWhite table of a tree",
		Long: `Print, for every number of black nodes b, the largest number of white nodes
in a legal coloring of the tree. The tree is read from a .json, .yaml/.yml or
.txt (parent list) file, or as JSON from stdin when the argument is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.options()
			opts.Refresh = refresh

			prog := newProgress(c.Logger)
			spin := c.startSpinner(cmd, fmt.Sprintf("Solving %d nodes...", t.Len()))
			sol, cached, err := runner.Solve(cmd.Context(), t, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Solved %d nodes", t.Len()))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(maxWhiteOutput{
					Algorithm: sol.Algorithm,
					Size:      sol.Nodes,
					MaxWhite:  sol.MaxWhite.Slice(),
					Cached:    cached,
				})
			}
			printMaxWhite(cmd, sol, cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached tables")

	return cmd
}

func printMaxWhite(cmd *cobra.Command, sol *pipeline.Solution, cached bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, StyleTitle.Render("MaxWhite"))
	printStats(out, sol.Nodes, sol.Algorithm, cached)
	fmt.Fprintln(out, maxWhiteTable(sol.MaxWhite, 0, sol.MaxWhite.Size(), -1))
	printNextStep(out, "Build a coloring", fmt.Sprintf("%s color %s -b 1", appName, cmd.Flags().Arg(0)))
}
