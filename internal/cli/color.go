package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/color"
	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	bwio "github.com/matzehuels/bwcolor/pkg/io"
	"github.com/matzehuels/bwcolor/pkg/pipeline"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Output formats of the color command.
const (
	colorFormatText = "text"
	colorFormatJSON = "json"
	colorFormatYAML = "yaml"
)

type colorOpts struct {
	black  int
	white  int
	verify bool
	format string
	output string
}

// colorCommand creates the color command.
func (c *CLI) colorCommand() *cobra.Command {
	var opts colorOpts

	cmd := &cobra.Command{
		Use:   "color <tree>",
		Short: "Build a coloring with given black and white counts",
		Long: `Build a legal coloring of the tree with exactly --black black nodes and
--white white nodes; all other nodes are gray. Without --white the largest
feasible white count is used.`,
		Example: `  bwcolor color tree.json -b 3 -w 5
  bwcolor color tree.yaml -b 3 --format yaml -o colored.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			t, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			col, err := c.buildColoring(cmd, runner, t, opts.black, opts.white)
			if err != nil {
				return err
			}
			if opts.verify {
				if err := verifyColoring(t, col, opts.black, opts.white); err != nil {
					return err
				}
				c.Logger.Debug("coloring verified", "nodes", t.Len())
			}

			if opts.output != "" {
				if err := bwio.ExportFile(opts.output, t, col); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Wrote coloring")
				printFile(cmd.OutOrStdout(), opts.output)
				return nil
			}
			return writeColoring(cmd.OutOrStdout(), opts.format, t, col)
		},
	}

	countFlags(cmd, &opts.black, &opts.white)
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check the coloring before printing it")
	cmd.Flags().StringVar(&opts.format, "format", colorFormatText, "output format: text, json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the colored tree to a .json or .yaml file")

	return cmd
}

// validate rejects output settings before any solving happens.
func (o colorOpts) validate() error {
	if o.output != "" {
		return bwio.CheckColoringPath(o.output)
	}
	switch o.format {
	case colorFormatText, colorFormatJSON, colorFormatYAML:
		return nil
	}
	return bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown output format %q (want text, json or yaml)", o.format)
}

// buildColoring solves t and reconstructs a coloring. A negative white
// count selects the maximum for black.
func (c *CLI) buildColoring(cmd *cobra.Command, runner *pipeline.Runner, t *tree.Tree, black, white int) (*color.Coloring, error) {
	opts := c.options()

	spin := c.startSpinner(cmd, fmt.Sprintf("Coloring %d nodes...", t.Len()))
	defer spin.Stop()

	if white < 0 {
		sol, _, err := runner.Solve(cmd.Context(), t, opts)
		if err != nil {
			return nil, err
		}
		if white, err = resolveWhite(black, white, sol.MaxWhite.At(black)); err != nil {
			return nil, err
		}
	}
	res, err := runner.Color(cmd.Context(), t, black, white, opts)
	if err != nil {
		return nil, err
	}
	return res.Coloring, nil
}

// verifyColoring checks legality and the requested counts.
func verifyColoring(t *tree.Tree, c *color.Coloring, black, white int) error {
	if err := color.Validate(t, c); err != nil {
		return bwerrors.Wrap(bwerrors.ErrCodeInternal, err, "verify coloring")
	}
	if c.Black() != black || (white >= 0 && c.White() != white) {
		return bwerrors.New(bwerrors.ErrCodeInternal,
			"verify coloring: got %d black and %d white nodes", c.Black(), c.White())
	}
	return nil
}

func writeColoring(w io.Writer, format string, t *tree.Tree, c *color.Coloring) error {
	switch format {
	case colorFormatJSON:
		return bwio.WriteJSON(w, t, c)
	case colorFormatYAML:
		return bwio.WriteYAML(w, t, c)
	case colorFormatText:
		fmt.Fprintln(w, colorCounts(c))
		for _, id := range t.LevelOrder() {
			col, _ := c.Color(id)
			fmt.Fprintf(w, "%s %s\n", swatches[col].Render(col.String()), t.Label(id))
		}
		return nil
	}
	return bwerrors.New(bwerrors.ErrCodeInvalidFormat, "unknown output format %q (want text, json or yaml)", format)
}
