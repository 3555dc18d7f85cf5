package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/render/dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	black    int
	white    int
	output   string // output file, "-" for stdout
	format   string // svg, png or dot; inferred from output when empty
	detailed bool   // add node ids and color names to labels
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <tree>",
		Short: "Draw a coloring as SVG, PNG or DOT",
		Long: `Build a coloring like the color command does and draw it with Graphviz.
The output format follows --format, or else the extension of --output. Without
--output the drawing is written next to the tree file.`,
		Example: `  bwcolor render tree.json -b 2 -o tree.svg
  bwcolor render tree.json -b 2 -w 4 --format dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, output, err := resolveRenderTarget(args[0], opts.output, opts.format)
			if err != nil {
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

			ropts := c.options()
			ropts.Format = format
			ropts.Detailed = opts.detailed
			data, cached, err := runner.Render(cmd.Context(), t, col, ropts)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Rendered %s", strings.ToUpper(format))
			printStats(out, t.Len(), ropts.Algorithm, cached)
			printDetail(out, "%s", colorCounts(col))
			printFile(out, output)
			return nil
		},
	}

	countFlags(cmd, &opts.black, &opts.white)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png or dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids and color names")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(dot.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// resolveRenderTarget picks the format and output path. An explicit format
// wins over the output extension; with neither, SVG next to the input is
// used, or stdout when the input is stdin.
func resolveRenderTarget(input, output, format string) (string, string, error) {
	if format == "" && output != "" && output != "-" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	if format == "" {
		format = dot.FormatSVG
	}
	if !slices.Contains(dot.Formats, format) {
		return "", "", bwerrors.New(bwerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %v)", format, dot.Formats)
	}
	if output == "" {
		if input == "-" {
			output = "-"
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
		}
	}
	return format, output, nil
}
