package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	bwio "github.com/matzehuels/bwcolor/pkg/io"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		nodes  int
		shape  string
		seed   uint64
		output string
	)

	shapes := make([]string, len(tree.Shapes))
	for i, s := range tree.Shapes {
		shapes[i] = string(s)
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random tree",
		Long: `Generate a tree of the given shape and size. The same --nodes, --shape and
--seed always produce the same tree.`,
		Example: `  bwcolor generate --nodes 1000 --shape random --seed 7 -o tree.json
  bwcolor generate --nodes 20 --shape caterpillar -o tree.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tree.Generate(nodes, tree.Shape(shape), seed)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return bwio.WriteJSON(cmd.OutOrStdout(), t, nil)
			}
			if err := bwio.ExportFile(output, t, nil); err != nil {
				return err
			}
			c.Logger.Debug("generated tree", "nodes", t.Len(), "depth", t.Depth(), "shape", shape, "seed", seed)
			out := cmd.OutOrStdout()
			printSuccess(out, "Generated %s tree with %d nodes", shape, t.Len())
			printFile(out, output)
			printNextStep(out, "Solve it", fmt.Sprintf("%s maxwhite %s", appName, output))
			return nil
		},
	}

	cmd.Flags().IntVarP(&nodes, "nodes", "n", 100, "number of nodes")
	cmd.Flags().StringVar(&shape, "shape", string(tree.ShapeRandom), "tree shape: "+strings.Join(shapes, ", "))
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml or .txt); stdout when empty")

	_ = cmd.RegisterFlagCompletionFunc("shape", cobra.FixedCompletions(shapes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
