package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bwcolor/pkg/color"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <tree>",
		Short: "Browse the MaxWhite table interactively",
		Long: `Open an interactive table of MaxWhite(b). Moving the cursor builds a coloring
with b black and MaxWhite(b) white nodes and shows its color counts.`,
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

			ctx := cmd.Context()
			opts := c.options()
			spin := c.startSpinner(cmd, "Solving...")
			sol, _, err := runner.Solve(ctx, t, opts)
			spin.Stop()
			if err != nil {
				return err
			}

			// The table view owns the terminal; keep log lines out of it.
			c.SetLogLevel(LogWarn)

			model := NewExploreModel(sol.MaxWhite, func(black, white int) (*color.Coloring, error) {
				res, err := runner.Color(ctx, t, black, white, opts)
				if err != nil {
					return nil, err
				}
				return res.Coloring, nil
			})
			p := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}
