package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/pipeline"
)

// defaultTopLimit is how many candidates top shows without --limit.
const defaultTopLimit = 10

// topOpts holds the command-line flags for the top command.
type topOpts struct {
	solveFlags
	limit       int
	interactive bool
}

func (c *CLI) topCommand() *cobra.Command {
	opts := topOpts{limit: defaultTopLimit}

	cmd := &cobra.Command{
		Use:   "top [file|-]",
		Short: "List the best candidate walks",
		Long: `Top ranks every entry → x → y walk and prints the best ones as a table.
With --interactive the ranking opens in a browser where each walk can be
expanded to show when its valves open.

Examples:
  valvepath top input.txt
  valvepath top -n 25 -i input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", opts.limit)
			}
			return c.runTop(cmd, inputPath(args), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", opts.limit, "number of candidates to show")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the ranking interactively")

	return cmd
}

func (c *CLI) runTop(cmd *cobra.Command, path string, opts *topOpts) error {
	ctx := cmd.Context()
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	popts := c.options(cmd, &opts.solveFlags)
	popts.Top = opts.limit
	res, err := runner.Execute(ctx, input, popts)
	if err != nil {
		return err
	}

	if opts.interactive {
		m := newRankModel(res.Solution.Ranked, res.Network, res.Solution.Budget)
		_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
		return err
	}
	renderRanking(cmd.OutOrStdout(), res.Solution)
	return nil
}

// renderRanking prints the ranked candidates as a bordered table. The best
// candidate is highlighted.
func renderRanking(w io.Writer, sol *pipeline.Solution) {
	rows := make([][]string, len(sol.Ranked))
	for i, r := range sol.Ranked {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.From + " " + iconArrow + " " + r.To,
			strconv.Itoa(r.Score),
			strconv.Itoa(len(r.Path) - 1),
			strings.Join(r.Path, " "),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Waypoints", "Score", "Moves", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case row == 0 && col != 4:
				return base.Foreground(colorGreen).Bold(true)
			case col == 2:
				return base.Foreground(colorCyan)
			case col == 4:
				return base.Foreground(colorDim)
			}
			return base
		})

	fmt.Fprintln(w, t.Render())
	printDetail(w, "%d of %d candidates · budget %d", len(sol.Ranked), sol.Candidates, sol.Budget)
}
