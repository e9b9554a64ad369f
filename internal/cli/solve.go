package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	solveFlags
	explain bool // print the route, openings and stats
	json    bool // print the full solution as JSON
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [file|-]",
		Short: "Print the best achievable pressure release",
		Long: `Solve reads a valve description from a file (or stdin when the argument is "-" or
missing) and prints the highest score over every entry → x → y walk.

Examples:
  valvepath solve input.txt
  valvepath solve --explain --budget 26 input.txt
  cat input.txt | valvepath solve --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, inputPath(args), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.explain, "explain", "x", false, "print the best route and when each valve opens")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the solution as JSON")
	cmd.MarkFlagsMutuallyExclusive("explain", "json")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts *solveOpts) error {
	ctx := cmd.Context()
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Solving...")
	spin.Start()
	res, err := runner.Execute(ctx, input, c.options(cmd, &opts.solveFlags))
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done("solved", "score", res.Solution.Score, "cache", res.CacheInfo.String())

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*pipeline.Solution
			Stats pipeline.Stats     `json:"stats"`
			Cache pipeline.CacheInfo `json:"cache"`
		}{res.Solution, res.Stats, res.CacheInfo})
	case opts.explain:
		explain(out, res)
		return nil
	default:
		_, err := fmt.Fprintln(out, res.Solution.Score)
		return err
	}
}

// explain prints the best walk, its openings and the run statistics.
func explain(w io.Writer, res *pipeline.Result) {
	sol := res.Solution

	fmt.Fprintln(w, StyleTitle.Render("Best route"))
	printKeyValue(w, "score", StyleNumber.Render(fmt.Sprint(sol.Score)))
	printKeyValue(w, "waypoints", sol.Best.From+" "+iconArrow+" "+sol.Best.To)
	printKeyValue(w, "path", strings.Join(sol.Best.Path, " "+iconArrow+" "))
	printKeyValue(w, "budget", fmt.Sprintf("%d minutes", sol.Budget))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Openings"))
	for _, o := range sol.Openings {
		printInfo(w, "%s opens at minute %d, releasing %s (%d × %d)",
			StyleHighlight.Render(o.Valve.ID), sol.Budget-o.Remaining,
			StyleNumber.Render(fmt.Sprint(o.Released)), o.Valve.Rate, o.Remaining)
	}
	if len(sol.Openings) == 0 {
		printDetail(w, "no valve opens within the budget")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Run"))
	printStats(w, res.Stats.Valves, res.Stats.Tunnels, res.CacheInfo.NetworkHit)
	printDetail(w, "%d useful valves, %d candidates evaluated", res.Stats.Useful, sol.Candidates)
	if n := len(sol.Skipped); n > 0 {
		printWarning(w, "%d pairs skipped as unreachable", n)
		for _, p := range sol.Skipped {
			printDetail(w, "no path %s %s %s", p.From, iconArrow, p.To)
		}
	}
	if res.CacheInfo.ResultHit {
		printSuccess(w, "result served from cache")
	}
}
