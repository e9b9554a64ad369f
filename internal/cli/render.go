package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	solveFlags
	format  string // "dot" or "svg"
	output  string // output file path (stdout if empty)
	noRoute bool   // skip solving and draw the bare network
	rates   bool   // label every valve with its rate
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Draw the network with the best walk highlighted",
		Long: `Render draws the valve network as a Graphviz diagram. Unless --no-route is
given, the network is solved first and the best walk is drawn in bold.

Examples:
  valvepath render -o valves.svg input.txt
  valvepath render -f dot input.txt | dot -Tpng > valves.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runRender(cmd, inputPath(args), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noRoute, "no-route", false, "draw the network without solving it")
	cmd.Flags().BoolVar(&opts.rates, "rates", false, "label every valve with its flow rate")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	popts := c.options(cmd, &opts.solveFlags)
	ropts := render.Options{Rates: opts.rates}

	var n *network.Network
	if opts.noRoute {
		if n, _, err = runner.Network(ctx, input, popts); err != nil {
			return err
		}
	} else {
		res, err := runner.Execute(ctx, input, popts)
		if err != nil {
			return err
		}
		n = res.Network
		ropts.Highlight = res.Solution.BestPath(n)
		c.Logger.Debug("highlighting best walk", "path", ropts.Highlight.String())
	}

	data := []byte(render.ToDOT(n, ropts))
	if opts.format == formatSVG {
		if data, err = render.RenderSVG(ctx, string(data)); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(cmd.ErrOrStderr(), "Rendered %s", opts.format)
	printFile(cmd.ErrOrStderr(), opts.output)
	return nil
}
