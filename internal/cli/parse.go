package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/graph"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	entry   string
	output  string // output file path (stdout if empty)
	noCache bool
}

func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Convert a valve description to network JSON",
		Long: `Parse reads a valve description and writes the resulting network as JSON.
The JSON can be inspected, diffed, or posted to another tool.

Examples:
  valvepath parse input.txt
  valvepath parse -o network.json input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, inputPath(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entry, "entry", "e", "", "entry valve (default from config, else AA)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the network cache")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, path string, opts *parseOpts) error {
	ctx := cmd.Context()
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	popts := c.Config.Options()
	popts.Logger = c.Logger
	if opts.entry != "" {
		popts.Entry = opts.entry
	}
	n, hit, err := runner.Network(ctx, input, popts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return graph.WriteGraph(n, cmd.OutOrStdout())
	}
	if err := graph.WriteGraphFile(n, opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	stderr := cmd.ErrOrStderr()
	printSuccess(stderr, "Parsed network")
	printStats(stderr, n.NodeCount(), n.EdgeCount(), hit)
	printFile(stderr, opts.output)
	return nil
}
