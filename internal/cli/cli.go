// Package cli implements the valvepath command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/buildinfo"
	"github.com/matzehuels/valvepath/pkg/cache"
	"github.com/matzehuels/valvepath/pkg/config"
	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "valvepath"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "valvepath finds the walk that releases the most pressure",
		Long: `valvepath reads a valve network (one "Valve XX has flow rate=N; tunnels lead to valves ..." line
per valve), walks it from the entry valve through two flow valves of every ordered pair, and
reports the walk that releases the most pressure within the time budget.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/valvepath/valvepath.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.topCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies its log level. --verbose wins.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := log.InfoLevel
	if cfg.Log.Level != "" {
		if l, err := log.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache that cannot be
// opened is reported and replaced by a NullCache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.openCache(ctx, noCache), nil, c.Logger)
}

func (c *CLI) openCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache()
	}
	cc, err := cache.Open(ctx, c.Config.Cache.Dir, c.Config.Cache.Redis)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// =============================================================================
// Options Helpers
// =============================================================================

// solveFlags are the pipeline flags shared by solve, top and render.
type solveFlags struct {
	entry   string
	budget  int
	workers int
	noCache bool
	refresh bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.entry, "entry", "e", "", "entry valve (default from config, else AA)")
	cmd.Flags().IntVarP(&f.budget, "budget", "b", 0, "time budget in minutes (default from config, else 30)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "scoring goroutines (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// options seeds pipeline options from the config and overlays the flags the
// user actually set.
func (c *CLI) options(cmd *cobra.Command, f *solveFlags) pipeline.Options {
	opts := c.Config.Options()
	flags := cmd.Flags()
	if flags.Changed("entry") {
		opts.Entry = f.entry
	}
	if flags.Changed("budget") {
		opts.Budget = f.budget
	}
	if flags.Changed("workers") {
		opts.Workers = f.workers
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts
}

// readInput reads the valve description from path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if err := pkgerrors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "input %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// inputPath returns the input path argument, defaulting to stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
