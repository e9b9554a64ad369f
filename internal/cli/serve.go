package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/valvepath/pkg/metrics"
	"github.com/matzehuels/valvepath/pkg/observability"
	"github.com/matzehuels/valvepath/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve starts an HTTP server exposing POST /v1/solve, POST /v1/network,
GET /healthz and Prometheus metrics at GET /metrics. It shuts down gracefully
on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			reg := metrics.NewRegistry()
			observability.SetPipelineHooks(reg)
			observability.SetCacheHooks(reg)
			observability.SetHTTPHooks(reg)
			defer observability.Reset()

			runner := c.newRunner(cmd.Context(), false)
			defer runner.Close()

			srv := server.New(runner,
				server.WithDefaults(c.Config.Options()),
				server.WithLogger(c.Logger),
				server.WithMetrics(reg.Handler()),
				server.WithMaxBodyBytes(cfg.MaxBodyBytes),
			)
			return srv.ListenAndServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	return cmd
}
