package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/readiness/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine over HTTP",
		Long: `Serve the projection engine as a JSON API:

  POST /v1/projections  project and score a scenario
  POST /v1/readiness    score only
  POST /v1/validate     list input warnings
  POST /v1/compare      compare against strategy templates
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.engine(), server.Options{
				RateLimit:  a.settings.Server.RateLimit,
				RateWindow: a.settings.Server.RateWindow,
				Logger:     a.logger,
			})
			defer srv.Close()

			a.logger.Info("starting server",
				zap.String("addr", addr),
				zap.String("cache", a.settings.Cache.Backend),
				zap.Int("rate_limit", a.settings.Server.RateLimit),
				zap.Duration("rate_window", a.settings.Server.RateWindow))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings)")
	return cmd
}
