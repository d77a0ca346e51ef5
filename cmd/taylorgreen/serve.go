package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/taylor-green/internal/adapter/http"
	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/observability"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Compute the fields once and serve them over HTTP until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(func(c *config.Config) {
				if cmd.Flags().Changed("addr") {
					c.HTTPAddr = addr
				}
			})
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			app := newApp(cfg, cmd.OutOrStdout(), logger, observability.NewMetrics())
			defer app.close()

			srv := httpadapter.NewServer(cfg.HTTPAddr, app.pipeline, cfg.Quiver, cfg.PlotCacheSize, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Start HTTP server.
			go func() {
				logger.Info("http server listening", "addr", cfg.HTTPAddr)
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			if _, err := app.run(ctx); err != nil {
				logger.Error("verification run failed", "error", err)
				shutdown(srv, cfg, app)
				return err
			}

			<-ctx.Done()
			logger.Info("shutting down")
			shutdown(srv, cfg, app)
			logger.Info("shutdown complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	return cmd
}

func shutdown(srv *httpadapter.Server, cfg *config.Config, a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
}
