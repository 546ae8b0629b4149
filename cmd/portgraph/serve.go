package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/portgraph"
	"github.com/aretw0/portgraph/internal/presentation/tui"
	httpAdapter "github.com/aretw0/portgraph/pkg/adapters/http"
	"github.com/aretw0/portgraph/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves graph builds over HTTP: POST /build, GET /graphs, GET /graphs/{name},
GET /events (SSE build events) and GET /metrics (Prometheus).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := app.cfg.HTTP.Addr
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			addr = ":" + port
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)
		streams := httpAdapter.NewStreamManager(app.logger)

		engine, closeFn, err := newEngine(
			portgraph.WithLifecycleHooks(metrics.Hooks()),
			portgraph.WithLifecycleHooks(streams.Hooks()),
		)
		if err != nil {
			return err
		}
		defer closeFn()

		srv := &http.Server{
			Addr: addr,
			Handler: httpAdapter.NewHandler(engine,
				httpAdapter.WithLogger(app.logger),
				httpAdapter.WithStreams(streams),
				httpAdapter.WithMetrics(reg),
			),
			ReadHeaderTimeout: app.cfg.HTTP.ReadHeaderTimeout,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			app.logger.Info("Starting portgraph server", "addr", srv.Addr, "loader", app.cfg.Loader.Kind, "dir", app.cfg.Loader.Dir)
			serverErrors <- srv.ListenAndServe()
		}()

		tui.PrintBanner(cmd.ErrOrStderr())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			app.logger.Info("Start shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.logger.Warn("Graceful shutdown did not complete", "timeout", app.cfg.HTTP.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			app.logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides http.addr)")
}
