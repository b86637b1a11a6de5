package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/tui"
	api "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [machine]",
		Short: "Start the HTTP API",
		Long: `Serves the JSON API: POST /v1/run, /v1/validate and /v1/encode, stored runs
under /v1/runs, Prometheus metrics on /metrics and a health check on /healthz.
The optional machine answers requests that do not send their own.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := logging.NewJSON(os.Stderr, logging.Level(a.cfg.Debug))

			var eng *turing.Engine
			if len(args) == 1 {
				var err error
				if eng, err = cli.LoadEngine(args[0], a.cfg, logger); err != nil {
					return err
				}
			}

			backend, err := cli.OpenBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr: a.cfg.Addr,
				Handler: api.NewHandler(api.Config{
					Machine:   eng,
					StepLimit: a.cfg.StepLimit,
					Store:     backend.Store,
					Locker:    backend.Locker,
					Metrics:   metrics,
					Gatherer:  reg,
					Logger:    logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			if cli.UseColor(a.cfg, cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", srv.Addr, "store", a.cfg.Store)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("graceful shutdown did not complete: %w", err)
				}
				return nil
			}
		},
	}
	cmd.Flags().String("addr", cli.DefaultConfig().Addr, "Address to listen on")
	return cmd
}
