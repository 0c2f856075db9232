package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	bidding "car-auction/internal/biddingService"
	"car-auction/internal/config"
	"car-auction/internal/metrics"
	"car-auction/internal/repository"
	"car-auction/internal/server"
	"car-auction/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(globals)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					utils.Warn("failed to close database", map[string]any{"error": err.Error()})
				}
			}()

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           newHandler(cfg, store, prometheus.NewRegistry()),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return runServer(ctx, srv)
		},
	}
}

// newHandler assembles the service and router around store
func newHandler(cfg *config.Config, store repository.AuctionStore, reg *prometheus.Registry) http.Handler {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(reg)

	service := bidding.NewBiddingService(store, recorder)
	if cfg.AllowSeedEndpoint {
		utils.Warn("POST /api/init-data is enabled and wipes all data", nil)
	}

	router := server.SetupRouter(service, server.Options{
		AllowSeed: cfg.AllowSeedEndpoint,
		Recorder:  recorder,
		Gatherer:  reg,
	})
	return server.WithCORS(router, cfg.CORSOrigins)
}

// runServer serves until ctx is cancelled, then drains in-flight requests
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.Info("shutting down auction server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
