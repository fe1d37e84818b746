package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"parcel-network-service/internal/api"
	"parcel-network-service/internal/app"
	"parcel-network-service/internal/config"
	"parcel-network-service/internal/platform/obs"
	"syscall"
	"time"
)

// main is the application composition root.
// It resolves configuration, wires the registry backend and route cache
// behind ports and serves the HTTP API until SIGINT or SIGTERM.
func main() {
	dotenv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		boot := obs.NewLogger(os.Stderr, "info", "console")
		boot.Fatal().Err(err).Msg("load config")
	}

	logger := obs.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if !dotenv {
		logger.Debug().Msg("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup")
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(logger, a.Planner, a.Registry),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("registry", cfg.RegistryBackend).Str("route_cache", cfg.RouteCache).
			Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}
