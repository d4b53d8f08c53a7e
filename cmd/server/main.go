package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"ridepool/internal/app"
	"ridepool/internal/config"
	"ridepool/internal/logging"
	internalRedis "ridepool/internal/redis"
	"ridepool/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ride-pool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg := config.Load()
	opts, err := config.ApplyFlags(cfg, os.Args[1:])
	if err != nil {
		return err
	}
	if opts.Help {
		fmt.Fprintf(os.Stderr, "Usage: ride-pool [flags]\n\n%s", opts.Usage)
		return nil
	}

	logger := logging.New(cfg.Log.Level)
	slog.SetDefault(logger)

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", "error", err)
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", "app", cfg.NewRelic.AppName)
			defer nrApp.Shutdown(cfg.Server.ShutdownTimeout)
		}
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	backends, err := app.OpenBackends(startCtx, cfg, nrApp)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := backends.Close(); err != nil {
			logger.Error("failed to close backends", "error", err)
		}
	}()
	logger.Info("storage ready", "driver", cfg.Storage.Driver, "redis", backends.Redis != nil)

	if opts.MigrateOnly {
		logger.Info("migrations applied, exiting")
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sweeper.Enabled {
		sweeperCfg := worker.SweeperConfig{
			Rides:    backends.Storage.Repos.Rides,
			Logger:   logger,
			Interval: cfg.Sweeper.Interval,
			LockTTL:  cfg.Sweeper.LockTTL,
		}
		if backends.Redis != nil {
			sweeperCfg.Lock = internalRedis.NewLockStore(backends.Redis)
			sweeperCfg.Cache = internalRedis.NewCacheStore(backends.Redis)
		}
		go worker.NewSweeper(sweeperCfg).Start(runCtx)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.NewEngine(cfg, backends.Storage, backends.Redis, nrApp),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine.
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	// Graceful shutdown.
	<-runCtx.Done()
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	default:
	}

	logger.Info("server exited")
	return nil
}
