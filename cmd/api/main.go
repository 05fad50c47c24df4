package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"long-division-api/internal/calculator"
	"long-division-api/internal/config"
	"long-division-api/internal/history"
	"long-division-api/internal/observability"
	"long-division-api/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "long-division-api: %v\n", err)
		os.Exit(1)
	}
}

// run starts the API and blocks until SIGINT/SIGTERM or a serve error.
// Deferred shutdowns flush telemetry and the logger on every return.
func run() error {

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	defer observability.SyncLogger()

	// Tracing, metrics, logs
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			observability.Logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()
	if err != nil {
		observability.Logger.Error("telemetry init failed", zap.Error(err))
		return fmt.Errorf("init telemetry: %w", err)
	}

	// History
	store, closeStore, err := history.Open(ctx, cfg)
	if err != nil {
		observability.Logger.Error("history store open failed",
			zap.String("driver", cfg.HistoryDriver),
			zap.Error(err),
		)
		return fmt.Errorf("open history: %w", err)
	}
	defer closeStore()

	// Router
	calc := calculator.NewHandler(store, calculator.WithRevealInterval(cfg.RevealInterval))
	router := server.NewRouter(calc)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("history_driver", cfg.HistoryDriver),
			zap.Bool("telemetry", cfg.TelemetryOn),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return waitForShutdown(srv, cfg, serveErr)
}

func waitForShutdown(srv *http.Server, cfg config.Config, serveErr <-chan error) error {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serveErr:
		if ok {
			observability.Logger.Error("server failed", zap.Error(err))
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	observability.Logger.Info("server stopped")
	return nil
}
