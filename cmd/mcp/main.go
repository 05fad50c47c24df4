// Command mcp serves the division tools over the Model Context Protocol on
// stdio. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"long-division-api/internal/config"
	"long-division-api/internal/history"
	"long-division-api/internal/mcptools"
	"long-division-api/internal/observability"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "long-division-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		return err
	}
	defer observability.SyncLogger()

	store, closeStore, err := history.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer closeStore()

	s := server.NewMCPServer(
		"long-division-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
	mcptools.New(store).Register(s)

	observability.Logger.Info("mcp server started",
		zap.String("version", version),
		zap.String("history_driver", cfg.HistoryDriver),
	)
	return server.ServeStdio(s)
}
