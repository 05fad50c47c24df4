package main

import (
	"errors"
	"net/http"
	"testing"

	"long-division-api/internal/config"
)

func TestWaitForShutdownReturnsServeError(t *testing.T) {
	serveErr := make(chan error, 1)
	serveErr <- errors.New("address already in use")

	err := waitForShutdown(&http.Server{}, config.Default(), serveErr)
	if err == nil || err.Error() != "serve: address already in use" {
		t.Fatalf("expected wrapped serve error, got %v", err)
	}
}

func TestWaitForShutdownReturnsNilWhenServerCloses(t *testing.T) {
	serveErr := make(chan error)
	close(serveErr)

	if err := waitForShutdown(&http.Server{}, config.Default(), serveErr); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestInitTelemetryDisabledReturnsUsableShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.TelemetryOn = false

	shutdown, err := initTelemetry(t.Context(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}
