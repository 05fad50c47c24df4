package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"long-division-api/internal/calculator"
	"long-division-api/internal/handlers"
	"long-division-api/internal/observability"
)

// NewRouter wires middleware, operational endpoints and the calculator
// routes served by calc.
func NewRouter(calc *calculator.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calc)

	return r
}
