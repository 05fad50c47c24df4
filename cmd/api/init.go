package main

import (
	"context"
	"errors"

	"long-division-api/internal/calculator"
	"long-division-api/internal/config"
	"long-division-api/internal/observability"
)

// initTelemetry starts the OTLP trace, metric and (optionally) log
// pipelines and the calculator instruments. The returned shutdown flushes
// every started provider.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.TelemetryOn {
		traceShutdown, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, metricShutdown)

		if cfg.OTelLogsOn {
			logShutdown, err := observability.InitLogging(ctx, cfg.ServiceName)
			if err != nil {
				return shutdown, err
			}
			shutdowns = append(shutdowns, logShutdown)
		}
	}

	// Without a meter provider the instruments bind to the global no-op.
	if err := calculator.InitMetrics(); err != nil {
		return shutdown, err
	}

	return shutdown, nil
}
