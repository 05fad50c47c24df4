// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// History drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Addr            string
	ServiceName     string
	LogLevel        string
	TelemetryOn     bool
	OTelLogsOn      bool
	HistoryDriver   string
	HistoryPath     string
	HistoryLimit    int
	RevealInterval  time.Duration
	ShutdownTimeout time.Duration
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Addr:            ":8080",
		ServiceName:     "long-division-api",
		LogLevel:        "info",
		TelemetryOn:     true,
		HistoryDriver:   DriverMemory,
		HistoryPath:     "history.db",
		HistoryLimit:    10,
		RevealInterval:  500 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads the environment over Default.
func Load() (Config, error) {
	cfg := Default()

	if v := env("HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := env("OTEL_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	var err error
	if cfg.TelemetryOn, err = boolEnv("TELEMETRY_ENABLED", cfg.TelemetryOn); err != nil {
		return Config{}, err
	}
	if cfg.OTelLogsOn, err = boolEnv("OTEL_LOGS_ENABLED", cfg.OTelLogsOn); err != nil {
		return Config{}, err
	}

	if v := env("HISTORY_DRIVER"); v != "" {
		cfg.HistoryDriver = strings.ToLower(v)
	}
	if v := env("HISTORY_SQLITE_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	if v := env("HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("parse HISTORY_LIMIT %q: must be a positive integer", v)
		}
		cfg.HistoryLimit = n
	}

	if cfg.RevealInterval, err = durationEnv("STEP_REVEAL_INTERVAL", cfg.RevealInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.HistoryDriver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown HISTORY_DRIVER %q", c.HistoryDriver)
	}
	if c.HistoryDriver == DriverSQLite && c.HistoryPath == "" {
		return fmt.Errorf("HISTORY_SQLITE_PATH required for sqlite driver")
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s %q: %w", key, v, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := env(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s %q: must not be negative", key, v)
	}
	return d, nil
}
