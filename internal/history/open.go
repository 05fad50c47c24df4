package history

import (
	"context"
	"fmt"

	"long-division-api/internal/config"
)

// Open builds the store selected by cfg.HistoryDriver. The returned close
// func is always non-nil.
func Open(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	switch cfg.HistoryDriver {
	case config.DriverMemory, "":
		return NewMemoryStore(cfg.HistoryLimit), func() error { return nil }, nil
	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, SQLiteConfig{Path: cfg.HistoryPath, Limit: cfg.HistoryLimit})
		if err != nil {
			return nil, func() error { return nil }, err
		}
		return s, s.Close, nil
	default:
		return nil, func() error { return nil }, fmt.Errorf("unknown history driver %q", cfg.HistoryDriver)
	}
}
