package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/fleetdesk/internal/booking"
	"github.com/javiermolinar/fleetdesk/internal/config"
)

// Open returns the repository selected by the storage config. Postgres
// tables are created when missing.
func Open(ctx context.Context, cfg config.StorageConfig) (booking.Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	case config.DriverSQLite, "":
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
