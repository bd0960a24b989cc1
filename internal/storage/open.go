package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/healthdays/internal/config"
)

// Open returns the snapshot store selected by the config. The postgres
// backend expects migrations to have been applied already.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Snapshot.Backend {
	case "file":
		return NewFileStore(cfg.Snapshot.Path), nil
	case "sqlite":
		return OpenSQLiteStore(cfg.Snapshot.StateDir)
	case "postgres":
		return NewPostgresStore(ctx, cfg.Database.DSN())
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}
