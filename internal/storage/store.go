// Package storage persists the merged day-record snapshot. Exactly one
// snapshot exists per backend; every write replaces the previous one in full
// (atomic rename for the file backend, a single transaction for the database
// backends). The snapshot is a disposable cache: the next invocation
// overwrites it unconditionally and readers must tolerate it being absent.
package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/healthdays/internal/models"
)

// Store is the snapshot contract shared by the file, sqlite, and postgres
// backends.
type Store interface {
	// Replace atomically swaps the snapshot for the given day map. runID
	// identifies the producing invocation; backends with metadata record it.
	Replace(ctx context.Context, runID uuid.UUID, days map[string]models.DayRecord) error

	// Load returns the current snapshot, or an empty map when none has been
	// written yet.
	Load(ctx context.Context) (map[string]models.DayRecord, error)

	Close() error
}

// Compile-time checks: every backend satisfies Store.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
