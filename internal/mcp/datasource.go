package mcp

import (
	"context"

	"github.com/meltforce/healthdays/internal/models"
	"github.com/meltforce/healthdays/internal/storage"
)

// DataSource abstracts the snapshot for MCP tools. Any storage.Store (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Load(ctx context.Context) (map[string]models.DayRecord, error)
}

// Compile-time check: every storage.Store satisfies DataSource.
var _ DataSource = (storage.Store)(nil)
