package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meltforce/healthdays/internal/models"
)

// PostgresStore keeps the snapshot in PostgreSQL with the same
// replace-in-one-transaction contract as the SQLite backend. Useful when the
// HTTP server runs on a different host than the aggregating CLI.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore with a connection pool.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{Pool: pool}, nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Replace swaps the snapshot for the given day map in one transaction.
func (s *PostgresStore) Replace(ctx context.Context, runID uuid.UUID, days map[string]models.DayRecord) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning snapshot replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE day_records`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	for date, day := range days {
		record, err := json.Marshal(day)
		if err != nil {
			return fmt.Errorf("encoding day %s: %w", date, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO day_records (date, record) VALUES ($1, $2)`,
			date, record,
		); err != nil {
			return fmt.Errorf("inserting day %s: %w", date, err)
		}
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO snapshot_meta (id, run_id, written_at) VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE SET run_id = EXCLUDED.run_id, written_at = EXCLUDED.written_at`,
		runID,
	); err != nil {
		return fmt.Errorf("recording snapshot meta: %w", err)
	}

	return tx.Commit(ctx)
}

// Load reads the full snapshot; an empty table is an empty snapshot.
func (s *PostgresStore) Load(ctx context.Context) (map[string]models.DayRecord, error) {
	rows, err := s.Pool.Query(ctx, `SELECT date, record FROM day_records`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	days := make(map[string]models.DayRecord)
	for rows.Next() {
		var date string
		var record []byte
		if err := rows.Scan(&date, &record); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		var day models.DayRecord
		if err := json.Unmarshal(record, &day); err != nil {
			return nil, fmt.Errorf("decoding day %s: %w", date, err)
		}
		days[date] = day
	}
	return days, rows.Err()
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}
