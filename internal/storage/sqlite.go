package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/meltforce/healthdays/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot in a local SQLite database: one row per day
// in day_records plus a single snapshot_meta row identifying the producing
// invocation. Replacement happens inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the snapshot database at
// dir/snapshot.db.
func OpenSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "snapshot.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS day_records (
		date   TEXT PRIMARY KEY,
		record TEXT NOT NULL
	)`)
	if err == nil {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshot_meta (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			run_id     TEXT NOT NULL,
			written_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot tables: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Replace swaps the snapshot for the given day map in one transaction.
func (s *SQLiteStore) Replace(ctx context.Context, runID uuid.UUID, days map[string]models.DayRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM day_records`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	for date, day := range days {
		record, err := json.Marshal(day)
		if err != nil {
			return fmt.Errorf("encoding day %s: %w", date, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO day_records (date, record) VALUES (?, ?)`,
			date, string(record),
		); err != nil {
			return fmt.Errorf("inserting day %s: %w", date, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshot_meta (id, run_id, written_at) VALUES (1, ?, CURRENT_TIMESTAMP)`,
		runID.String(),
	); err != nil {
		return fmt.Errorf("recording snapshot meta: %w", err)
	}

	return tx.Commit()
}

// Load reads the full snapshot; an empty table is an empty snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]models.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, record FROM day_records`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	days := make(map[string]models.DayRecord)
	for rows.Next() {
		var date, record string
		if err := rows.Scan(&date, &record); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		var day models.DayRecord
		if err := json.Unmarshal([]byte(record), &day); err != nil {
			return nil, fmt.Errorf("decoding day %s: %w", date, err)
		}
		days[date] = day
	}
	return days, rows.Err()
}

// RunID returns the run ID of the invocation that wrote the current
// snapshot, or uuid.Nil when no snapshot exists.
func (s *SQLiteStore) RunID(ctx context.Context) (uuid.UUID, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM snapshot_meta WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}

// Close closes the snapshot database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
