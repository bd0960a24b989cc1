package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/meltforce/healthdays/internal/models"
)

// FileStore writes the snapshot as one indented JSON object keyed by
// "YYYY-MM-DD" date strings. Writes go to a temp file in the same directory
// followed by a rename, so a crashed invocation never leaves a partially
// written snapshot behind. The run ID is not recorded; the file's content is
// exactly the date map.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore targeting the given snapshot path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Replace writes the full snapshot, replacing any previous one.
func (s *FileStore) Replace(_ context.Context, _ uuid.UUID, days map[string]models.DayRecord) error {
	data, err := json.MarshalIndent(days, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the current snapshot; a missing file is an empty snapshot.
func (s *FileStore) Load(_ context.Context) (map[string]models.DayRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]models.DayRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var days map[string]models.DayRecord
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.path, err)
	}
	if days == nil {
		days = map[string]models.DayRecord{}
	}
	return days, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
