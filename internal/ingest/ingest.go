// Package ingest reads the raw sleep and workout collections from JSON files
// and enforces their structural contract: a top-level array of records with
// the required fields present and correctly typed. Semantic validation
// (negative durations, implausible calories) is deliberately not performed.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meltforce/healthdays/internal/models"
)

// MaxFileSize bounds input files; anything larger is refused before parsing.
const MaxFileSize = 100 << 20

// StructuralError reports an input collection that violates the structural
// contract. Record is the zero-based index of the offending record, or -1
// when the problem is the collection itself.
type StructuralError struct {
	Source string
	Record int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("%s: record %d: %s", e.Source, e.Record, e.Reason)
}

// ReadSleep reads and validates the sleep collection. Every record must carry
// start_timestamp, quality, and duration_hours.
func ReadSleep(path string) ([]models.RawSleepRecord, error) {
	raw, err := readArray(path)
	if err != nil {
		return nil, err
	}

	records := make([]models.RawSleepRecord, 0, len(raw))
	for i, entry := range raw {
		var rec struct {
			StartTimestamp *string  `json:"start_timestamp"`
			Quality        *float64 `json:"quality"`
			DurationHours  *float64 `json:"duration_hours"`
		}
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, &StructuralError{Source: path, Record: i, Reason: "mis-typed field: " + err.Error()}
		}
		switch {
		case rec.StartTimestamp == nil:
			return nil, &StructuralError{Source: path, Record: i, Reason: "missing start_timestamp"}
		case rec.Quality == nil:
			return nil, &StructuralError{Source: path, Record: i, Reason: "missing quality"}
		case rec.DurationHours == nil:
			return nil, &StructuralError{Source: path, Record: i, Reason: "missing duration_hours"}
		}
		records = append(records, models.RawSleepRecord{
			StartTimestamp: *rec.StartTimestamp,
			Quality:        *rec.Quality,
			DurationHours:  *rec.DurationHours,
		})
	}
	return records, nil
}

// ReadWorkouts reads and validates the workout collection. Only timestamp is
// required; the remaining fields default to their zero values.
func ReadWorkouts(path string) ([]models.RawWorkoutRecord, error) {
	raw, err := readArray(path)
	if err != nil {
		return nil, err
	}

	records := make([]models.RawWorkoutRecord, 0, len(raw))
	for i, entry := range raw {
		var rec struct {
			Timestamp    *string  `json:"timestamp"`
			Calories     float64  `json:"calories"`
			Name         string   `json:"name"`
			Description  string   `json:"description"`
			MuscleGroups []string `json:"muscle_groups"`
			Equipment    []string `json:"equipment"`
		}
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, &StructuralError{Source: path, Record: i, Reason: "mis-typed field: " + err.Error()}
		}
		if rec.Timestamp == nil {
			return nil, &StructuralError{Source: path, Record: i, Reason: "missing timestamp"}
		}
		records = append(records, models.RawWorkoutRecord{
			Timestamp:    *rec.Timestamp,
			Calories:     rec.Calories,
			Name:         rec.Name,
			Description:  rec.Description,
			MuscleGroups: rec.MuscleGroups,
			Equipment:    rec.Equipment,
		})
	}
	return records, nil
}

// readArray loads a file and decodes it as a top-level JSON array of raw
// records.
func readArray(path string) ([]json.RawMessage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, &StructuralError{
			Source: path,
			Record: -1,
			Reason: fmt.Sprintf("file is %d bytes, larger than the %d byte limit", info.Size(), int64(MaxFileSize)),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructuralError{Source: path, Record: -1, Reason: "must contain a JSON array: " + err.Error()}
	}
	return raw, nil
}
