// Package pipeline runs the full ingest → aggregate → snapshot sequence.
// The CLI runs it once per invocation; the HTTP server runs it on demand
// from the refresh endpoint.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/meltforce/healthdays/internal/aggregate"
	"github.com/meltforce/healthdays/internal/config"
	"github.com/meltforce/healthdays/internal/ingest"
	"github.com/meltforce/healthdays/internal/models"
	"github.com/meltforce/healthdays/internal/storage"
)

// Result summarizes one pipeline run.
type Result struct {
	RunID          uuid.UUID `json:"run_id"`
	SleepRecords   int       `json:"sleep_records"`
	WorkoutRecords int       `json:"workout_records"`
	Days           int       `json:"days"`
}

// Runner ties the configured input files, the aggregator, and a snapshot
// store together.
type Runner struct {
	cfg   *config.Config
	store storage.Store
	agg   *aggregate.Aggregator
	log   *slog.Logger
}

func New(cfg *config.Config, store storage.Store, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, store: store, agg: aggregate.New(log), log: log}
}

// Refresh reads both input files, aggregates them into day records, and
// replaces the snapshot. Any malformed record aborts the run; the previous
// snapshot stays untouched in that case.
func (r *Runner) Refresh(ctx context.Context) (map[string]models.DayRecord, *Result, error) {
	sleep, err := ingest.ReadSleep(r.cfg.Inputs.Sleep)
	if err != nil {
		return nil, nil, fmt.Errorf("reading sleep input: %w", err)
	}
	workouts, err := ingest.ReadWorkouts(r.cfg.Inputs.Workouts)
	if err != nil {
		return nil, nil, fmt.Errorf("reading workout input: %w", err)
	}

	days, stats, err := r.agg.Aggregate(sleep, workouts)
	if err != nil {
		return nil, nil, err
	}

	runID := uuid.New()
	if err := r.store.Replace(ctx, runID, days); err != nil {
		return nil, nil, fmt.Errorf("writing snapshot: %w", err)
	}

	result := &Result{
		RunID:          runID,
		SleepRecords:   stats.SleepRecords,
		WorkoutRecords: stats.WorkoutRecords,
		Days:           len(days),
	}
	r.log.Info("snapshot replaced",
		"run_id", runID,
		"sleep_records", result.SleepRecords,
		"workout_records", result.WorkoutRecords,
		"days", result.Days,
	)
	return days, result, nil
}
