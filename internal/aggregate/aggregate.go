// Package aggregate merges the raw sleep and workout collections into one
// record per UTC calendar day.
//
// The two sources follow different combination policies, both deliberate:
// sleep is overwrite-not-merge (a later sleep record for the same date
// replaces the earlier one entirely), while workouts append-merge (calories
// sum, text and list fields concatenate in arrival order). Records are
// processed in input order, never sorted, so "later" always means later in
// the input array.
package aggregate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/meltforce/healthdays/internal/models"
	"github.com/meltforce/healthdays/internal/tz"
)

// DateLayout is the snapshot's day-key format.
const DateLayout = "2006-01-02"

// Stats tracks one aggregation run.
type Stats struct {
	SleepRecords   int
	WorkoutRecords int
	Days           int
}

// Aggregator normalizes record timestamps through a zone-abbreviation map
// and buckets them into UTC calendar days. The map is built once per
// invocation and injected here rather than resolved ambiently, so the
// aggregator is testable with a fixed mapping.
type Aggregator struct {
	zones tz.AbbrevMap
	log   *slog.Logger
}

// New creates an Aggregator that resolves abbreviations from the system zone
// database.
func New(log *slog.Logger) *Aggregator {
	return NewWithZones(tz.ResolveAbbreviations(), log)
}

// NewWithZones creates an Aggregator with an explicit abbreviation map.
func NewWithZones(zones tz.AbbrevMap, log *slog.Logger) *Aggregator {
	return &Aggregator{zones: zones, log: log}
}

// Aggregate merges the full collections into a date-keyed map of day
// records. Any normalization failure aborts the whole run; no partial result
// is returned. The returned map is the complete, final output.
func (a *Aggregator) Aggregate(sleep []models.RawSleepRecord, workouts []models.RawWorkoutRecord) (map[string]models.DayRecord, *Stats, error) {
	days := make(map[string]models.DayRecord)

	for i, rec := range sleep {
		instant, err := tz.Normalize(rec.StartTimestamp, a.zones)
		if err != nil {
			return nil, nil, fmt.Errorf("sleep record %d (%q): %w", i, rec.StartTimestamp, err)
		}
		date := instant.Format(DateLayout)

		// Assign, not merge: the later record in input order wins outright.
		day, ok := days[date]
		if !ok {
			day = models.NewDayRecord()
		}
		day.SleepQuality = rec.Quality
		day.SleepDurationHours = rec.DurationHours
		days[date] = day
	}

	// Dates that already received a workout contribution, so the first
	// workout on a date seeds the fields and later ones merge.
	merged := make(map[string]bool)

	for i, rec := range workouts {
		instant, err := tz.Normalize(rec.Timestamp, a.zones)
		if err != nil {
			return nil, nil, fmt.Errorf("workout record %d (%q): %w", i, rec.Timestamp, err)
		}
		date := instant.Format(DateLayout)
		tod := models.TimeOfDayUTC(instant)

		day, ok := days[date]
		if !ok {
			day = models.NewDayRecord()
		}

		if merged[date] {
			day.TotalCalories += rec.Calories
			day.WorkoutNames = joinField(day.WorkoutNames, rec.Name)
			day.WorkoutDescriptions = joinField(day.WorkoutDescriptions, rec.Description)
		} else {
			day.TotalCalories = rec.Calories
			day.WorkoutNames = rec.Name
			day.WorkoutDescriptions = rec.Description
			merged[date] = true
		}
		day.MuscleGroups = append(day.MuscleGroups, rec.MuscleGroups...)
		day.Equipment = append(day.Equipment, rec.Equipment...)
		day.WorkoutTimes = append(day.WorkoutTimes, tod)
		days[date] = day
	}

	stats := &Stats{
		SleepRecords:   len(sleep),
		WorkoutRecords: len(workouts),
		Days:           len(days),
	}
	if a.log != nil {
		a.log.Info("aggregation complete",
			"sleep_records", stats.SleepRecords,
			"workout_records", stats.WorkoutRecords,
			"days", stats.Days,
		)
	}
	return days, stats, nil
}

// joinField appends with the ", " separator used for workout names and
// descriptions. The separator is unconditional: joining is a pure
// concatenation in arrival order, even around empty values.
func joinField(existing, next string) string {
	return strings.Join([]string{existing, next}, ", ")
}
