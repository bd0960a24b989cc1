// Package metrics reduces the merged day-record snapshot to single summary
// values. Each metric is a filter+reduce over the snapshot; none of them
// mutate it.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/meltforce/healthdays/internal/models"
)

// ErrNoData is returned when a metric's denominator would be empty. Callers
// must surface it; a silent zero would be indistinguishable from real data.
var ErrNoData = errors.New("no days match the metric's filter")

// ErrUnknownMetric is returned by Evaluate for an unrecognized metric name.
var ErrUnknownMetric = errors.New("unknown metric")

// lowSleepThresholdHours splits low-sleep days from the rest.
const lowSleepThresholdHours = 6

// morningCutoff is the exclusive upper bound for a morning workout.
var morningCutoff = models.TimeOfDay{Hour: 10}

// Names lists the recognized metric names in display order.
var Names = []string{
	"average_calories_low_sleep",
	"push_days",
	"morning_workouts",
}

// Evaluate computes the named metric and formats its value for output.
func Evaluate(name string, days map[string]models.DayRecord) (string, error) {
	switch name {
	case "average_calories_low_sleep":
		avg, err := AverageCaloriesLowSleep(days)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(avg, 'g', -1, 64), nil
	case "push_days":
		return strconv.Itoa(PushDays(days)), nil
	case "morning_workouts":
		return strconv.Itoa(MorningWorkouts(days)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// AverageCaloriesLowSleep returns the mean total_calories over days with
// less than six hours of sleep. A low-sleep day with no workouts contributes
// its zero-calorie default to both numerator and denominator. Returns
// ErrNoData when no day qualifies.
func AverageCaloriesLowSleep(days map[string]models.DayRecord) (float64, error) {
	var total float64
	var count int
	for _, day := range days {
		if day.SleepDurationHours < lowSleepThresholdHours {
			total += day.TotalCalories
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("average_calories_low_sleep: %w", ErrNoData)
	}
	return total / float64(count), nil
}

// PushDays counts case-insensitive occurrences of "push" across all days'
// joined workout names. Two push workouts on one date count twice.
func PushDays(days map[string]models.DayRecord) int {
	var count int
	for _, day := range days {
		count += strings.Count(strings.ToLower(day.WorkoutNames), "push")
	}
	return count
}

// MorningWorkouts counts workout times strictly before 10:00:00 UTC across
// all days, one per workout entry.
func MorningWorkouts(days map[string]models.DayRecord) int {
	var count int
	for _, day := range days {
		for _, t := range day.WorkoutTimes {
			if t.Before(morningCutoff) {
				count++
			}
		}
	}
	return count
}
