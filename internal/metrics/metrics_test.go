package metrics

import (
	"errors"
	"testing"

	"github.com/meltforce/healthdays/internal/models"
)

func day(quality, duration, calories float64, names string, times ...models.TimeOfDay) models.DayRecord {
	d := models.NewDayRecord()
	d.SleepQuality = quality
	d.SleepDurationHours = duration
	d.TotalCalories = calories
	d.WorkoutNames = names
	d.WorkoutTimes = append(d.WorkoutTimes, times...)
	return d
}

// TestAverageCaloriesLowSleep verifies the mean over days with under six
// hours of sleep, including a low-sleep day with no workouts at all.
func TestAverageCaloriesLowSleep(t *testing.T) {
	days := map[string]models.DayRecord{
		"2023-06-01": day(60, 5, 400, "Run"),
		"2023-06-02": day(90, 8, 900, "Long Ride"), // rested, excluded
		"2023-06-03": day(50, 4.5, 0, ""),          // low sleep, no workouts
	}

	avg, err := AverageCaloriesLowSleep(days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 200 {
		t.Errorf("avg = %v, want 200", avg)
	}
}

// TestAverageCaloriesLowSleepBoundary verifies that exactly six hours does
// not count as low sleep.
func TestAverageCaloriesLowSleepBoundary(t *testing.T) {
	days := map[string]models.DayRecord{
		"2023-06-01": day(70, 6, 500, "Run"),
	}

	_, err := AverageCaloriesLowSleep(days)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData for a 6.0h day", err)
	}
}

// TestAverageCaloriesLowSleepNoData verifies ErrNoData over an empty
// snapshot rather than a silent zero.
func TestAverageCaloriesLowSleepNoData(t *testing.T) {
	_, err := AverageCaloriesLowSleep(map[string]models.DayRecord{})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}
}

// TestPushDays verifies occurrence counting: case-insensitive substring
// matches within the joined names, counted per occurrence, not per day.
func TestPushDays(t *testing.T) {
	days := map[string]models.DayRecord{
		"2023-06-01": day(0, 0, 0, "Push Day, push-ups"),
		"2023-06-02": day(0, 0, 0, "Pull Day"),
		"2023-06-03": day(0, 0, 0, "PUSH session"),
	}

	if got := PushDays(days); got != 3 {
		t.Errorf("push_days = %d, want 3", got)
	}
}

// TestMorningWorkouts verifies per-workout counting against the 10:00
// cutoff; the cutoff itself is not morning.
func TestMorningWorkouts(t *testing.T) {
	days := map[string]models.DayRecord{
		"2023-06-01": day(0, 0, 0, "",
			models.TimeOfDay{Hour: 6, Minute: 30},
			models.TimeOfDay{Hour: 9, Minute: 59, Second: 59},
			models.TimeOfDay{Hour: 10},
		),
		"2023-06-02": day(0, 0, 0, "",
			models.TimeOfDay{Hour: 7},
			models.TimeOfDay{Hour: 18},
		),
	}

	if got := MorningWorkouts(days); got != 3 {
		t.Errorf("morning_workouts = %d, want 3", got)
	}
}

// TestEvaluate verifies name dispatch and output formatting.
func TestEvaluate(t *testing.T) {
	days := map[string]models.DayRecord{
		"2023-06-01": day(60, 5, 450, "Push Day", models.TimeOfDay{Hour: 8}),
	}

	cases := []struct {
		name string
		want string
	}{
		{"average_calories_low_sleep", "450"},
		{"push_days", "1"},
		{"morning_workouts", "1"},
	}
	for _, c := range cases {
		got, err := Evaluate(c.name, days)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s = %q, want %q", c.name, got, c.want)
		}
	}
}

// TestEvaluateUnknown verifies that an unrecognized name yields
// ErrUnknownMetric.
func TestEvaluateUnknown(t *testing.T) {
	_, err := Evaluate("step_count", map[string]models.DayRecord{})
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("error = %v, want ErrUnknownMetric", err)
	}
}
