package models

// RawSleepRecord is one sleep session as given by the external source.
// It has no identity beyond its start timestamp.
type RawSleepRecord struct {
	StartTimestamp string  `json:"start_timestamp"`
	Quality        float64 `json:"quality"`
	DurationHours  float64 `json:"duration_hours"`
}

// RawWorkoutRecord is one workout session as given by the external source.
type RawWorkoutRecord struct {
	Timestamp    string   `json:"timestamp"`
	Calories     float64  `json:"calories"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MuscleGroups []string `json:"muscle_groups"`
	Equipment    []string `json:"equipment"`
}

// DayRecord is the merged record for one UTC calendar day. The numeric zero
// values and empty lists are the literal merge seeds for a day the
// corresponding source contributed nothing to, not "unknown" sentinels.
type DayRecord struct {
	SleepQuality        float64     `json:"sleep_quality"`
	SleepDurationHours  float64     `json:"sleep_duration_hours"`
	TotalCalories       float64     `json:"total_calories"`
	WorkoutNames        string      `json:"workout_names"`
	WorkoutDescriptions string      `json:"workout_descriptions"`
	MuscleGroups        []string    `json:"muscle_groups"`
	Equipment           []string    `json:"equipment"`
	WorkoutTimes        []TimeOfDay `json:"workout_times"`
}

// NewDayRecord returns a DayRecord at its merge seed: zero sleep and workout
// totals with empty (not null) lists.
func NewDayRecord() DayRecord {
	return DayRecord{
		MuscleGroups: []string{},
		Equipment:    []string{},
		WorkoutTimes: []TimeOfDay{},
	}
}
