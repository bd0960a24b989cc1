package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a single day. Workout times are kept
// as an explicit time-of-day value rather than a string so that comparisons
// stay correct even if the serialized precision ever changes; the JSON form
// is the fixed-width "HH:MM:SS" used in the snapshot.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayUTC extracts the UTC time of day from an instant.
func TimeOfDayUTC(t time.Time) TimeOfDay {
	u := t.UTC()
	return TimeOfDay{Hour: u.Hour(), Minute: u.Minute(), Second: u.Second()}
}

// ParseTimeOfDay parses a zero-padded "HH:MM:SS" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("cannot parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// String formats the time as zero-padded "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
