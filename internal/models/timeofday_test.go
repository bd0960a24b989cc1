package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTimeOfDayString verifies the fixed HH:MM:SS rendering.
func TestTimeOfDayString(t *testing.T) {
	tod := TimeOfDay{Hour: 7, Minute: 5, Second: 0}
	if got := tod.String(); got != "07:05:00" {
		t.Errorf("String() = %q, want %q", got, "07:05:00")
	}
}

// TestTimeOfDayJSON verifies that TimeOfDay serializes as its string form
// and round-trips through JSON.
func TestTimeOfDayJSON(t *testing.T) {
	tod := TimeOfDay{Hour: 18, Minute: 30, Second: 15}

	data, err := json.Marshal(tod)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(data) != `"18:30:15"` {
		t.Errorf("marshal = %s, want \"18:30:15\"", data)
	}

	var back TimeOfDay
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if back != tod {
		t.Errorf("round trip = %+v, want %+v", back, tod)
	}
}

// TestParseTimeOfDayInvalid verifies that malformed times are rejected.
func TestParseTimeOfDayInvalid(t *testing.T) {
	for _, in := range []string{"25:00:00", "07:30", "nope", ""} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) succeeded", in)
		}
	}
}

// TestTimeOfDayBefore verifies ordering across hour, minute, and second
// boundaries.
func TestTimeOfDayBefore(t *testing.T) {
	cases := []struct {
		a, b TimeOfDay
		want bool
	}{
		{TimeOfDay{Hour: 9, Minute: 59, Second: 59}, TimeOfDay{Hour: 10}, true},
		{TimeOfDay{Hour: 10}, TimeOfDay{Hour: 10}, false},
		{TimeOfDay{Hour: 10, Second: 1}, TimeOfDay{Hour: 10}, false},
	}
	for _, c := range cases {
		if got := c.a.Before(c.b); got != c.want {
			t.Errorf("%v.Before(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

// TestTimeOfDayUTC verifies extraction of the UTC clock time regardless of
// the instant's location.
func TestTimeOfDayUTC(t *testing.T) {
	instant := time.Date(2023, 6, 1, 23, 45, 10, 0, time.FixedZone("X", -8*3600))
	tod := TimeOfDayUTC(instant)
	if tod.String() != "07:45:10" {
		t.Errorf("TimeOfDayUTC = %s, want 07:45:10", tod)
	}
}
