package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/healthdays/internal/models"
)

// stubSource serves a fixed day map to tool handlers.
type stubSource struct {
	days map[string]models.DayRecord
	err  error
}

func (s *stubSource) Load(ctx context.Context) (map[string]models.DayRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]models.DayRecord, len(s.days))
	for k, v := range s.days {
		out[k] = v
	}
	return out, nil
}

func testHandlers(days map[string]models.DayRecord) *handlers {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return &handlers{ds: &stubSource{days: days}, log: log}
}

func fixtureDays() map[string]models.DayRecord {
	d := models.NewDayRecord()
	d.SleepQuality = 55
	d.SleepDurationHours = 5
	d.TotalCalories = 420
	d.WorkoutNames = "Push Day"
	d.WorkoutTimes = []models.TimeOfDay{{Hour: 8}}
	return map[string]models.DayRecord{"2023-06-01": d}
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

// TestGetDayTool verifies that get_day returns the matching record and
// reports an error result for a date with no data.
func TestGetDayTool(t *testing.T) {
	h := testHandlers(fixtureDays())
	ctx := context.Background()

	res, err := h.getDay(ctx, toolRequest(map[string]any{"date": "2023-06-01"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var day models.DayRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &day); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if day.TotalCalories != 420 {
		t.Errorf("total_calories = %v, want 420", day.TotalCalories)
	}

	res, err = h.getDay(ctx, toolRequest(map[string]any{"date": "2024-01-01"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("missing date did not produce a tool error")
	}
}

// TestGetDayToolBadArgs verifies the required and malformed date cases.
func TestGetDayToolBadArgs(t *testing.T) {
	h := testHandlers(fixtureDays())
	ctx := context.Background()

	res, err := h.getDay(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("missing date argument did not produce a tool error")
	}

	res, err = h.getDay(ctx, toolRequest(map[string]any{"date": "June 1st"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("malformed date did not produce a tool error")
	}
}

// TestListDaysTool verifies the full listing and the optional date-range
// filter.
func TestListDaysTool(t *testing.T) {
	days := fixtureDays()
	later := models.NewDayRecord()
	later.TotalCalories = 100
	days["2023-07-15"] = later

	h := testHandlers(days)
	ctx := context.Background()

	res, err := h.listDays(ctx, toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var got map[string]models.DayRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	res, err = h.listDays(ctx, toolRequest(map[string]any{"start": "2023-07-01"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	// Fresh map: Unmarshal merges into a non-nil map and would keep the
	// unfiltered keys around.
	got = nil
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("filtered len = %d, want 1", len(got))
	}
	if _, ok := got["2023-07-15"]; !ok {
		t.Errorf("filtered result = %v, want only 2023-07-15", got)
	}
}

// TestMetricTools verifies the three metric tools over the fixture snapshot.
func TestMetricTools(t *testing.T) {
	h := testHandlers(fixtureDays())
	ctx := context.Background()

	cases := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		want    string
	}{
		{"average_calories_low_sleep", h.averageCaloriesLowSleep, "420"},
		{"push_days", h.pushDays, "1"},
		{"morning_workouts", h.morningWorkouts, "1"},
	}
	for _, c := range cases {
		res, err := c.handler(ctx, toolRequest(nil))
		if err != nil {
			t.Errorf("%s: handler error: %v", c.name, err)
			continue
		}
		if res.IsError {
			t.Errorf("%s: tool error: %s", c.name, resultText(t, res))
			continue
		}
		var got map[string]string
		if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
			t.Errorf("%s: decode error: %v", c.name, err)
			continue
		}
		if got["value"] != c.want {
			t.Errorf("%s = %q, want %q", c.name, got["value"], c.want)
		}
	}
}

// TestMetricToolNoData verifies that ErrNoData surfaces as a tool error
// rather than a zero value.
func TestMetricToolNoData(t *testing.T) {
	h := testHandlers(map[string]models.DayRecord{})

	res, err := h.averageCaloriesLowSleep(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("empty snapshot did not produce a tool error")
	}
}

// TestToolsSurfaceLoadErrors verifies that a failing data source turns into
// a tool error, never a panic or silent empty result.
func TestToolsSurfaceLoadErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := &handlers{ds: &stubSource{err: errors.New("backend down")}, log: log}

	res, err := h.listDays(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("load failure did not produce a tool error")
	}
}
