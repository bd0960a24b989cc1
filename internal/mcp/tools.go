package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/healthdays/internal/aggregate"
	"github.com/meltforce/healthdays/internal/metrics"
)

// --- Tool definitions ---

var toolListDays = mcp.NewTool("list_days",
	mcp.WithDescription("List all days in the snapshot with their merged sleep and workout records. Optionally restrict to a date range."),
	mcp.WithString("start", mcp.Description("Earliest date to include (YYYY-MM-DD). Defaults to the beginning of the snapshot.")),
	mcp.WithString("end", mcp.Description("Latest date to include (YYYY-MM-DD). Defaults to the end of the snapshot.")),
)

var toolGetDay = mcp.NewTool("get_day",
	mcp.WithDescription("Get the merged record for one UTC calendar day: sleep quality and duration plus combined workout fields."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date (YYYY-MM-DD)")),
)

var toolAverageCaloriesLowSleep = mcp.NewTool("average_calories_low_sleep",
	mcp.WithDescription("Average total workout calories over days with under 6 hours of sleep. Errors when no qualifying day exists."),
)

var toolPushDays = mcp.NewTool("push_days",
	mcp.WithDescription("Count of workout-name occurrences containing 'push' (case-insensitive), summed across all days."),
)

var toolMorningWorkouts = mcp.NewTool("morning_workouts",
	mcp.WithDescription("Count of workouts starting before 10:00 UTC, summed across all days."),
)

// --- Tool handlers ---

func (h *handlers) listDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp list_days", "error", err)
		return mcp.NewToolResultError("loading snapshot failed: " + err.Error()), nil
	}

	start := req.GetString("start", "")
	end := req.GetString("end", "")
	if start != "" || end != "" {
		for date := range days {
			if (start != "" && date < start) || (end != "" && date > end) {
				delete(days, date)
			}
		}
	}

	result, err := mcp.NewToolResultJSON(days)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	if _, err := time.Parse(aggregate.DateLayout, date); err != nil {
		return mcp.NewToolResultError("date must be YYYY-MM-DD"), nil
	}

	days, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp get_day", "error", err)
		return mcp.NewToolResultError("loading snapshot failed: " + err.Error()), nil
	}

	day, ok := days[date]
	if !ok {
		return mcp.NewToolResultError("no record for " + date), nil
	}

	result, err := mcp.NewToolResultJSON(day)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) averageCaloriesLowSleep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.evaluateMetric(ctx, "average_calories_low_sleep")
}

func (h *handlers) pushDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.evaluateMetric(ctx, "push_days")
}

func (h *handlers) morningWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.evaluateMetric(ctx, "morning_workouts")
}

func (h *handlers) evaluateMetric(ctx context.Context, name string) (*mcp.CallToolResult, error) {
	days, err := h.ds.Load(ctx)
	if err != nil {
		h.log.Error("mcp metric", "metric", name, "error", err)
		return mcp.NewToolResultError("loading snapshot failed: " + err.Error()), nil
	}

	value, err := metrics.Evaluate(name, days)
	if errors.Is(err, metrics.ErrNoData) {
		return mcp.NewToolResultError("no data for metric " + name), nil
	}
	if err != nil {
		return mcp.NewToolResultError("metric evaluation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]string{"name": name, "value": value})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
