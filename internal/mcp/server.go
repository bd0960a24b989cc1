// Package mcp exposes the day snapshot and its metrics to MCP clients over
// stdio. Tools read through the DataSource interface, so the same handlers
// serve a local snapshot store or a remote HTTP API.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HealthDays", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("HealthDays aggregated health-data server. Query per-day sleep and workout records and derived metrics. Days are UTC calendar days keyed YYYY-MM-DD."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListDays, Handler: h.listDays},
		server.ServerTool{Tool: toolGetDay, Handler: h.getDay},
		server.ServerTool{Tool: toolAverageCaloriesLowSleep, Handler: h.averageCaloriesLowSleep},
		server.ServerTool{Tool: toolPushDays, Handler: h.pushDays},
		server.ServerTool{Tool: toolMorningWorkouts, Handler: h.morningWorkouts},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDays, Handler: h.daysResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resDays = mcp.NewResource(
	"healthdays://days",
	"Day Records",
	mcp.WithResourceDescription("The full snapshot of merged per-day sleep and workout records, keyed by UTC date"),
	mcp.WithMIMEType("application/json"),
)
