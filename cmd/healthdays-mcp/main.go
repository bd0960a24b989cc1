// Command healthdays-mcp serves the snapshot to MCP clients over stdio.
// With -remote it reads through the HTTP API instead of a local store.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/healthdays/internal/config"
	"github.com/meltforce/healthdays/internal/mcp"
	"github.com/meltforce/healthdays/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	remote := flag.String("remote", "", "base URL of a healthdays-server to read from instead of a local store")
	flag.Parse()

	// stdout is the MCP transport; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		store, err := storage.Open(context.Background(), cfg)
		if err != nil {
			log.Error("failed to open snapshot store", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		ds = store
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
