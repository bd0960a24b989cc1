// Command healthdays runs the aggregation pipeline once and prints a single
// metric. Logging goes to stderr so stdout carries only the metric value.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/meltforce/healthdays/internal/config"
	"github.com/meltforce/healthdays/internal/metrics"
	"github.com/meltforce/healthdays/internal/pipeline"
	"github.com/meltforce/healthdays/internal/storage"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: healthdays [-config config.yaml] <metric>\n")
	fmt.Fprintf(os.Stderr, "Metrics: %s\n", strings.Join(metrics.Names, ", "))
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	flag.Usage = usage
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	metric := flag.Arg(0)

	// Reject unknown metrics before touching any input file.
	if !slices.Contains(metrics.Names, metric) {
		fmt.Fprintf(os.Stderr, "unknown metric %q\n", metric)
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.Snapshot.Backend == "postgres" {
		if err := storage.RunMigrations(cfg.Database.DSN(), "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	days, _, err := pipeline.New(cfg, store, log).Refresh(ctx)
	if err != nil {
		log.Error("aggregation failed", "error", err)
		os.Exit(1)
	}

	value, err := metrics.Evaluate(metric, days)
	if err != nil {
		log.Error("metric evaluation failed", "metric", metric, "error", err)
		os.Exit(1)
	}

	fmt.Println(value)
}
