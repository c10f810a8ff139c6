package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"salesetl/internal/config"
	"salesetl/internal/etl"
	"salesetl/internal/logging"
	"salesetl/internal/metrics"
	"salesetl/internal/metrics/datadog"
	"salesetl/internal/metrics/prompush"

	// register all backends with the storage factory.
	_ "salesetl/internal/storage/all"
)

// main loads the configuration, wires logging and metrics, and runs the
// pipeline once.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	s, err := config.LoadFromArgs(fs, getenv, args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	_, closeLog := logging.Setup(stderr, logging.Options{Verbose: s.Verbose, SeqURL: s.SeqURL})
	defer closeLog()

	p := s.Pipeline
	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		slog.Error("configuration is invalid", "config", s.ConfigPath)
		return 1
	}
	if s.Validate {
		slog.Info("configuration is valid", "config", s.ConfigPath)
		return 0
	}

	if flush := setupMetrics(s, p.Job); flush != nil {
		defer flush()
	}

	slog.Debug("pipeline",
		"source", p.Source.Kind,
		"input", p.Source.File.Path,
		"storage", p.Storage.Kind,
		"table", p.Storage.DB.Table,
		"mode", p.Storage.DB.Mode,
	)

	if _, err := etl.Run(ctx, p, stdout); err != nil {
		slog.Error("etl failed", "err", err)
		return 1
	}
	return 0
}

// setupMetrics installs the configured backend and returns its flush
// function, or nil when metrics are disabled.
func setupMetrics(s *config.Settings, job string) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch s.MetricsBackend {
	case "", "none":
		slog.Debug("metrics disabled")
		return nil
	case "prom", "pushgateway":
		url := s.PushgatewayURL
		if url == "" {
			url = "http://localhost:9091"
		}
		b, err = prompush.NewBackend(job, url)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       s.DatadogAddr,
			Namespace:  "salesetl.",
			GlobalTags: []string{"job:" + job},
		})
	default:
		slog.Warn("unknown metrics backend; metrics disabled", "backend", s.MetricsBackend)
		return nil
	}
	if err != nil {
		slog.Warn("metrics backend init failed; using nop", "backend", s.MetricsBackend, "err", err)
		return nil
	}

	slog.Info("metrics enabled", "backend", s.MetricsBackend, "job", job)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			slog.Warn("metrics flush failed", "err", err)
		}
	}
}
