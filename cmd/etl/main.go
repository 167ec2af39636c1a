package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"playeretl/internal/config"
	"playeretl/internal/etl"
	"playeretl/internal/logging"
	"playeretl/internal/metrics"
	"playeretl/internal/metrics/datadog"
	"playeretl/internal/metrics/prompush"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "playeretl/internal/storage/all"
)

// main is the entry point for the ETL binary. It loads the pipeline config,
// optionally initializes a metrics backend, and replaces the player table.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath        string
		metricsBackend string
		pushGatewayURL string
		validate       bool
		verbose        bool
	)
	fs.StringVar(&cfgPath, "config", "", "pipeline config path (.json, .yaml); empty uses the built-in defaults")
	fs.StringVar(&metricsBackend, "metrics-backend", "", "metrics backend (none, prometheus, datadog); overrides the config")
	fs.StringVar(&pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL; overrides the config")
	fs.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if metricsBackend != "" {
		p.Metrics.Backend = metricsBackend
	}
	if pushGatewayURL != "" {
		p.Metrics.PushgatewayURL = pushGatewayURL
	}
	if verbose {
		p.Log.Level = "debug"
	}

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fmt.Fprintf(stderr, "configuration is invalid: %s\n", describe(cfgPath))
		return 1
	}
	if validate {
		fmt.Fprintf(stdout, "configuration is valid: %s\n", describe(cfgPath))
		return 0
	}

	log, err := logging.New(p.Log.Level, p.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if flush := setupMetrics(p, log); flush != nil {
		defer flush()
	}

	log.Debug("pipeline",
		zap.String("source", p.Source.File.Path),
		zap.String("parser", p.Parser.Kind),
		zap.String("storage", p.Storage.Kind),
		zap.String("table", p.Storage.DB.Table),
	)

	start := time.Now()
	res, err := etl.Run(ctx, p, log)
	if err != nil {
		log.Error("run failed", zap.String("run_id", res.RunID), zap.Error(err))
		fmt.Fprintf(stderr, "etl: %v\n", err)
		return 1
	}
	log.Debug("completed", zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))

	fmt.Fprintf(stdout, "Loaded %d records into '%s'\n", res.Loaded, res.Table)
	return 0
}

// setupMetrics installs the backend named by p.Metrics and returns the flush
// hook, or nil when metrics stay disabled. A backend that fails to start is
// logged and replaced by the no-op backend.
func setupMetrics(p config.Pipeline, log *zap.Logger) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch p.Metrics.Backend {
	case "", "none":
		log.Debug("metrics disabled")
		return nil
	case "prometheus":
		b, err = prompush.NewBackend(p.Job, p.Metrics.PushgatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       p.Metrics.DatadogAddr,
			GlobalTags: []string{"job:" + p.Job},
		})
	default:
		log.Warn("unknown metrics backend; metrics disabled", zap.String("backend", p.Metrics.Backend))
		return nil
	}
	if err != nil {
		log.Warn("metrics backend unavailable; using nop", zap.String("backend", p.Metrics.Backend), zap.Error(err))
		return nil
	}
	log.Info("metrics enabled", zap.String("backend", p.Metrics.Backend), zap.String("job", p.Job))
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics flush", zap.Error(err))
		}
		metrics.SetBackend(metrics.Nop())
	}
}

func describe(cfgPath string) string {
	if cfgPath == "" {
		return "(defaults)"
	}
	return cfgPath
}
