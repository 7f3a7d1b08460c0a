// Command sort sorts the lines of a file and writes them to sorted_<name>.
//
// Usage:
//
//	sort [-k N] [-n|-M|-h] [-r] [-u] [-b] [-c] filename
//
// The output lands next to the input: "data/in.txt" is written to
// "data/sorted_in.txt", not "sorted_data/in.txt".
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/maggun1/sort/internal/cli"
	"github.com/maggun1/sort/internal/config"
	"github.com/maggun1/sort/internal/logging"
	"github.com/maggun1/sort/internal/metrics"
	"github.com/maggun1/sort/internal/metrics/datadog"
	"github.com/maggun1/sort/internal/metrics/prompush"
	"github.com/maggun1/sort/internal/pipeline"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// .env never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "sort: load .env: %v\n", err)
		return exitUsage
	}

	opt, err := cli.Parse(args)
	if err != nil {
		if cli.IsHelp(err) {
			fmt.Fprint(stdout, err.Error())
			return exitOK
		}
		fmt.Fprintf(stderr, "sort: %v\n", err)
		return exitUsage
	}

	if issues := opt.Issues(); len(issues) > 0 {
		printIssues(stderr, issues)
		if config.HasErrors(issues) {
			return exitUsage
		}
	}

	cfg, err := loadConfig(opt)
	if err != nil {
		fmt.Fprintf(stderr, "sort: %v\n", err)
		return exitUsage
	}
	if issues := config.Validate(cfg); len(issues) > 0 {
		printIssues(stderr, issues)
		if config.HasErrors(issues) {
			return exitUsage
		}
	}

	logger := logging.New(stderr, cfg.Logging.Level)
	defer setupMetrics(cfg.Metrics, logger)()

	res, err := pipeline.Run(context.Background(), pipeline.Options{
		Input:                opt.Args.Filename,
		Column:               opt.KeyColumn(),
		Mode:                 opt.Mode(),
		Reverse:              opt.Reverse,
		Unique:               opt.Unique,
		IgnoreTrailingBlanks: opt.IgnoreTrailing,
		Check:                opt.Check,
	}, pipeline.Deps{
		Logger: logger,
		Job:    cfg.Metrics.Job,
	})
	if err != nil {
		fmt.Fprintf(stderr, "sort: %v\n", err)
		return exitError
	}

	if res.Checked {
		fmt.Fprintln(stdout, res.Verdict())
	}
	return exitOK
}

// loadConfig layers defaults, the config file, the environment and the
// command line, in that order.
func loadConfig(opt *cli.Option) (config.File, error) {
	cfg := config.Defaults()

	path := opt.ConfigFile
	if path == "" {
		path = os.Getenv("SORT_CONFIG_FILE")
	}
	if path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return config.File{}, err
		}
		cfg = config.Merge(cfg, f)
	}

	cfg = config.Merge(cfg, config.EnvOverlay(os.Environ()))
	return config.Merge(cfg, opt.Overlay()), nil
}

func printIssues(w io.Writer, issues []config.Issue) {
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
}

// setupMetrics installs the configured backend and returns the function
// that flushes it at exit. A backend that fails to start leaves metrics
// disabled.
func setupMetrics(m config.Metrics, logger *slog.Logger) func() {
	log := logger.With("component", "metrics")

	var (
		b   metrics.Backend
		err error
	)
	switch m.Backend {
	case config.BackendPushgateway:
		b, err = prompush.NewBackend(m.Job, m.PushgatewayURL)
	case config.BackendDatadog:
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       m.Datadog.Addr,
			Namespace:  m.Datadog.Namespace,
			GlobalTags: m.Datadog.Tags,
		})
	default:
		log.Debug("disabled", "backend", m.Backend)
		metrics.Disable()
		return func() {}
	}
	if err != nil {
		log.Warn("init failed; metrics disabled", "backend", m.Backend, "err", err)
		metrics.Disable()
		return func() {}
	}

	log.Debug("enabled", "backend", m.Backend, "job", m.Job)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("flush error", "err", err)
		}
	}
}
