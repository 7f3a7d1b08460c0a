// Package pipeline runs one sort or check over a whole input file.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/maggun1/sort/internal/datasource"
	"github.com/maggun1/sort/internal/datasource/file"
	"github.com/maggun1/sort/internal/keys"
	"github.com/maggun1/sort/internal/metrics"
	"github.com/maggun1/sort/internal/ordering"
	"github.com/maggun1/sort/internal/storage"
	storagefile "github.com/maggun1/sort/internal/storage/file"
	"github.com/maggun1/sort/internal/transformer"
	"github.com/maggun1/sort/internal/transformer/builtin"
)

// Options selects what a run does.
type Options struct {
	// Input is the input file path. The output path is derived from it.
	Input string

	Column keys.Column
	Mode   ordering.Mode

	Reverse              bool
	Unique               bool
	IgnoreTrailingBlanks bool

	// Check reports whether the input is already ordered instead of
	// writing a sorted copy.
	Check bool
}

// Deps are the collaborators of a run. Zero fields get defaults: the local
// file named by Options.Input, the atomic file writer, a discarding logger
// and the job name "sort".
type Deps struct {
	Source datasource.Source
	Sink   storage.Sink
	Logger *slog.Logger
	Job    string
}

// Result describes a finished run.
type Result struct {
	// Checked is set in check mode; Sorted then holds the verdict.
	Checked bool
	Sorted  bool

	// Receipt describes the written output in sort mode.
	Receipt storage.Receipt

	LinesRead int
	Deduped   int
}

// Verdict is the check mode message.
func (r Result) Verdict() string {
	if r.Sorted {
		return "Lines are sorted."
	}
	return "Lines are not sorted."
}

func (d Deps) withDefaults(opts Options) Deps {
	if d.Source == nil {
		d.Source = file.NewLocal(opts.Input)
	}
	if d.Sink == nil {
		d.Sink = storagefile.NewWriter()
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Job == "" {
		d.Job = "sort"
	}
	return d
}

// Run loads every line, optionally trims trailing blanks, and then either
// checks the order or sorts, de-duplicates, reverses and writes the lines.
// Nothing is written in check mode or when any step fails.
func Run(ctx context.Context, opts Options, deps Deps) (Result, error) {
	deps = deps.withDefaults(opts)
	log := deps.Logger.With("component", "pipeline")

	var res Result
	step := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		metrics.RecordStep(deps.Job, name, err, time.Since(start))
		return err
	}

	var lines []string
	err := step("read", func() error {
		var err error
		lines, err = datasource.ReadLines(ctx, deps.Source)
		return err
	})
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	res.LinesRead = len(lines)
	metrics.RecordLines(deps.Job, "read", len(lines))
	log.Debug("loaded input", "path", opts.Input, "lines", len(lines))

	if opts.IgnoreTrailingBlanks {
		_ = step("transform", func() error {
			lines = builtin.TrimTrailing{}.Apply(lines)
			return nil
		})
	}

	strat := ordering.New(opts.Mode, opts.Column)
	log.Debug("ordering", "mode", strat.Mode(), "key", opts.Column, "check", opts.Check)

	if opts.Check {
		var sorted bool
		err := step("check", func() error {
			var err error
			sorted, err = strat.IsSorted(lines, opts.Reverse)
			return err
		})
		if err != nil {
			return res, fmt.Errorf("check %s: %w", opts.Input, err)
		}
		res.Checked, res.Sorted = true, sorted
		return res, nil
	}

	if err := step("order", func() error { return strat.Sort(lines) }); err != nil {
		return res, fmt.Errorf("sort %s: %w", opts.Input, err)
	}

	var post transformer.Chain
	if opts.Unique {
		post = append(post, builtin.DedupAdjacent{})
	}
	if opts.Reverse {
		post = append(post, builtin.Reverse{})
	}
	if len(post) > 0 {
		before := len(lines)
		_ = step("transform", func() error {
			lines = post.Apply(lines)
			return nil
		})
		res.Deduped = before - len(lines)
		metrics.RecordLines(deps.Job, "deduped", res.Deduped)
	}

	out, err := storage.OutputName(opts.Input)
	if err != nil {
		return res, err
	}
	err = step("write", func() error {
		var err error
		res.Receipt, err = deps.Sink.WriteLines(ctx, out, lines)
		return err
	})
	if err != nil {
		return res, err
	}
	metrics.RecordLines(deps.Job, "written", res.Receipt.Lines)
	log.Debug("wrote output",
		"path", res.Receipt.Path,
		"lines", res.Receipt.Lines,
		"size", humanize.Bytes(uint64(res.Receipt.Bytes)),
		"xxh3", fmt.Sprintf("%016x", res.Receipt.Digest),
	)
	return res, nil
}
