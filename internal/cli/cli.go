// Package cli parses the sort command line.
package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/maggun1/sort/internal/config"
	"github.com/maggun1/sort/internal/keys"
	"github.com/maggun1/sort/internal/ordering"
)

// Option defines command line options.
type Option struct {
	Column         string `short:"k" description:"sort by the Nth whitespace-separated column (1-based)" value-name:"N" default:"1"`
	Numeric        bool   `short:"n" description:"compare by numeric value"`
	Reverse        bool   `short:"r" description:"reverse the result"`
	Unique         bool   `short:"u" description:"drop adjacent duplicate lines after sorting"`
	Month          bool   `short:"M" description:"compare by month name (Jan < ... < Dec)"`
	IgnoreTrailing bool   `short:"b" description:"ignore trailing blanks"`
	Check          bool   `short:"c" description:"check whether the input is sorted"`
	Suffix         bool   `short:"h" description:"compare human-readable sizes (2K, 1M, 3G)"`

	ConfigFile     string `long:"config" description:"JSON configuration file" value-name:"PATH"`
	MetricsBackend string `long:"metrics-backend" description:"metrics backend" choice:"none" choice:"pushgateway" choice:"datadog"`
	PushgatewayURL string `long:"pushgateway-url" description:"Pushgateway base URL" value-name:"URL"`
	StatsdAddr     string `long:"statsd-addr" description:"DogStatsD address" value-name:"ADDR"`
	Verbose        bool   `short:"v" long:"verbose" description:"debug logging"`
	Help           bool   `long:"help" description:"show this help message"`

	Args struct {
		Filename string `positional-arg-name:"filename"`
	} `positional-args:"yes"`
}

// Parse returns parsed command-line flags in Option struct. args excludes
// the program name.
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.PassDoubleDash)
	parser.Name = "sort"
	parser.Usage = "[OPTIONS] filename"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	if opt.Help {
		var buf bytes.Buffer
		parser.WriteHelp(&buf)
		return nil, &flags.Error{Type: flags.ErrHelp, Message: buf.String()}
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	return opt, nil
}

// IsHelp reports whether err carries the --help text.
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}

// Issues checks the flag combinations. The -c rule is kept exactly: it
// needs -M, -h and -n together, which the exclusivity rules forbid.
func (o *Option) Issues() []config.Issue {
	var issues []config.Issue
	add := func(path, msg string) {
		issues = append(issues, config.Issue{Severity: config.SeverityError, Path: path, Message: msg})
	}

	if o.Args.Filename == "" {
		add("filename", "an input file is required")
	}
	if o.Numeric && o.Month {
		add("-n", "cannot be combined with -M")
	}
	if o.Numeric && o.Suffix {
		add("-n", "cannot be combined with -h")
	}
	if o.Month && o.Suffix {
		add("-M", "cannot be combined with -h")
	}
	if o.Check && !(o.Month && o.Suffix && o.Numeric) {
		add("-c", "requires -M, -h and -n")
	}
	return issues
}

// Mode returns the ordering mode selected by -n, -M and -h.
func (o *Option) Mode() ordering.Mode {
	return ordering.ModeFromFlags(o.Numeric, o.Month, o.Suffix)
}

// KeyColumn returns the -k column. Values that are not positive integers
// select the whole line.
func (o *Option) KeyColumn() keys.Column {
	return keys.ParseColumn(o.Column)
}

// Overlay returns the ambient settings given on the command line, for
// merging over file and environment configuration.
func (o *Option) Overlay() config.File {
	var f config.File
	if o.Verbose {
		f.Logging.Level = "debug"
	}
	f.Metrics.Backend = o.MetricsBackend
	f.Metrics.PushgatewayURL = o.PushgatewayURL
	f.Metrics.Datadog.Addr = o.StatsdAddr
	return f
}
