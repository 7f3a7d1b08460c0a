package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/maggun1/sort/internal/logging"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path names the offending setting: a dotted config path such as
// "metrics.backend", or a command-line flag such as "-c".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a merged File. It does not mutate it.
func Validate(f File) []Issue {
	var issues []Issue

	if _, err := logging.ParseLevel(f.Logging.Level); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "logging.level",
			Message:  fmt.Sprintf("unknown level %q; use debug, info, warn or error", f.Logging.Level),
		})
	}

	issues = append(issues, validateMetrics(f.Metrics)...)
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case BackendNone, "":
		return nil

	case BackendPushgateway:
		u, err := url.Parse(m.PushgatewayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  fmt.Sprintf("pushgateway backend needs an absolute URL, got %q", m.PushgatewayURL),
			})
		}

	case BackendDatadog:
		if strings.TrimSpace(m.Datadog.Addr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.datadog.addr",
				Message:  "datadog backend needs a DogStatsD address",
			})
		}

	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; use none, pushgateway or datadog", m.Backend),
		})
		return issues
	}

	if strings.TrimSpace(m.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.job",
			Message:  "job is empty; the backend default is used",
		})
	}
	return issues
}
