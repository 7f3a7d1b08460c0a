// Package metrics records what a sort run did: how long each step took,
// whether it failed, and how many lines went in and out.
//
// Nothing is sent anywhere until a backend from prompush or datadog is
// installed with SetBackend; until then every call is a no-op.
package metrics

import "time"

// Series names shared by all backends.
const (
	stepTotal    = "sort_step_total"
	stepDuration = "sort_step_duration_seconds"
	linesTotal   = "sort_lines_total"
)

// Labels are attached to every sample.
type Labels map[string]string

// Backend receives samples.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records one duration sample, in seconds.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush is called once at exit.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs b. A nil b is ignored.
func SetBackend(b Backend) {
	if b != nil {
		backend = b
	}
}

// Disable drops the installed backend.
func Disable() { backend = nopBackend{} }

func Flush() error { return backend.Flush() }

// RecordStep counts one execution of step and observes its duration.
// Steps are read, transform, order, check and write.
func RecordStep(job, step string, err error, d time.Duration) {
	lbls := Labels{"job": job, "step": step, "status": stepStatus(err)}
	backend.IncCounter(stepTotal, 1, lbls)
	backend.ObserveHistogram(stepDuration, d.Seconds(), lbls)
}

func stepStatus(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// RecordLines adds n lines of kind: read, deduped or written. Zero and
// negative counts are not recorded.
func RecordLines(job, kind string, n int) {
	if n > 0 {
		backend.IncCounter(linesTotal, float64(n), Labels{"job": job, "kind": kind})
	}
}
