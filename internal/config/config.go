// Package config defines the ambient configuration of the sort binary:
// logging and metrics. What to sort and how comes from the command line;
// this package covers everything around it.
//
// Sources are layered, later ones winning:
//
//	defaults < JSON file (--config / SORT_CONFIG_FILE) < environment < flags
//
// Example file:
//
//	{
//	  "logging": { "level": "info" },
//	  "metrics": {
//	    "backend": "pushgateway",
//	    "job": "sort",
//	    "pushgateway_url": "http://localhost:9091",
//	    "datadog": { "addr": "127.0.0.1:8125", "namespace": "sort.", "tags": ["env:dev"] }
//	  }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/maggun1/sort/internal/logging"
)

// Metrics backend names.
const (
	BackendNone        = "none"
	BackendPushgateway = "pushgateway"
	BackendDatadog     = "datadog"
)

// File is the top-level configuration object.
type File struct {
	Logging Logging `json:"logging"`
	Metrics Metrics `json:"metrics"`
}

// Logging configures the process logger.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
}

// Metrics selects and configures the metrics backend.
type Metrics struct {
	// Backend is one of none, pushgateway, datadog.
	Backend string `json:"backend"`

	// Job labels every series and is the Pushgateway grouping key.
	Job string `json:"job"`

	// PushgatewayURL is the Pushgateway base URL.
	PushgatewayURL string `json:"pushgateway_url"`

	Datadog Datadog `json:"datadog"`
}

// Datadog configures the DogStatsD client.
type Datadog struct {
	Addr      string   `json:"addr"`
	Namespace string   `json:"namespace"`
	Tags      []string `json:"tags"`
}

// Defaults returns the configuration used when nothing else is given.
func Defaults() File {
	return File{
		Logging: Logging{Level: logging.DefaultLevel},
		Metrics: Metrics{
			Backend:        BackendNone,
			Job:            "sort",
			PushgatewayURL: "http://localhost:9091",
			Datadog:        Datadog{Addr: "127.0.0.1:8125"},
		},
	}
}

// LoadFile decodes a JSON configuration file. Unknown fields are rejected so
// typos surface instead of being ignored.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var cfg File
	if err := dec.Decode(&cfg); err != nil {
		return File{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// EnvOverlay reads the supported variables from environ (os.Environ form).
//
//	SORT_LOG_LEVEL   logging.level
//	METRICS_BACKEND  metrics.backend
//	PUSHGATEWAY_URL  metrics.pushgateway_url
//	DOGSTATSD_ADDR   metrics.datadog.addr
func EnvOverlay(environ []string) File {
	var out File
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		switch k {
		case "SORT_LOG_LEVEL":
			out.Logging.Level = v
		case "METRICS_BACKEND":
			out.Metrics.Backend = v
		case "PUSHGATEWAY_URL":
			out.Metrics.PushgatewayURL = v
		case "DOGSTATSD_ADDR":
			out.Metrics.Datadog.Addr = v
		}
	}
	return out
}

// Merge returns base with every non-empty field of over applied on top.
func Merge(base, over File) File {
	out := base
	if over.Logging.Level != "" {
		out.Logging.Level = over.Logging.Level
	}
	if over.Metrics.Backend != "" {
		out.Metrics.Backend = over.Metrics.Backend
	}
	if over.Metrics.Job != "" {
		out.Metrics.Job = over.Metrics.Job
	}
	if over.Metrics.PushgatewayURL != "" {
		out.Metrics.PushgatewayURL = over.Metrics.PushgatewayURL
	}
	if over.Metrics.Datadog.Addr != "" {
		out.Metrics.Datadog.Addr = over.Metrics.Datadog.Addr
	}
	if over.Metrics.Datadog.Namespace != "" {
		out.Metrics.Datadog.Namespace = over.Metrics.Datadog.Namespace
	}
	if len(over.Metrics.Datadog.Tags) > 0 {
		out.Metrics.Datadog.Tags = append([]string(nil), over.Metrics.Datadog.Tags...)
	}
	return out
}
