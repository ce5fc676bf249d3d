// Package metrics exposes Prometheus instrumentation for tool invocations
// and thumbnail generation.
package metrics

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool invocation outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeExitFailure = "exit_failure"
	OutcomeLaunchError = "launch_error"
	OutcomeCancelled   = "cancelled"
	OutcomeTimeout     = "timeout"
)

// Thumbnail kinds.
const (
	KindPreview  = "preview"
	KindTimeline = "timeline"
)

var (
	ToolInvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipthumb_tool_invocations_total",
		Help: "Total number of external tool invocations, by tool and outcome",
	}, []string{"tool", "outcome"})

	ToolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clipthumb_tool_duration_seconds",
		Help:    "Wall time of external tool invocations",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"tool"})

	ThumbnailsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipthumb_thumbnails_generated_total",
		Help: "Total number of thumbnails encoded, by kind",
	}, []string{"kind"})

	ThumbnailsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipthumb_thumbnails_skipped_total",
		Help: "Timeline frames dropped because extraction or read failed",
	})
)

// ObserveTool records one external tool invocation.
// The tool label is the binary's base name so configured absolute paths
// do not blow up label cardinality.
func ObserveTool(tool, outcome string, elapsed time.Duration) {
	name := filepath.Base(tool)
	ToolInvocationsTotal.WithLabelValues(name, outcome).Inc()
	ToolDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
