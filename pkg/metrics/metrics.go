// Package metrics records per-run counters through OpenTelemetry and exports
// them in the Prometheus text format, suitable for the node_exporter textfile
// collector.
package metrics

import (
	"context"
	"fmt"
	"skipmark/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "skipmark"

// line results used as the "result" attribute of the lines counter.
const (
	ResultMarked        = "marked"
	ResultAlreadyMarked = "already_marked"
	ResultPassed        = "passed"
)

// Recorder collects run metrics into its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	runs     metric.Int64Counter
	lines    metric.Int64Counter
	keys     metric.Int64Gauge
	duration metric.Float64Histogram
}

// New creates a Recorder backed by a fresh registry, so repeated runs in one
// process never collide on registration.
func New() (*Recorder, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := provider.Meter(meterName)

	r := &Recorder{registry: registry, provider: provider}

	if r.runs, err = meter.Int64Counter("skipmark.runs",
		metric.WithDescription("Marking runs by outcome.")); err != nil {
		return nil, fmt.Errorf("could not create runs counter: %w", err)
	}
	if r.lines, err = meter.Int64Counter("skipmark.lines",
		metric.WithDescription("Source lines processed by result.")); err != nil {
		return nil, fmt.Errorf("could not create lines counter: %w", err)
	}
	if r.keys, err = meter.Int64Gauge("skipmark.reference.keys",
		metric.WithDescription("Distinct keys in the loaded reference set.")); err != nil {
		return nil, fmt.Errorf("could not create keys gauge: %w", err)
	}
	if r.duration, err = meter.Float64Histogram("skipmark.run.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Wall time of a marking run."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return r, nil
}

// Record adds the outcome of one run. A nil report counts as a failed run.
func (r *Recorder) Record(ctx context.Context, report *domain.Report) {
	if report == nil {
		r.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failure")))

		return
	}

	mode := attribute.String("mode", string(report.Destination.Mode))
	r.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success"), mode))

	for result, n := range map[string]int{
		ResultMarked:        report.Marked,
		ResultAlreadyMarked: report.AlreadyMarked,
		ResultPassed:        report.Passed,
	} {
		r.lines.Add(ctx, int64(n), metric.WithAttributes(attribute.String("result", result)))
	}
	r.keys.Record(ctx, int64(report.ReferenceKeys))
	r.duration.Record(ctx, report.Duration.Seconds(), metric.WithAttributes(mode))
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes every collected metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown releases the meter provider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}
