package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	inputCounter metric.Int64Counter
	faultCounter metric.Int64Counter
	errorCounter metric.Int64Counter
	reqHistogram metric.Float64Histogram
	resultGauge  metric.Float64Gauge
)

// InitMetrics registers the OTel instruments for calculator sessions.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	inputCounter, err = meter.Int64Counter("calculator.inputs.total",
		metric.WithDescription("Keys and button actions applied to calculator sessions"),
		metric.WithUnit("{input}"),
	)
	if err != nil {
		return fmt.Errorf("creating input counter: %w", err)
	}

	faultCounter, err = meter.Int64Counter("calculator.faults.total",
		metric.WithDescription("Transitions into the calculator error state"),
		metric.WithUnit("{fault}"),
	)
	if err != nil {
		return fmt.Errorf("creating fault counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	reqHistogram, err = meter.Float64Histogram("calculator.input.duration",
		metric.WithDescription("Time spent applying a batch of inputs to a session in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating input histogram: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The most recent result recorded in any session history"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}

// NewSessionGauge exposes the number of live sessions to Prometheus.
func NewSessionGauge(store *Store) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "calculator",
		Name:      "active_sessions",
		Help:      "Number of live calculator sessions.",
	}, func() float64 {
		return float64(store.Len())
	})
}
