package convert

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	conversionCounter metric.Int64Counter
	errorCounter      metric.Int64Counter
)

// InitMetrics registers the OTel instruments for conversions.
func InitMetrics() error {
	meter := otel.Meter("convert")

	var err error

	conversionCounter, err = meter.Int64Counter("convert.conversions.total",
		metric.WithDescription("Total number of successful conversions"),
		metric.WithUnit("{conversion}"),
	)
	if err != nil {
		return fmt.Errorf("creating conversion counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("convert.errors.total",
		metric.WithDescription("Total number of rejected conversions"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
