package cache

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type cacheMetricsCollection struct {
	lookupCount metric.Int64Counter
}

var metrics cacheMetricsCollection

func init() {
	const name = "rollcall/cache"
	meter := otel.Meter(name)

	lookupCount, err := meter.Int64Counter(
		"cache/lookup_count",
		metric.WithDescription("Number of request cache lookups by result"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lookup count metric: %w", err))
	}

	metrics = cacheMetricsCollection{
		lookupCount: lookupCount,
	}
}

func withResult(result lookupResult) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("result", string(result)))
}
