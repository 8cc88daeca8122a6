package aggregators

import (
	"github.com/vmi98/api-analytics/internal/shared/metrics"
)

var metricAggregationComputedTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubAggregation,
	Name:      "computed_total",
	Help:      "Total number of aggregation computations requested.",
}, []string{metrics.FieldErrorCode})
