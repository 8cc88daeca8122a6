package queries

import (
	"github.com/vmi98/api-analytics/internal/shared/metrics"
)

var metricLogQueryTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubQuery,
	Name:      "executed_total",
	Help:      "Total number of raw log queries executed.",
}, []string{metrics.FieldErrorCode})
