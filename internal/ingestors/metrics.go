package ingestors

import (
	"github.com/vmi98/api-analytics/internal/shared/metrics"
)

var metricObservationRecordedTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubIngestion,
	Name:      "observation_recorded_total",
	Help:      "Total number of observations submitted for recording.",
}, []string{metrics.FieldErrorCode})
