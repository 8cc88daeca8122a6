package streams

import (
	"github.com/vmi98/api-analytics/internal/shared/metrics"
)

const codeAppendFailed = "STR_9000"

var (
	streamRequestObserved          = "request_observed"
	metricObservationProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "observation_published_total",
		},
		[]string{"stream_id"},
	)

	metricObservationConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "observation_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
