package streams

import (
	"context"

	"github.com/vmi98/api-analytics/internal/events"
	"github.com/vmi98/api-analytics/internal/models"
)

// ObservationProducer publishes one accepted observation onto the partitioned
// queue for asynchronous append.
//
// Partition strategy: the partition key is the client key. The consumer runs
// one worker goroutine per partition, so all records of one client are
// appended by a single writer in acceptance order. That gives Record() the
// required property of never blocking on, or being blocked by, another
// client's ingestion beyond the store's own write path, while keeping
// per-client insertion order deterministic.
//
//go:generate mockgen -source=observation_producer.go -destination=./mocks/observation_producer_mock.go -package=mocks
type ObservationProducer interface {
	Produce(ctx context.Context, record *models.RequestLog) error
}

type observationProducer struct {
	queue *PartitionedQueue[events.RequestObservedEvent]
}

func NewObservationProducer(queue *PartitionedQueue[events.RequestObservedEvent]) ObservationProducer {
	return &observationProducer{
		queue: queue,
	}
}

func (producer *observationProducer) Produce(ctx context.Context, record *models.RequestLog) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	event := events.RequestObservedEvent{
		ClientKey: record.ClientKey,
		Record:    record,
	}

	// Partition by owning client key (single-writer guarantee per client).
	producer.queue.Publish(event.ClientKey, event)
	metricObservationProducedTotal.WithLabelValues(streamRequestObserved).Inc()
	return nil
}
