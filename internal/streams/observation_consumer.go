package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/vmi98/api-analytics/internal/events"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
	"github.com/vmi98/api-analytics/internal/shared/ulid"
	"github.com/vmi98/api-analytics/internal/stores"
)

//go:generate mockgen -source=observation_consumer.go -destination=./mocks/observation_consumer_mock.go -package=mocks
type ObservationConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type observationConsumer struct {
	queue    *PartitionedQueue[events.RequestObservedEvent]
	logStore stores.LogStore

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewObservationConsumer(queue *PartitionedQueue[events.RequestObservedEvent], logStore stores.LogStore, logger loggers.Logger) ObservationConsumer {
	return &observationConsumer{
		queue:    queue,
		logStore: logStore,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for one set of client keys.
func (consumer *observationConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *observationConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *observationConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.RequestObservedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event := <-ch:
			consumer.handleEvent(ctx, partitionIndex, event)
		}
	}
}

func (consumer *observationConsumer) handleEvent(ctx context.Context, partitionIndex int, event events.RequestObservedEvent) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("consumer panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricObservationConsumedTotal.WithLabelValues(streamRequestObserved, svcErr.Code).Inc()
		}
	}()

	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(ctx)

	if err := consumer.logStore.Append(ctx, event.Record); err != nil {
		loggers.Ctx(ctx).Error().
			Err(err).
			Str(loggers.FieldClientKey, event.ClientKey).
			Msg("failed to append request log record")
		metricObservationConsumedTotal.WithLabelValues(streamRequestObserved, codeAppendFailed).Inc()
		return
	}

	metricObservationConsumedTotal.WithLabelValues(streamRequestObserved, metrics.ValueNoError).Inc()
}
