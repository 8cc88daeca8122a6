package aggregators

import (
	"context"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
	"github.com/vmi98/api-analytics/internal/stores"
)

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Aggregate materializes the client's records matching filter and computes
	// the six analytical facets over them. The result reflects the store at
	// one materialization point; records appended afterwards are not included.
	Aggregate(ctx context.Context, clientKey string, filter models.LogFilter) (*models.AggregationResult, error)
}

type aggregationService struct {
	apiKeyStore stores.APIKeyStore
	logStore    stores.LogStore
}

func NewAggregationService(apiKeyStore stores.APIKeyStore, logStore stores.LogStore) AggregationService {
	return &aggregationService{
		apiKeyStore: apiKeyStore,
		logStore:    logStore,
	}
}

func (s *aggregationService) Aggregate(ctx context.Context, clientKey string, filter models.LogFilter) (*models.AggregationResult, error) {
	logger := loggers.Ctx(ctx)

	// Filter consistency is checked before any store access.
	if err := filter.Validate(); err != nil {
		metricAggregationComputedTotal.WithLabelValues(codeInvalidFilter).Inc()
		return nil, errInvalidFilter(err)
	}

	exists, err := s.apiKeyStore.Exists(ctx, clientKey)
	if err != nil {
		return nil, svcerrors.NewInternalError(codeStoreFailed, err)
	}
	if !exists {
		metricAggregationComputedTotal.WithLabelValues(codeUnknownClient).Inc()
		return nil, errUnknownClient()
	}

	records, err := s.logStore.List(ctx, clientKey, filter)
	if err != nil {
		return nil, svcerrors.NewInternalError(codeStoreFailed, err)
	}

	result := buildAggregation(records)

	logger.Debug().
		Int("record_count", len(records)).
		Msg("aggregation computed")
	metricAggregationComputedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}
