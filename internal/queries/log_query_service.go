package queries

import (
	"context"
	"sort"
	"time"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
	"github.com/vmi98/api-analytics/internal/stores"
)

const (
	SortKeyDate        = "date"
	SortKeyTime        = "time"
	SortKeyMethod      = "method"
	SortKeyIP          = "ip"
	SortKeyStatusCode  = "status_code"
	SortKeyEndpoint    = "endpoint"
	SortKeyProcessTime = "process_time"

	SortAscending  = "asc"
	SortDescending = "desc"
)

// lessFuncs map each sort key to its ascending comparator. "date" compares
// the calendar-day portion only and "time" the time-of-day portion only, so
// within equal keys the stable sort keeps insertion order.
var lessFuncs = map[string]func(a, b *models.RequestLog) bool{
	SortKeyDate: func(a, b *models.RequestLog) bool {
		return a.Day().Before(b.Day())
	},
	SortKeyTime: func(a, b *models.RequestLog) bool {
		return timeOfDay(a.CreatedAt) < timeOfDay(b.CreatedAt)
	},
	SortKeyMethod: func(a, b *models.RequestLog) bool {
		return a.Method < b.Method
	},
	SortKeyIP: func(a, b *models.RequestLog) bool {
		return a.IP < b.IP
	},
	SortKeyStatusCode: func(a, b *models.RequestLog) bool {
		return a.StatusCode < b.StatusCode
	},
	SortKeyEndpoint: func(a, b *models.RequestLog) bool {
		return a.Endpoint < b.Endpoint
	},
	SortKeyProcessTime: func(a, b *models.RequestLog) bool {
		return a.ProcessTime < b.ProcessTime
	},
}

func timeOfDay(t time.Time) time.Duration {
	utc := t.UTC()
	return utc.Sub(utc.Truncate(24 * time.Hour))
}

//go:generate mockgen -source=log_query_service.go -destination=./mocks/log_query_service_mock.go -package=mocks
type LogQueryService interface {
	// Query returns the client's raw records matching filter, ordered by
	// sortBy/sortDir. Empty sortBy orders by full timestamp, newest first.
	Query(ctx context.Context, clientKey string, filter models.LogFilter, sortBy, sortDir string) ([]*models.RequestLog, error)
}

type logQueryService struct {
	apiKeyStore stores.APIKeyStore
	logStore    stores.LogStore
}

func NewLogQueryService(apiKeyStore stores.APIKeyStore, logStore stores.LogStore) LogQueryService {
	return &logQueryService{
		apiKeyStore: apiKeyStore,
		logStore:    logStore,
	}
}

func (s *logQueryService) Query(ctx context.Context, clientKey string, filter models.LogFilter, sortBy, sortDir string) ([]*models.RequestLog, error) {
	logger := loggers.Ctx(ctx)

	if err := filter.Validate(); err != nil {
		metricLogQueryTotal.WithLabelValues(codeInvalidFilter).Inc()
		return nil, errInvalidFilter(err)
	}

	less, err := resolveOrder(sortBy, sortDir)
	if err != nil {
		metricLogQueryTotal.WithLabelValues(codeInvalidSort).Inc()
		return nil, err
	}

	exists, err := s.apiKeyStore.Exists(ctx, clientKey)
	if err != nil {
		return nil, svcerrors.NewInternalError(codeStoreFailed, err)
	}
	if !exists {
		metricLogQueryTotal.WithLabelValues(codeUnknownClient).Inc()
		return nil, errUnknownClient()
	}

	records, err := s.logStore.List(ctx, clientKey, filter)
	if err != nil {
		return nil, svcerrors.NewInternalError(codeStoreFailed, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})

	logger.Debug().
		Int("record_count", len(records)).
		Msg("log query executed")
	metricLogQueryTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return records, nil
}

// resolveOrder picks the comparator for the requested order. The default
// order (newest first by full timestamp) is expressed as a comparator too so
// ties still resolve by insertion order via the stable sort.
func resolveOrder(sortBy, sortDir string) (func(a, b *models.RequestLog) bool, error) {
	switch sortDir {
	case "", SortAscending, SortDescending:
	default:
		return nil, errInvalidSort("sort_dir must be asc or desc")
	}

	if sortBy == "" {
		return func(a, b *models.RequestLog) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}, nil
	}

	less, ok := lessFuncs[sortBy]
	if !ok {
		return nil, errInvalidSort("unknown sort_by key: " + sortBy)
	}
	if sortDir == SortDescending {
		ascending := less
		return func(a, b *models.RequestLog) bool {
			return ascending(b, a)
		}, nil
	}
	return less, nil
}
