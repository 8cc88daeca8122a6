package ingestors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
	"github.com/vmi98/api-analytics/internal/shared/validators"
	"github.com/vmi98/api-analytics/internal/streams"
)

// nullableValues are IP spellings that normalize to "no IP recorded".
var nullableValues = map[string]struct{}{
	"":     {},
	" ":    {},
	"null": {},
	"NULL": {},
	"None": {},
}

// Observation is one completed-request measurement supplied by the tracking
// middleware. The middleware has already measured wall-clock process time (in
// seconds) and resolved the acting client key; this service only validates,
// normalizes and hands the record off for append.
type Observation struct {
	ClientKey   string  `validate:"required"`
	CreatedAt   string  `validate:"required"` // RFC3339 or naive ISO-8601, naive treated as UTC
	Method      string  `validate:"required,max=200"`
	Endpoint    string  `validate:"required,min=1,max=200"`
	IP          string  `validate:"omitempty,min=7,max=45"`
	ProcessTime float64 `validate:"gte=0"`
	StatusCode  int     `validate:"gte=100,lte=599"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// Record validates and normalizes one observation and queues exactly one
	// log record for append. On validation failure nothing is written.
	Record(ctx context.Context, observation Observation) error
}

type ingestionService struct {
	validate            *validators.Validate
	observationProducer streams.ObservationProducer
}

func NewIngestionService(observationProducer streams.ObservationProducer) IngestionService {
	return &ingestionService{
		validate:            validators.New(),
		observationProducer: observationProducer,
	}
}

func (s *ingestionService) Record(ctx context.Context, observation Observation) error {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started recording observation for endpoint: %s", observation.Endpoint)

	record, err := s.validateObservation(observation)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricObservationRecordedTotal.WithLabelValues(svcErr.Code).Inc()
		}
		return err
	}

	if err := s.observationProducer.Produce(ctx, record); err != nil {
		return errInternalObservationPublisherFailed(err)
	}

	metricObservationRecordedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (s *ingestionService) validateObservation(observation Observation) (*models.RequestLog, error) {
	s.normalizeObservation(&observation)

	if err := s.validate.Struct(&observation); err != nil {
		if ve, ok := err.(validators.ValidationErrors); ok && len(ve) > 0 {
			e := ve[0]
			return nil, errValidationFailed(fmt.Sprintf("%s failed validation on %q", strings.ToLower(e.Field()), e.Tag()), err)
		}
		return nil, errValidationFailed("observation failed validation", err)
	}

	if !models.IsValidMethod(observation.Method) {
		return nil, errValidationFailed(fmt.Sprintf("invalid method: %q", observation.Method), nil)
	}

	createdAt, err := parseTimestamp(observation.CreatedAt)
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("invalid created_at: %q", observation.CreatedAt), err)
	}

	return &models.RequestLog{
		ClientKey:   observation.ClientKey,
		CreatedAt:   createdAt,
		Method:      observation.Method,
		Endpoint:    observation.Endpoint,
		IP:          observation.IP,
		ProcessTime: observation.ProcessTime,
		StatusCode:  observation.StatusCode,
	}, nil
}

func (s *ingestionService) normalizeObservation(observation *Observation) {
	observation.Method = strings.ToUpper(sanitizeString(observation.Method))
	observation.Endpoint = sanitizeString(observation.Endpoint)
	observation.IP = sanitizeString(observation.IP)
	if _, nullable := nullableValues[observation.IP]; nullable {
		observation.IP = ""
	}
}

// naiveTimestampLayouts are accepted timestamp forms without a zone offset.
// Naive timestamps are interpreted as UTC.
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveTimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}

// sanitizeString strips ASCII control characters and trims surrounding
// whitespace.
func sanitizeString(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
