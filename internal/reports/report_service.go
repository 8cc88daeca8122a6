package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/shared/filestorages"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/shared/ulid"
)

//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	// Render encodes one aggregation result. The structured encoding is
	// deterministic: the same result always yields the same bytes. On error
	// no partial output is returned.
	Render(ctx context.Context, result *models.AggregationResult, format models.ReportFormat) ([]byte, error)

	// Export renders the result and publishes it under the export root,
	// returning the file key. The write is atomic: a failed render or write
	// leaves no file behind.
	Export(ctx context.Context, clientKey string, result *models.AggregationResult, format models.ReportFormat) (string, error)

	// Open returns the content of a previously exported report by its file
	// key. The caller closes the reader.
	Open(ctx context.Context, fileKey string) (io.ReadCloser, error)
}

type reportService struct {
	chartRenderer ChartRenderer
	exportStorage filestorages.FileStorage
}

func NewReportService(chartRenderer ChartRenderer, exportStorage filestorages.FileStorage) ReportService {
	return &reportService{
		chartRenderer: chartRenderer,
		exportStorage: exportStorage,
	}
}

func (s *reportService) Render(ctx context.Context, result *models.AggregationResult, format models.ReportFormat) ([]byte, error) {
	switch format {
	case models.FormatStructured:
		encoded, err := json.Marshal(result)
		if err != nil {
			metricReportRenderedTotal.WithLabelValues(string(format), codeRenderFailed).Inc()
			return nil, errRenderFailed(err)
		}
		metricReportRenderedTotal.WithLabelValues(string(format), metrics.ValueNoError).Inc()
		return encoded, nil

	case models.FormatDocument:
		document, err := buildDocument(result, s.chartRenderer)
		if err != nil {
			metricReportRenderedTotal.WithLabelValues(string(format), codeRenderFailed).Inc()
			return nil, errRenderFailed(err)
		}
		metricReportRenderedTotal.WithLabelValues(string(format), metrics.ValueNoError).Inc()
		return document, nil

	default:
		metricReportRenderedTotal.WithLabelValues(string(format), codeUnsupportedFormat).Inc()
		return nil, errUnsupportedFormat(format)
	}
}

func (s *reportService) Export(ctx context.Context, clientKey string, result *models.AggregationResult, format models.ReportFormat) (string, error) {
	logger := loggers.Ctx(ctx)

	rendered, err := s.Render(ctx, result, format)
	if err != nil {
		return "", err
	}

	fileKey := fmt.Sprintf("%s/%s.%s", clientKey, ulid.NewULID(), format.Extension())
	putResult, err := s.exportStorage.Put(ctx, fileKey, bytes.NewReader(rendered), filestorages.PutOptions{})
	if err != nil {
		metricReportExportedTotal.WithLabelValues(string(format), codeExportFailed).Inc()
		return "", errExportFailed(err)
	}

	logger.Info().
		Str(loggers.FieldReportFormat, string(format)).
		Str("file_key", putResult.FileKey).
		Msg("report exported")
	metricReportExportedTotal.WithLabelValues(string(format), metrics.ValueNoError).Inc()
	return putResult.FileKey, nil
}

func (s *reportService) Open(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	reader, err := s.exportStorage.Get(ctx, fileKey)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) || errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, errExportNotFound(fileKey)
		}
		return nil, errExportFailed(err)
	}
	return reader, nil
}
