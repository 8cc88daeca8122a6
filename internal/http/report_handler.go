package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vmi98/api-analytics/internal/aggregators"
	"github.com/vmi98/api-analytics/internal/models"
	"github.com/vmi98/api-analytics/internal/reports"
)

func reportFormatParam(r *http.Request) models.ReportFormat {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return models.FormatStructured
	}
	format, err := models.ParseReportFormat(raw)
	if err != nil {
		// Pass the raw value through so the report service rejects it with
		// its own error taxonomy.
		return models.ReportFormat(raw)
	}
	return format
}

func contentTypeFor(format models.ReportFormat) string {
	if format == models.FormatDocument {
		return "application/pdf"
	}
	return "application/json"
}

type reportHandler struct {
	aggregationService aggregators.AggregationService
	reportService      reports.ReportService
}

func NewReportHandler(aggregationService aggregators.AggregationService, reportService reports.ReportService) AppHttpHandler {
	return &reportHandler{
		aggregationService: aggregationService,
		reportService:      reportService,
	}
}

// Handle processes GET /report requests.
func (h *reportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseLogFilter(r)
	if err != nil {
		return err
	}
	format := reportFormatParam(r)

	result, err := h.aggregationService.Aggregate(r.Context(), clientKeyFromContext(r.Context()), filter)
	if err != nil {
		return err
	}

	rendered, err := h.reportService.Render(r.Context(), result, format)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(rendered)
	return err
}

type reportExportHandler struct {
	aggregationService aggregators.AggregationService
	reportService      reports.ReportService
}

func NewReportExportHandler(aggregationService aggregators.AggregationService, reportService reports.ReportService) AppHttpHandler {
	return &reportExportHandler{
		aggregationService: aggregationService,
		reportService:      reportService,
	}
}

// Handle processes POST /report/export requests.
func (h *reportExportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseLogFilter(r)
	if err != nil {
		return err
	}
	format := reportFormatParam(r)
	clientKey := clientKeyFromContext(r.Context())

	result, err := h.aggregationService.Aggregate(r.Context(), clientKey, filter)
	if err != nil {
		return err
	}

	fileKey, err := h.reportService.Export(r.Context(), clientKey, result, format)
	if err != nil {
		return err
	}

	return writeJSONResponse(w, http.StatusCreated, map[string]string{"file_key": fileKey})
}

type reportDownloadHandler struct {
	reportService reports.ReportService
}

func NewReportDownloadHandler(reportService reports.ReportService) AppHttpHandler {
	return &reportDownloadHandler{
		reportService: reportService,
	}
}

// Handle processes GET /report/export/{file} requests. The path carries the
// file name portion of the export key; the owning client key comes from the
// authenticated request, so a client can only fetch its own exports.
func (h *reportDownloadHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	fileName := chi.URLParam(r, "file")
	if fileName == "" {
		return errBadRequest("missing export file name", nil)
	}

	fileKey := clientKeyFromContext(r.Context()) + "/" + fileName
	reader, err := h.reportService.Open(r.Context(), fileKey)
	if err != nil {
		return err
	}
	defer reader.Close()

	format := models.FormatStructured
	if strings.HasSuffix(fileName, ".pdf") {
		format = models.FormatDocument
	}
	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, err = io.Copy(w, reader)
	return err
}
