package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vmi98/api-analytics/internal/aggregators"
	"github.com/vmi98/api-analytics/internal/ingestors"
	"github.com/vmi98/api-analytics/internal/queries"
	"github.com/vmi98/api-analytics/internal/reports"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/shared/metrics"
	"github.com/vmi98/api-analytics/internal/stores"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	ingestionService ingestors.IngestionService,
	aggregationService aggregators.AggregationService,
	logQueryService queries.LogQueryService,
	reportService reports.ReportService,
	apiKeyStore stores.APIKeyStore,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	trackHandler := NewTrackHandler(ingestionService)
	dashboardHandler := NewDashboardHandler(aggregationService)
	reportHandler := NewReportHandler(aggregationService, reportService)
	reportExportHandler := NewReportExportHandler(aggregationService, reportService)
	reportDownloadHandler := NewReportDownloadHandler(reportService)
	rawLogsHandler := NewRawLogsHandler(logQueryService)
	generateKeyHandler := NewGenerateKeyHandler(apiKeyStore)
	rootHandler := NewRootHandler()

	// Open routes
	router.Get("/", errorHandlingAdapter(rootHandler))
	router.Post("/generate_key", errorHandlingAdapter(generateKeyHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	// Telemetry routes, authenticated by client key
	router.Group(func(protected chi.Router) {
		protected.Use(mwAPIKeyAuth(apiKeyStore))
		protected.Post("/track", errorHandlingAdapter(trackHandler))
		protected.Get("/dashboard", errorHandlingAdapter(dashboardHandler))
		protected.Get("/report", errorHandlingAdapter(reportHandler))
		protected.Post("/report/export", errorHandlingAdapter(reportExportHandler))
		protected.Get("/report/export/{file}", errorHandlingAdapter(reportDownloadHandler))
		protected.Get("/raw_logs", errorHandlingAdapter(rawLogsHandler))
	})

	return router
}
