package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/vmi98/api-analytics/internal/aggregators"
	"github.com/vmi98/api-analytics/internal/events"
	internalhttp "github.com/vmi98/api-analytics/internal/http"
	"github.com/vmi98/api-analytics/internal/ingestors"
	"github.com/vmi98/api-analytics/internal/queries"
	"github.com/vmi98/api-analytics/internal/reports"
	"github.com/vmi98/api-analytics/internal/shared/configs"
	"github.com/vmi98/api-analytics/internal/shared/filestorages"
	"github.com/vmi98/api-analytics/internal/shared/loggers"
	"github.com/vmi98/api-analytics/internal/stores"
	"github.com/vmi98/api-analytics/internal/streams"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	observationConsumer streams.ObservationConsumer
	sqliteDB            *sql.DB
	backgroundCtx       context.Context
	backgroundCancel    context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "api-analytics").
		Logger()

	// Initialize stores per configured driver
	var (
		logStore    stores.LogStore
		apiKeyStore stores.APIKeyStore
		sqliteDB    *sql.DB
	)
	switch config.Storage.Driver {
	case "sqlite":
		sqliteDB, err = stores.OpenSQLite(config.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logStore = stores.NewSQLiteLogStore(sqliteDB)
		apiKeyStore = stores.NewSQLiteAPIKeyStore(sqliteDB)
	case "memory":
		logStore = stores.NewMemoryLogStore()
		apiKeyStore = stores.NewMemoryAPIKeyStore()
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", config.Storage.Driver)
	}

	// Initialize report export storage
	exportStorage, err := filestorages.NewFileStorage(config.Reports.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export storage: %w", err)
	}

	// Initialize ingestion stream
	observationQueue := streams.NewPartitionedQueueSized[events.RequestObservedEvent](
		config.Stream.Partitions,
		config.Stream.Buffer,
	)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	observationConsumer := streams.NewObservationConsumer(observationQueue, logStore, consumerLogger)
	observationProducer := streams.NewObservationProducer(observationQueue)

	// Initialize services
	ingestionService := ingestors.NewIngestionService(observationProducer)
	aggregationService := aggregators.NewAggregationService(apiKeyStore, logStore)
	logQueryService := queries.NewLogQueryService(apiKeyStore, logStore)
	reportService := reports.NewReportService(reports.NewChartRenderer(), exportStorage)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(
		ingestionService,
		aggregationService,
		logQueryService,
		reportService,
		apiKeyStore,
		httpLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:              config,
		appLogger:           appLogger,
		server:              server,
		observationConsumer: observationConsumer,
		sqliteDB:            sqliteDB,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting api-analytics service on port %d (log_level=%s, storage_driver=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Driver)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.observationConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background consumers cancelled")
	}

	// 3) Wait for background consumers to finish
	app.observationConsumer.Stop()
	app.appLogger.Info().Msg("Background consumers stopped")

	// 4) Close the store after the consumer workers have stopped
	if app.sqliteDB != nil {
		if err := app.sqliteDB.Close(); err != nil {
			return fmt.Errorf("sqlite close failed: %w", err)
		}
		app.appLogger.Info().Msg("Store closed")
	}

	return nil
}
