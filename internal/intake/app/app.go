package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/blob/drivers/cloudinary"
	"github.com/yasohm/formulaire/internal/intake/blob/drivers/disk"
	"github.com/yasohm/formulaire/internal/intake/blob/drivers/gcs"
	httpapi "github.com/yasohm/formulaire/internal/intake/http"
	"github.com/yasohm/formulaire/internal/intake/metrics"
	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/internal/intake/store/drivers/memory"
	"github.com/yasohm/formulaire/internal/intake/store/drivers/postgres"
	"github.com/yasohm/formulaire/internal/intake/store/drivers/sqlite"
	"github.com/yasohm/formulaire/pkg/formx"
	"github.com/yasohm/formulaire/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	startupTimeout = 15 * time.Second
)

// Application encapsulates the intake service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	blobs     blob.Store
	uploadDir string // set only for the disk driver
	registry  *prometheus.Registry
	metrics   *metrics.Metrics

	// Services
	intakeService *service.IntakeService
	reportService *service.ReportService
	exportService *service.ExportService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "formulaire",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	app.initMetrics()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initBlobs(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("formulaire starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
		"blobs", app.cfg.BlobDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down formulaire...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("formulaire stopped")
	return nil
}

func (app *Application) closeBackends() error {
	if c, ok := app.blobs.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Error("error closing blob store", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initMetrics sets up a private registry so tests can build several
// applications in one process.
func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)
}

// initDatabase opens the configured registration store and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.StoreDriver {
	case StoreMemory:
		db = memory.NewStore()
		app.logger.Warn("registrations are kept in memory and will be lost on restart")
	case StorePostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL,
			postgres.WithPool(10, 5, 30*time.Minute),
		)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database ready", "driver", app.cfg.StoreDriver)
	return nil
}

// initBlobs opens the configured file storage.
func (app *Application) initBlobs(ctx context.Context) error {
	switch app.cfg.BlobDriver {
	case BlobCloudinary:
		s, err := cloudinary.New(cloudinary.Config{
			URL:       app.cfg.CloudinaryURL,
			CloudName: app.cfg.CloudinaryCloudName,
			APIKey:    app.cfg.CloudinaryAPIKey,
			APISecret: app.cfg.CloudinaryAPISecret,
			Folder:    app.cfg.CloudinaryFolder,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize cloudinary: %w", err)
		}
		app.blobs = s
	case BlobGCS:
		s, err := gcs.New(ctx, gcs.Config{
			Bucket:          app.cfg.GCSBucket,
			CredentialsFile: app.cfg.GCSCredentialsFile,
			PublicHost:      app.cfg.GCSPublicHost,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize gcs: %w", err)
		}
		app.blobs = s
	default:
		s, err := disk.New(app.cfg.UploadDir, app.cfg.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize upload directory: %w", err)
		}
		app.blobs = s
		app.uploadDir = s.Dir()
	}

	app.logger.Info("file storage ready", "driver", app.cfg.BlobDriver)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	loc, err := time.LoadLocation(app.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	app.intakeService = &service.IntakeService{
		Store:       app.db,
		Blobs:       app.blobs,
		Metrics:     app.metrics,
		MaxFileSize: app.cfg.MaxFileSize,
	}
	app.reportService = &service.ReportService{
		Store:   app.db,
		Blobs:   app.blobs,
		Metrics: app.metrics,
	}
	app.exportService = &service.ExportService{
		Store:    app.db,
		Location: loc,
	}
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.blobs,
		app.logger,
	)

	// Wire services to router
	router.IntakeService = app.intakeService
	router.ReportService = app.reportService
	router.ExportService = app.exportService
	router.Parser = formx.New(
		formx.WithMaxFileSize(app.cfg.MaxFileSize),
		formx.WithTimeout(app.cfg.ParseTimeout),
	)
	router.Metrics = app.metrics
	router.MetricsHandler = promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})
	router.UploadDir = app.uploadDir // empty unless the disk driver is used
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
