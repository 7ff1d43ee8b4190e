package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yasohm/formulaire/internal/intake/blob"
	"github.com/yasohm/formulaire/internal/intake/metrics"
	"github.com/yasohm/formulaire/internal/intake/service"
	"github.com/yasohm/formulaire/internal/intake/store"
	"github.com/yasohm/formulaire/pkg/formx"
	"github.com/yasohm/formulaire/pkg/httpx"
	"github.com/yasohm/formulaire/pkg/slogx"

	_ "github.com/yasohm/formulaire/api/formulaire" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	blobs blob.Store

	IntakeService *service.IntakeService
	ReportService *service.ReportService
	ExportService *service.ExportService
	Parser        *formx.Parser
	Metrics       *metrics.Metrics

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler

	// UploadDir is served under /uploads/ when set (disk blob driver only).
	UploadDir string

	// Now defaults to time.Now.
	Now func() time.Time
}

func NewRouter(
	buildVersion string,
	st store.Store,
	blobs blob.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		blobs:        blobs,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIntake()
	r.registerReports()
	r.registerUploads()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Formulaire Registration Intake API
//	@version		0.1.0
//	@description	Accepts registration forms with an identity photo and a school certificate,
//	@description	and exposes the listing, deletion, statistics and spreadsheet export used by the admin view.
//	@description
//	@description	Every JSON answer carries a success flag. Messages are localized in Arabic.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle mounts h on path and on its /api alias. Every form route is open to
// any origin and answers OPTIONS itself.
func (r *Router) handle(path string, methods httpx.Methods) {
	h := httpx.Chain(methods, httpx.CORS(methods.Names()...))
	r.Mux.Handle(path, h)
	r.Mux.Handle("/api"+path, h)
}

func (r *Router) registerIntake() {
	h := &RegisterHandler{
		IntakeService: r.IntakeService,
		Parser:        r.Parser,
		Metrics:       r.Metrics,
	}

	r.handle("/register", httpx.Methods{
		http.MethodPost: h,
	})
}

func (r *Router) registerReports() {
	regs := &RegistrationsHandler{ReportService: r.ReportService}
	stats := &StatsHandler{ReportService: r.ReportService, Now: r.now}
	export := &ExportHandler{ExportService: r.ExportService, Now: r.now}

	r.handle("/registrations", httpx.Methods{
		http.MethodGet:    http.HandlerFunc(regs.HandleList),
		http.MethodDelete: http.HandlerFunc(regs.HandleDelete),
	})
	r.handle("/stats", httpx.Methods{
		http.MethodGet: stats,
	})
	r.handle("/export-excel", httpx.Methods{
		http.MethodGet: export,
	})
}

func (r *Router) registerUploads() {
	if r.UploadDir == "" {
		return
	}
	files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadDir)))
	r.Mux.Handle("GET /uploads/", files)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.blobs))

	if r.MetricsHandler != nil {
		r.Mux.Handle("GET /metrics", r.MetricsHandler)
	}
}

func (r *Router) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
