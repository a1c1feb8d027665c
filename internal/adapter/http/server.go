package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/waterborne-risk-service/internal/content"
	"github.com/couchcryptid/waterborne-risk-service/internal/domain"
	"github.com/couchcryptid/waterborne-risk-service/internal/observability"
)

// ReportSubmitter accepts a case report and returns its acknowledgement.
type ReportSubmitter interface {
	Submit(ctx context.Context, r domain.CaseReport) (domain.Acknowledgement, error)
}

// EducationSource serves the localized health education reference.
type EducationSource interface {
	All(lang string) (content.Education, error)
	Topic(lang, id string) (content.Topic, error)
}

// Dependencies are the collaborators behind the API routes.
type Dependencies struct {
	Ready             sharedobs.ReadinessChecker
	Reports           ReportSubmitter
	Education         EducationSource
	Metrics           *observability.Metrics
	HealthCenterPhone string
}

// Server exposes the risk assessment API alongside health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the ops routes and the /api/v1 routes.
func NewServer(addr string, deps Dependencies, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", sharedobs.LivenessHandler())
	router.Get("/readyz", sharedobs.ReadinessHandler(deps.Ready))
	router.Handle("/metrics", promhttp.Handler())

	h := &handlers{
		reports:           deps.Reports,
		education:         deps.Education,
		metrics:           deps.Metrics,
		healthCenterPhone: deps.HealthCenterPhone,
		logger:            logger,
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalogs", h.getCatalogs)

		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", h.postAssessment)
			r.Get("/reset", h.getResetAssessment)
		})
		r.Get("/recommendations/{tier}", h.getRecommendations)

		r.Get("/education", h.getEducation)
		r.Get("/education/{topic}", h.getEducationTopic)

		r.Get("/dashboard", h.getDashboard)
		r.Get("/overview", h.getOverview)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/options", h.getReportOptions)
			r.Post("/", h.postReport)
		})
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
