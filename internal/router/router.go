package router

import (
	"net/http"
	"time"

	"teabag/internal/handler"
	"teabag/internal/middleware"
	pkgmiddleware "teabag/pkg/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Team   *handler.TeamHandler
	Notice *handler.NoticeHandler
	Cohort *handler.CohortHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	// Registry backs /metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

func SetupRouter(h Handlers, auth middleware.Authenticator, opts Options) http.Handler {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := pkgmiddleware.NewMetrics(registry)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(pkgmiddleware.LoggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	r.Use(chimiddleware.Timeout(timeout))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/health", h.Health.Health)
	r.Head("/health", h.Health.Health)

	requireAuth := middleware.AuthMiddleware(auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-in", h.Auth.SignIn)
			r.Post("/sign-out", h.Auth.SignOut)
			r.Post("/refresh-tokens", h.Auth.RefreshTokens)
			r.With(requireAuth).Get("/me", h.Auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/cohorts", h.Cohort.ListCohorts)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.Team.ListTeams)
				r.Post("/", h.Team.CreateTeam)
				r.Get("/{id}", h.Team.GetTeam)
				r.Post("/{id}/join", h.Team.JoinTeam)
				r.Post("/{id}/leave", h.Team.LeaveTeam)
				r.Patch("/{id}/publish", h.Team.PublishTeam)
				r.Post("/{id}/disband", h.Team.DisbandTeam)
			})

			r.Route("/notices", func(r chi.Router) {
				r.Post("/", h.Notice.CreateNotice)
				r.Get("/{teamId}", h.Notice.ListNotices)
				r.Put("/{id}", h.Notice.UpdateNotice)
				r.Delete("/{id}", h.Notice.DeleteNotice)
			})
		})

		// Admin-only endpoints
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.AdminMiddleware())

			r.Post("/admin/upload-csv", h.Admin.UploadCSV)
		})
	})

	return r
}
