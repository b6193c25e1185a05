package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/samims/notification-api/internal/handler"
	customMiddleware "github.com/samims/notification-api/internal/middleware"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/service"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Notifications *handler.NotificationHandler
	Health        *handler.HealthHandler
}

type Options struct {
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter wires the public auth endpoints, the role-protected
// notification API and the operational endpoints. Any other path is denied.
func NewRouter(h Handlers, tokenSvc service.TokenService, opts Options, l *slog.Logger) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(customMiddleware.MetricsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(customMiddleware.Authenticate(tokenSvc, l))

	// Registered before the sub-routers so they inherit the policy.
	r.NotFound(customMiddleware.Deny)
	r.MethodNotAllowed(customMiddleware.Deny)

	// public
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	// protected
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(customMiddleware.RequireRole(model.RoleCustomer, model.RoleProvider, model.RoleBoth))
		r.Post("/", h.Notifications.Create)
		r.Get("/", h.Notifications.List)
		r.Get("/{id}", h.Notifications.GetByID)
		r.Delete("/{id}", h.Notifications.Delete)
		r.Patch("/{id}/view", h.Notifications.MarkViewed)
		r.Put("/{id}/view", h.Notifications.MarkViewed)
		r.Get("/{id}/history", h.Notifications.History)
	})

	// Health & Readiness Routes
	r.Get("/healthz", h.Health.Liveness)
	r.Get("/readyz", h.Health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, opts.ServiceName)
}
