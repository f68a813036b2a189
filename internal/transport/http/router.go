package http

import (
	"net/http"

	"github.com/employee-api/internal/application/employee"
	"github.com/employee-api/internal/config"
	"github.com/employee-api/internal/transport/http/handler"
	appmiddleware "github.com/employee-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the application router. The admission order is fixed:
// the exception boundary wraps everything, then HTTPS enforcement, CORS,
// anti-forgery token issuance and the global rate limiter run before any
// route dispatch. Mutating routes additionally pass the strict rate limit
// policy and anti-forgery validation, so rejected traffic never reaches the
// store or the event publisher.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	log := deps.Logger
	norm := appmiddleware.NewNormalizer(log)

	globalRL := appmiddleware.NewFixedWindowLimiter("global", cfg.GlobalRateLimit, cfg.RateLimitWindow)
	strictRL := appmiddleware.NewFixedWindowLimiter("strict", cfg.StrictRateLimit, cfg.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(norm.Recover)
	r.Use(appmiddleware.RequireHTTPS(cfg.HTTPSRedirect))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appmiddleware.CSRFHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(appmiddleware.CSRFIssue)
	r.Use(appmiddleware.Metrics)
	r.Use(globalRL.Limit)

	svc := employee.NewService(deps.EmployeeRepo, deps.Publisher, log)
	employeeH := handler.NewEmployeeHandler(svc, log)
	healthH := handler.NewHealthHandler()

	r.Route("/api/employee", func(r chi.Router) {
		r.Get("/", norm.Handle(employeeH.List))
		r.Get("/{id}", norm.Handle(employeeH.Get))

		// Mutating routes carry the strict policy and anti-forgery validation.
		r.Group(func(r chi.Router) {
			r.Use(strictRL.Limit)
			r.Use(appmiddleware.CSRFValidate)

			r.Post("/create", norm.Handle(employeeH.Create))
			r.Put("/update/{id}", norm.Handle(employeeH.Update))
			r.Delete("/delete/{id}", norm.Handle(employeeH.Delete))
		})
	})

	r.Get("/health-check/ping", healthH.Ping)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
