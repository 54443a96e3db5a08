// Package http exposes the local catalog server and the client's admin
// endpoints over chi routers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aman11srivastava/shopping-cart/pkg/health"
	"github.com/aman11srivastava/shopping-cart/pkg/middleware"
)

// NewRouter creates the catalog server router.
func NewRouter(
	serviceName string,
	catalogHandler *CatalogHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	mountOps(r, healthHandler)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/category/{category}", catalogHandler.ListByCategory)
		r.Get("/{id}", catalogHandler.GetProduct)
	})

	return r
}

// NewAdminRouter creates the router for the client's optional admin listener.
func NewAdminRouter(healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	mountOps(r, healthHandler)
	return r
}

func mountOps(r chi.Router, healthHandler *health.Handler) {
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
}
