package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"flightboard-service/internal/api"
	"flightboard-service/internal/config"
	"flightboard-service/internal/events"
	"flightboard-service/internal/metrics"
	"flightboard-service/internal/middleware"
	"flightboard-service/internal/services"
)

// RegisterRoutes builds the chi router for the flight board API.
func RegisterRoutes(cfg *config.Config, gdb *gorm.DB, fltSvc *services.FlightService, hub *events.Hub, metricsReg *metrics.MetricsRegistry, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(gdb, upSince))
	r.Handle("/metrics", promhttp.Handler())

	// WebSocket endpoint stays outside the metrics middleware; the
	// recorder does not support hijacking the connection.
	r.Get("/ws/board", api.BoardSocketHandler(hub, metricsReg, cfg.CORSOrigin, cfg.ObserverBuffer))

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))

		v1.Get("/flights", api.ListFlightsHandler(fltSvc))
		v1.Get("/flights/search", api.SearchFlightsHandler(fltSvc))
		v1.Get("/flights/destinations", api.DestinationsHandler(fltSvc))

		v1.Group(func(mutating chi.Router) {
			mutating.Use(middleware.RateLimitMiddleware)
			mutating.Post("/flights", api.AddFlightHandler(fltSvc))
			mutating.Delete("/flights/{id}", api.DeleteFlightHandler(fltSvc))
		})
	})

	return r
}
