package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight board service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Board Metrics
	FlightsCreatedTotal  prometheus.Counter
	FlightsDeletedTotal  prometheus.Counter
	BroadcastEventsTotal prometheus.CounterVec
	BroadcastDropsTotal  prometheus.Counter
	ConnectedObservers   prometheus.Gauge
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		FlightsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightboard_flights_created_total",
				Help: "Total flights created since startup",
			},
		),
		FlightsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightboard_flights_deleted_total",
				Help: "Total flights deleted since startup",
			},
		),
		BroadcastEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightboard_broadcast_events_total",
				Help: "Broadcast events published to the hub by event type",
			},
			[]string{"type"},
		),
		BroadcastDropsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "flightboard_broadcast_drops_total",
				Help: "Events dropped because an observer's buffer was full",
			},
		),
		ConnectedObservers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "flightboard_connected_observers",
				Help: "Observers currently attached to the broadcast hub",
			},
		),
	}
}
