package events

import (
	"sync"

	"flightboard-service/internal/logging"
	"flightboard-service/internal/metrics"
)

// Observer is a connected client session capable of receiving broadcast
// events. Send must not block the caller; implementations queue or drop.
type Observer interface {
	ID() string
	Send(Event) error
}

// Hub fans events out to every attached observer, best effort. A failed
// send is logged and does not affect delivery to other observers or the
// publisher. Publishes are serialized, so each observer sees events in
// publish order.
type Hub struct {
	mu        sync.Mutex
	observers map[string]Observer
	metrics   *metrics.MetricsRegistry
}

// NewHub creates an empty hub. The metrics registry may be nil in tests.
func NewHub(metricsReg *metrics.MetricsRegistry) *Hub {
	return &Hub{
		observers: make(map[string]Observer),
		metrics:   metricsReg,
	}
}

// Attach registers an observer for future events.
func (h *Hub) Attach(o Observer) {
	h.mu.Lock()
	h.observers[o.ID()] = o
	count := len(h.observers)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ConnectedObservers.Set(float64(count))
	}
	logging.Info("Observer attached", "observer_id", o.ID(), "observers", count)
}

// Detach removes an observer. Events published after Detach returns are
// no longer delivered to it.
func (h *Hub) Detach(id string) {
	h.mu.Lock()
	delete(h.observers, id)
	count := len(h.observers)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ConnectedObservers.Set(float64(count))
	}
	logging.Info("Observer detached", "observer_id", id, "observers", count)
}

// Publish dispatches the event to every attached observer and returns once
// dispatch has been attempted. No observer acknowledgment is awaited.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, o := range h.observers {
		if err := o.Send(event); err != nil {
			logging.Warn("Failed to deliver broadcast event",
				"observer_id", id,
				"event_type", string(event.Type),
				"error", err.Error(),
			)
		}
	}

	if h.metrics != nil {
		h.metrics.BroadcastEventsTotal.WithLabelValues(string(event.Type)).Inc()
	}
}

// Count returns the number of attached observers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}
