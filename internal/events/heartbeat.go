package events

import (
	"context"
	"time"

	"flightboard-service/internal/logging"
)

// HeartbeatBroadcaster publishes a FlightsUpdated event on a fixed
// interval, independent of mutation activity. Observers that missed a
// point event use it as a prompt to re-fetch full board state.
type HeartbeatBroadcaster struct {
	hub      *Hub
	interval time.Duration
}

func NewHeartbeatBroadcaster(hub *Hub, interval time.Duration) *HeartbeatBroadcaster {
	if interval <= 0 {
		interval = time.Minute
	}
	return &HeartbeatBroadcaster{hub: hub, interval: interval}
}

// Run ticks until ctx is cancelled. The tick itself is the cancellation
// point; Run returns within one interval of cancellation.
func (b *HeartbeatBroadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	logging.Info("Heartbeat broadcaster started", "interval", b.interval.String())

	for {
		select {
		case <-ticker.C:
			b.hub.Publish(Heartbeat())
			logging.Debug("Heartbeat published", "observers", b.hub.Count())
		case <-ctx.Done():
			logging.Info("Heartbeat broadcaster shutting down")
			return
		}
	}
}
