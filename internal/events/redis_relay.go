package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"flightboard-service/internal/logging"
)

var errRelayBufferFull = errors.New("relay queue full, event dropped")

// RedisRelay is an observer that republishes board events as JSON on a
// Redis channel, so sibling instances and external consumers see
// mutations from this one. Send enqueues without blocking; a pump
// goroutine publishes in order. Delivery is best effort like any other
// observer.
type RedisRelay struct {
	client  *redis.Client
	channel string
	queue   chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewRedisRelay(addr, channel string) *RedisRelay {
	r := &RedisRelay{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
		queue:   make(chan Event, 64),
		done:    make(chan struct{}),
	}
	go r.pump()
	return r
}

func (r *RedisRelay) ID() string {
	return "redis-relay:" + r.channel
}

func (r *RedisRelay) Send(event Event) error {
	select {
	case r.queue <- event:
		return nil
	default:
		return errRelayBufferFull
	}
}

func (r *RedisRelay) pump() {
	for {
		select {
		case event := <-r.queue:
			payload, err := json.Marshal(event)
			if err != nil {
				logging.Warn("Failed to encode relay event", "error", err.Error())
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
				logging.Warn("Failed to relay event to Redis",
					"channel", r.channel,
					"event_type", string(event.Type),
					"error", err.Error(),
				)
			}
			cancel()
		case <-r.done:
			return
		}
	}
}

// Ping verifies the Redis connection at startup.
func (r *RedisRelay) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRelay) Close() error {
	r.closeOnce.Do(func() { close(r.done) })
	return r.client.Close()
}
