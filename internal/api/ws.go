package api

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"flightboard-service/internal/events"
	"flightboard-service/internal/logging"
	"flightboard-service/internal/metrics"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var errObserverBufferFull = errors.New("observer send buffer full, event dropped")

// wsObserver adapts a WebSocket connection to the hub's Observer
// contract. Send enqueues without blocking; a dedicated write pump drains
// the buffer in order, so the connection sees events in publish order.
type wsObserver struct {
	id      string
	conn    *websocket.Conn
	send    chan events.Event
	metrics *metrics.MetricsRegistry

	closeOnce sync.Once
	done      chan struct{}
}

func newWSObserver(conn *websocket.Conn, buffer int, metricsReg *metrics.MetricsRegistry) *wsObserver {
	if buffer <= 0 {
		buffer = 16
	}
	return &wsObserver{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan events.Event, buffer),
		metrics: metricsReg,
		done:    make(chan struct{}),
	}
}

func (o *wsObserver) ID() string { return o.id }

func (o *wsObserver) Send(event events.Event) error {
	select {
	case o.send <- event:
		return nil
	default:
		if o.metrics != nil {
			o.metrics.BroadcastDropsTotal.Inc()
		}
		return errObserverBufferFull
	}
}

func (o *wsObserver) close() {
	o.closeOnce.Do(func() { close(o.done) })
}

func (o *wsObserver) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		o.conn.Close()
	}()

	for {
		select {
		case event := <-o.send:
			o.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := o.conn.WriteJSON(event); err != nil {
				logging.Debug("Observer write failed", "observer_id", o.id, "error", err.Error())
				return
			}
		case <-ticker.C:
			o.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-o.done:
			o.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = o.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}

// BoardSocketHandler handles GET /ws/board: upgrades the connection,
// attaches it to the hub, and detaches on disconnect. Reconnecting
// clients re-fetch full state over the REST endpoints rather than rely on
// replay of missed events.
func BoardSocketHandler(hub *events.Hub, metricsReg *metrics.MetricsRegistry, allowedOrigin string, buffer int) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn("WebSocket upgrade failed", "error", err.Error())
			return
		}

		o := newWSObserver(conn, buffer, metricsReg)
		hub.Attach(o)
		go o.writePump()

		// Inbound messages are ignored; the read loop only detects
		// disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.Detach(o.id)
		o.close()
	}
}
