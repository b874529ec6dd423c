package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartpark/internal/data/entity"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	broadcastQueue = 64
	clientQueue    = 16

	// DefaultPongWait is how long a client may stay silent before its connection is dropped.
	DefaultPongWait = 60 * time.Second
)

var errQueueFull = errors.New("broadcast queue full")

// client owns one connection. Only its writer goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans booking events out to connected websocket clients.
type Hub struct {
	clients    map[*websocket.Conn]*client
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.RWMutex
	pongWait   time.Duration
	pingPeriod time.Duration
	log        *zap.Logger
}

type HubOption func(*Hub)

// WithPongWait sets the read deadline clients must refresh with pongs. Pings go out at 9/10 of it.
func WithPongWait(d time.Duration) HubOption {
	return func(h *Hub) {
		h.pongWait = d
		h.pingPeriod = d * 9 / 10
	}
}

func NewHub(log *zap.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]*client),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, broadcastQueue),
		done:       make(chan struct{}),
		log:        log.With(zap.String("component", "ws_hub")),
	}
	WithPongWait(DefaultPongWait)(h)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PongWait is the read deadline readers should apply to hub connections.
func (h *Hub) PongWait() time.Duration {
	return h.pongWait
}

// Run serves registrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for conn, c := range h.clients {
				close(c.send)
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			c := &client{conn: conn, send: make(chan []byte, clientQueue)}
			h.mutex.Lock()
			h.clients[conn] = c
			total := len(h.clients)
			h.mutex.Unlock()
			go h.writePump(c)
			h.log.Debug("Websocket client connected", zap.Int("clients", total))

		case conn := <-h.unregister:
			h.mutex.Lock()
			h.drop(conn)
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("Websocket client disconnected", zap.Int("clients", total))

		case message := <-h.broadcast:
			h.mutex.Lock()
			h.deliver(message)
			h.mutex.Unlock()
		}
	}
}

// deliver queues message for every client without blocking. A client whose
// queue is full is dropped. Callers hold h.mutex.
func (h *Hub) deliver(message []byte) {
	for conn, c := range h.clients {
		select {
		case c.send <- message:
		default:
			h.log.Warn("Websocket client too slow, dropping")
			h.drop(conn)
		}
	}
}

// drop forgets conn and stops its writer. Callers hold h.mutex.
func (h *Hub) drop(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

// writePump sends queued messages and keepalive pings until the queue is closed
// or a write fails. It closes the connection on exit.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.log.Warn("Websocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.log.Debug("Websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// Register and Unregister return immediately once Run has stopped.
func (h *Hub) Register(conn *websocket.Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) Clients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Publish queues the event for every client. A full queue drops the event.
func (h *Hub) Publish(_ context.Context, event entity.BookingEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	select {
	case h.broadcast <- message:
		return nil
	default:
		h.log.Warn("Broadcast queue full, dropping event", zap.String("booking_id", event.BookingID))
		return errQueueFull
	}
}
