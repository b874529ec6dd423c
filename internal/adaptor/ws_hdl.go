package adaptor

import (
	"net/http"
	"time"

	"smartpark/internal/notify"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RealtimeHandler upgrades clients onto the booking event feed.
type RealtimeHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewRealtimeHandler(hub *notify.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS middleware already guards browser origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With(zap.String("handler", "realtime")),
	}
}

// Availability handles GET /ws/availability. The feed is write-only; inbound
// frames are read and discarded until the client goes away.
func (h *RealtimeHandler) Availability(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	pongWait := h.hub.PongWait()
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}
