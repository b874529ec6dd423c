package wire

import (
	"smartpark/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRealtime(r chi.Router, realtimeHandler *adaptor.RealtimeHandler) {
	r.Get("/ws/availability", realtimeHandler.Availability)
}
