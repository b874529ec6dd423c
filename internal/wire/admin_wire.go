package wire

import (
	"smartpark/internal/adaptor"
	"smartpark/pkg/middleware"
	"smartpark/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, config utils.AdminConfig, log *zap.Logger) {
	if config.KeyHash == "" {
		log.Warn("ADMIN_KEY_HASH is not set, admin routes will reject every request")
	}

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.KeyHash, log))

		r.Get("/bookings", adminHandler.GetBookings)

		r.Get("/parkings", adminHandler.GetParkingLots)
		r.Post("/parkings", adminHandler.CreateParkingLot)
		r.Put("/parkings/{id}", adminHandler.UpdateParkingLot)
		r.Delete("/parkings/{id}", adminHandler.DeleteParkingLot)

		r.Get("/analytics", adminHandler.GetAnalytics)
	})
}
