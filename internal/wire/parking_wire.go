package wire

import (
	"smartpark/internal/adaptor"
	"smartpark/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Search and location lookups call the maps provider, so they share the rate limiter.
func wireParking(r chi.Router, parkingHandler *adaptor.ParkingHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	r.Route("/api/parkings", func(r chi.Router) {
		r.Use(limiter.Limit(log))

		r.Get("/search", parkingHandler.Search)
		r.Get("/nearest", parkingHandler.Nearest)
	})
}

func wireLocation(r chi.Router, locationHandler *adaptor.LocationHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	r.Route("/api/locations", func(r chi.Router) {
		r.Use(limiter.Limit(log))

		r.Get("/suggest", locationHandler.Suggest)
		r.Get("/{placeId}", locationHandler.Resolve)
	})
}
