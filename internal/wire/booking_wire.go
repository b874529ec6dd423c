package wire

import (
	"smartpark/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - reserve a slot
		r.Post("/", bookingHandler.CreateBooking)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", bookingHandler.GetBooking)
			r.Put("/checkout", bookingHandler.CheckOut)
			r.Put("/cancel", bookingHandler.CancelBooking)

			// Printable artefacts
			r.Get("/pass.png", bookingHandler.ParkingPass)
			r.Get("/receipt.pdf", bookingHandler.Receipt)
		})
	})

	// GET /api/users/{userId}/bookings - newest first
	r.Get("/api/users/{userId}/bookings", bookingHandler.GetUserBookings)
}
