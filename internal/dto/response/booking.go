package response

import "smartpark/internal/data/entity"

type BookingResponse struct {
	entity.Booking
	// SlotReserved is reported on creation only: whether a slot was taken from availability.
	SlotReserved   *bool `json:"slot_reserved,omitempty"`
	AvailableSlots *int  `json:"available_slots,omitempty"`
}

func NewBookingResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{Booking: *b}
}

func NewBookingResponses(bookings []*entity.Booking) []BookingResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = NewBookingResponse(b)
	}
	return result
}
