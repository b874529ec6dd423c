package entity

import "time"

type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventCompleted BookingEventType = "booking.completed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent announces a ledger transition and the resulting slot count.
type BookingEvent struct {
	Type           BookingEventType `json:"type"`
	BookingID      string           `json:"booking_id"`
	ParkingID      string           `json:"parking_id"`
	UserID         string           `json:"user_id"`
	Status         BookingStatus    `json:"status"`
	AvailableSlots *int             `json:"available_slots,omitempty"`
	OccurredAt     time.Time        `json:"occurred_at"`
}
