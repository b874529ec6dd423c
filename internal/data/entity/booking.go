package entity

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking is a reservation of one slot at a parking location.
// Price and TotalAmount are captured at creation and never recomputed.
type Booking struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	ParkingID     string        `json:"parking_id"`
	ParkingName   string        `json:"parking_name"`
	Date          string        `json:"date"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	Duration      int           `json:"duration"`
	Price         int           `json:"price"`
	TotalAmount   int           `json:"total_amount"`
	Status        BookingStatus `json:"status"`
	BookingTime   time.Time     `json:"booking_time"`
	CheckOutTime  *time.Time    `json:"check_out_time,omitempty"`
	CancelledTime *time.Time    `json:"cancelled_time,omitempty"`
}
