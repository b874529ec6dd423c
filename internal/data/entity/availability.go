package entity

import "time"

// AvailabilityRecord is the slot bookkeeping for one parking id.
type AvailabilityRecord struct {
	TotalSlots     int       `json:"total_slots"`
	AvailableSlots int       `json:"available_slots"`
	Price          int       `json:"price"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Percentage is AvailableSlots/TotalSlots*100, or 0 when TotalSlots is 0.
func (r AvailabilityRecord) Percentage() float64 {
	if r.TotalSlots == 0 {
		return 0
	}
	return float64(r.AvailableSlots) / float64(r.TotalSlots) * 100
}
