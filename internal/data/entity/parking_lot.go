package entity

import "smartpark/pkg/geo"

// ParkingLot is an admin-managed inventory entry.
type ParkingLot struct {
	Base
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Location       geo.Coordinates `json:"location"`
	TotalSlots     int             `json:"total_slots"`
	AvailableSlots int             `json:"available_slots"`
	Price          int             `json:"price"`
	Type           ParkingType     `json:"type"`
}

// Occupancy is the occupied share of the lot in percent.
func (p ParkingLot) Occupancy() float64 {
	if p.TotalSlots == 0 {
		return 0
	}
	return float64(p.TotalSlots-p.AvailableSlots) / float64(p.TotalSlots) * 100
}
