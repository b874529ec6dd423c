package entity

import "smartpark/pkg/geo"

type ParkingType string

const (
	ParkingTypeCovered    ParkingType = "Covered"
	ParkingTypeOpen       ParkingType = "Open"
	ParkingTypeMultiLevel ParkingType = "Multi-level"
)

type CatalogSource string

const (
	CatalogSourceLive     CatalogSource = "live"
	CatalogSourceFallback CatalogSource = "fallback"
)

// Venue is a raw catalog entry before availability and ranking are applied.
type Venue struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Address  string          `json:"address"`
	Location geo.Coordinates `json:"location"`
	Types    []string        `json:"types,omitempty"`
	Rating   float64         `json:"rating"`
	Type     ParkingType     `json:"type"`
	Capacity int             `json:"capacity,omitempty"`
	Source   CatalogSource   `json:"source"`
}

// ParkingLocation is a venue joined with its availability, as seen from a search centre.
type ParkingLocation struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Address                string          `json:"address"`
	Location               geo.Coordinates `json:"location"`
	Type                   ParkingType     `json:"type"`
	Rating                 float64         `json:"rating"`
	TotalSlots             int             `json:"total_slots"`
	AvailableSlots         int             `json:"available_slots"`
	Price                  int             `json:"price"`
	Distance               float64         `json:"distance"`
	DistanceText           string          `json:"distance_text"`
	AvailabilityPercentage float64         `json:"availability_percentage"`
	MarkerColor            string          `json:"marker_color"`
	Source                 CatalogSource   `json:"source"`
}

const (
	MarkerGreen  = "#10B981"
	MarkerYellow = "#F59E0B"
	MarkerRed    = "#EF4444"
)

// MarkerColor maps an availability percentage to the map marker colour.
func MarkerColor(percentage float64) string {
	switch {
	case percentage > 50:
		return MarkerGreen
	case percentage >= 20:
		return MarkerYellow
	default:
		return MarkerRed
	}
}

// PlaceSuggestion is one autocomplete candidate from the location resolver.
type PlaceSuggestion struct {
	DisplayName string `json:"display_name"`
	PlaceID     string `json:"place_id"`
}
