package usecase

import (
	"sort"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
)

var fallbackCatalog = []entity.Venue{
	{ID: "mock_1", Name: "Connaught Place Parking", Address: "Connaught Place, New Delhi", Location: geo.Coordinates{Lat: 28.6304, Lng: 77.2177}, Type: entity.ParkingTypeCovered, Capacity: 100, Rating: 4.5},
	{ID: "mock_2", Name: "Rajiv Chowk Metro", Address: "Rajiv Chowk, New Delhi", Location: geo.Coordinates{Lat: 28.6328, Lng: 77.2197}, Type: entity.ParkingTypeOpen, Capacity: 80, Rating: 4.1},
	{ID: "mock_3", Name: "India Gate Parking", Address: "India Gate, New Delhi", Location: geo.Coordinates{Lat: 28.6129, Lng: 77.2295}, Type: entity.ParkingTypeOpen, Capacity: 150, Rating: 4.3},
	{ID: "mock_4", Name: "Saket Mall", Address: "Saket, New Delhi", Location: geo.Coordinates{Lat: 28.5244, Lng: 77.2066}, Type: entity.ParkingTypeCovered, Capacity: 200, Rating: 4.6},
	{ID: "mock_5", Name: "Indirapuram Mall", Address: "Indirapuram, Ghaziabad", Location: geo.Coordinates{Lat: 28.6410, Lng: 77.3671}, Type: entity.ParkingTypeCovered, Capacity: 150, Rating: 4.0},
	{ID: "mock_6", Name: "Shipra Mall", Address: "Shipra Mall, Ghaziabad", Location: geo.Coordinates{Lat: 28.6461, Lng: 77.3771}, Type: entity.ParkingTypeCovered, Capacity: 200, Rating: 4.2},
	{ID: "mock_7", Name: "Vaishali Metro", Address: "Vaishali, Ghaziabad", Location: geo.Coordinates{Lat: 28.6490, Lng: 77.3409}, Type: entity.ParkingTypeOpen, Capacity: 100, Rating: 3.8},
	{ID: "mock_8", Name: "Phoenix Market City", Address: "Kurla, Mumbai", Location: geo.Coordinates{Lat: 19.0868, Lng: 72.8906}, Type: entity.ParkingTypeMultiLevel, Capacity: 300, Rating: 4.7},
	{ID: "mock_9", Name: "Bandra Station", Address: "Bandra, Mumbai", Location: geo.Coordinates{Lat: 19.0544, Lng: 72.8406}, Type: entity.ParkingTypeOpen, Capacity: 120, Rating: 3.6},
	{ID: "mock_10", Name: "UB City Parking", Address: "UB City, Bangalore", Location: geo.Coordinates{Lat: 12.9716, Lng: 77.5946}, Type: entity.ParkingTypeCovered, Capacity: 250, Rating: 4.8},
	{ID: "mock_11", Name: "MG Road Metro", Address: "MG Road, Bangalore", Location: geo.Coordinates{Lat: 12.9759, Lng: 77.6069}, Type: entity.ParkingTypeOpen, Capacity: 150, Rating: 3.9},
}

// FallbackVenues returns the built-in catalog entries within radiusKm of center,
// nearest first. A radius of 0 keeps every entry.
func FallbackVenues(center geo.Coordinates, radiusKm float64) []entity.Venue {
	type candidate struct {
		venue    entity.Venue
		distance float64
	}

	candidates := make([]candidate, 0, len(fallbackCatalog))
	for _, venue := range fallbackCatalog {
		distance := geo.DistanceKm(center, venue.Location)
		if radiusKm > 0 && distance > radiusKm {
			continue
		}
		venue.Source = entity.CatalogSourceFallback
		candidates = append(candidates, candidate{venue: venue, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	venues := make([]entity.Venue, len(candidates))
	for i, c := range candidates {
		venues[i] = c.venue
	}
	return venues
}
