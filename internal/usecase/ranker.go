package usecase

import (
	"fmt"
	"sort"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
)

type SortKey string

const (
	SortByDistance     SortKey = "distance"
	SortByPrice        SortKey = "price"
	SortByAvailability SortKey = "availability"
	SortByRating       SortKey = "rating"
)

// Filters narrows a ranked result. Zero values leave the corresponding filter unset.
type Filters struct {
	RadiusKm        float64
	MinAvailability float64
	MaxPrice        float64
	Type            string
	MinRating       float64
	SortBy          SortKey
}

func (f Filters) keep(p entity.ParkingLocation) bool {
	if f.RadiusKm > 0 && p.Distance > f.RadiusKm {
		return false
	}
	if f.MinAvailability > 0 && p.AvailabilityPercentage < f.MinAvailability {
		return false
	}
	if f.MaxPrice > 0 && float64(p.Price) > f.MaxPrice {
		return false
	}
	if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(t, "all") && !strings.EqualFold(t, string(p.Type)) {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	return true
}

// Rank joins venues with their availability, applies filters and orders the result.
// Every venue must have an availability record. Inputs are not modified.
func Rank(venues []entity.Venue, availability map[string]entity.AvailabilityRecord, center geo.Coordinates, filters Filters) ([]entity.ParkingLocation, error) {
	ranked := make([]entity.ParkingLocation, 0, len(venues))

	for _, venue := range venues {
		record, ok := availability[venue.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no availability record for parking %s", ErrDataIntegrity, venue.ID)
		}

		location := joinVenue(venue, record, center)
		if filters.keep(location) {
			ranked = append(ranked, location)
		}
	}

	sortLocations(ranked, filters.SortBy)
	return ranked, nil
}

func joinVenue(venue entity.Venue, record entity.AvailabilityRecord, center geo.Coordinates) entity.ParkingLocation {
	distance := geo.DistanceKm(center, venue.Location)
	percentage := record.Percentage()

	return entity.ParkingLocation{
		ID:                     venue.ID,
		Name:                   venue.Name,
		Address:                venue.Address,
		Location:               venue.Location,
		Type:                   venue.Type,
		Rating:                 venue.Rating,
		TotalSlots:             record.TotalSlots,
		AvailableSlots:         record.AvailableSlots,
		Price:                  record.Price,
		Distance:               distance,
		DistanceText:           geo.FormatDistance(distance),
		AvailabilityPercentage: percentage,
		MarkerColor:            entity.MarkerColor(percentage),
		Source:                 venue.Source,
	}
}

func sortLocations(locations []entity.ParkingLocation, key SortKey) {
	var less func(a, b entity.ParkingLocation) bool

	switch key {
	case SortByPrice:
		less = func(a, b entity.ParkingLocation) bool { return a.Price < b.Price }
	case SortByAvailability:
		less = func(a, b entity.ParkingLocation) bool { return a.AvailabilityPercentage > b.AvailabilityPercentage }
	case SortByRating:
		less = func(a, b entity.ParkingLocation) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b entity.ParkingLocation) bool { return a.Distance < b.Distance }
	}

	sort.SliceStable(locations, func(i, j int) bool {
		return less(locations[i], locations[j])
	})
}
