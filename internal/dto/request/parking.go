package request

// SearchParkingRequest is built from query parameters. Lat and Lng are required
// unless PlaceID is given.
type SearchParkingRequest struct {
	Lat             *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng             *float64 `json:"lng" validate:"omitempty,longitude"`
	PlaceID         string   `json:"place_id"`
	RadiusKm        float64  `json:"radius" validate:"gte=0,lte=500"`
	MinAvailability float64  `json:"min_availability" validate:"gte=0,lte=100"`
	MaxPrice        float64  `json:"max_price" validate:"gte=0"`
	Type            string   `json:"type"`
	MinRating       float64  `json:"min_rating" validate:"gte=0,lte=5"`
	SortBy          string   `json:"sort_by" validate:"omitempty,oneof=distance price availability rating"`
}

func (r SearchParkingRequest) HasCoordinates() bool {
	return r.Lat != nil && r.Lng != nil
}
