package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// defaultRating applies to places without a rating.
const defaultRating = 4.0

// GooglePlaces searches Google Places for parking around a point.
type GooglePlaces struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

func NewGooglePlaces(config utils.MapsConfig, log *zap.Logger) *GooglePlaces {
	return &GooglePlaces{
		client:  newHTTPClient(config.Timeout),
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		log:     log.With(zap.String("provider", "places")),
	}
}

type nearbySearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
}

func (p *GooglePlaces) NearbyParking(ctx context.Context, center geo.Coordinates, radiusMeters float64) ([]entity.Venue, error) {
	query := url.Values{}
	query.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	query.Set("radius", strconv.Itoa(int(radiusMeters)))
	query.Set("type", "parking")
	query.Set("key", p.apiKey)

	var resp nearbySearchResponse
	if err := getJSON(ctx, p.client, p.baseURL+"/maps/api/place/nearbysearch/json", query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	venues := make([]entity.Venue, 0, len(resp.Results))
	for i, place := range resp.Results {
		if place.PlaceID == "" {
			continue
		}
		venues = append(venues, toVenue(place, i))
	}

	p.log.Debug("Nearby search", zap.Int("results", len(venues)), zap.Float64("radius_m", radiusMeters))
	return venues, nil
}

func toVenue(place placeResult, index int) entity.Venue {
	name := place.Name
	if name == "" {
		name = fmt.Sprintf("Parking %d", index+1)
	}

	address := place.Vicinity
	if address == "" {
		address = place.FormattedAddress
	}
	if address == "" {
		address = "Address not available"
	}

	rating := place.Rating
	if rating == 0 {
		rating = defaultRating
	}

	return entity.Venue{
		ID:       place.PlaceID,
		Name:     name,
		Address:  address,
		Location: geo.Coordinates{Lat: place.Geometry.Location.Lat, Lng: place.Geometry.Location.Lng},
		Types:    place.Types,
		Rating:   rating,
		Type:     ParkingTypeFor(place.Types),
		Source:   entity.CatalogSourceLive,
	}
}

// ParkingTypeFor derives the parking type from place category tags.
func ParkingTypeFor(types []string) entity.ParkingType {
	if !slices.Contains(types, "parking") {
		return entity.ParkingTypeOpen
	}
	switch {
	case slices.Contains(types, "shopping_mall"):
		return entity.ParkingTypeCovered
	case slices.Contains(types, "airport"):
		return entity.ParkingTypeMultiLevel
	default:
		return entity.ParkingTypeOpen
	}
}
