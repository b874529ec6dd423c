package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// GoogleLocationResolver implements place autocomplete and place id geocoding.
type GoogleLocationResolver struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

func NewGoogleLocationResolver(config utils.MapsConfig, log *zap.Logger) *GoogleLocationResolver {
	return &GoogleLocationResolver{
		client:  newHTTPClient(config.Timeout),
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		log:     log.With(zap.String("provider", "geocode")),
	}
}

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

func (r *GoogleLocationResolver) Suggest(ctx context.Context, query, country string) ([]entity.PlaceSuggestion, error) {
	params := url.Values{}
	params.Set("input", query)
	params.Set("key", r.apiKey)
	if country != "" {
		params.Set("components", "country:"+country)
	}

	var resp autocompleteResponse
	if err := getJSON(ctx, r.client, r.baseURL+"/maps/api/place/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status, resp.ErrorMessage); err != nil {
		return nil, err
	}

	suggestions := make([]entity.PlaceSuggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, entity.PlaceSuggestion{DisplayName: p.Description, PlaceID: p.PlaceID})
	}
	return suggestions, nil
}

func (r *GoogleLocationResolver) Resolve(ctx context.Context, placeID string) (geo.Coordinates, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", r.apiKey)

	var resp geocodeResponse
	if err := getJSON(ctx, r.client, r.baseURL+"/maps/api/geocode/json", params, &resp); err != nil {
		return geo.Coordinates{}, err
	}
	if err := checkStatus(resp.Status, resp.ErrorMessage); err != nil {
		return geo.Coordinates{}, err
	}
	if len(resp.Results) == 0 {
		return geo.Coordinates{}, fmt.Errorf("no geocode result for place %s", placeID)
	}

	loc := resp.Results[0].Geometry.Location
	r.log.Debug("Resolved place", zap.String("place_id", placeID), zap.Float64("lat", loc.Lat), zap.Float64("lng", loc.Lng))
	return geo.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
