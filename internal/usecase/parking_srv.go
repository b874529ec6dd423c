package usecase

import (
	"context"
	"fmt"
	"strings"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/internal/dto/request"
	"smartpark/internal/dto/response"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// nearestRadiusKm bounds the nearest-parking lookup.
const nearestRadiusKm = 50

// LocationResolver turns free text into place candidates and place ids into coordinates.
type LocationResolver interface {
	Suggest(ctx context.Context, query, country string) ([]entity.PlaceSuggestion, error)
	Resolve(ctx context.Context, placeID string) (geo.Coordinates, error)
}

type ParkingService interface {
	Search(ctx context.Context, req *request.SearchParkingRequest) (*response.SearchResponse, error)
	Nearest(ctx context.Context, center geo.Coordinates) (*entity.ParkingLocation, error)
	SuggestLocations(ctx context.Context, query, country string) ([]entity.PlaceSuggestion, error)
	ResolveLocation(ctx context.Context, placeID string) (*geo.Coordinates, error)
}

type parkingService struct {
	catalog      *CatalogSource
	availability repository.AvailabilityRepository
	resolver     LocationResolver
	maps         utils.MapsConfig
	radiusKm     float64
	log          *zap.Logger
}

func NewParkingService(
	catalog *CatalogSource,
	availability repository.AvailabilityRepository,
	resolver LocationResolver,
	config *utils.Config,
	log *zap.Logger,
) ParkingService {
	return &parkingService{
		catalog:      catalog,
		availability: availability,
		resolver:     resolver,
		maps:         config.Maps,
		radiusKm:     config.Catalog.DefaultRadiusKm,
		log:          log.With(zap.String("service", "parking")),
	}
}

func (s *parkingService) Search(ctx context.Context, req *request.SearchParkingRequest) (*response.SearchResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Search validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	center, err := s.searchCenter(ctx, req)
	if err != nil {
		return nil, err
	}

	radius := req.RadiusKm
	if radius <= 0 {
		radius = s.radiusKm
	}

	locations, source, err := s.rank(ctx, center, Filters{
		RadiusKm:        radius,
		MinAvailability: req.MinAvailability,
		MaxPrice:        req.MaxPrice,
		Type:            req.Type,
		MinRating:       req.MinRating,
		SortBy:          SortKey(req.SortBy),
	})
	if err != nil {
		return nil, err
	}

	return &response.SearchResponse{
		Center:   center,
		RadiusKm: radius,
		Source:   source,
		Count:    len(locations),
		Parkings: locations,
	}, nil
}

func (s *parkingService) Nearest(ctx context.Context, center geo.Coordinates) (*entity.ParkingLocation, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	locations, _, err := s.rank(ctx, center, Filters{RadiusKm: nearestRadiusKm, SortBy: SortByDistance})
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no parking within %d km", ErrNotFound, nearestRadiusKm)
	}

	nearest := locations[0]
	return &nearest, nil
}

// SuggestLocations never fails on provider errors; it returns an empty list instead.
func (s *parkingService) SuggestLocations(ctx context.Context, query, country string) ([]entity.PlaceSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.resolver == nil {
		return []entity.PlaceSuggestion{}, nil
	}
	if country == "" {
		country = s.maps.Country
	}

	suggestions, err := s.resolver.Suggest(ctx, query, country)
	if err != nil {
		s.log.Warn("Location suggest failed", zap.Error(err), zap.String("query", query))
		return []entity.PlaceSuggestion{}, nil
	}
	if suggestions == nil {
		suggestions = []entity.PlaceSuggestion{}
	}
	return suggestions, nil
}

func (s *parkingService) ResolveLocation(ctx context.Context, placeID string) (*geo.Coordinates, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, fmt.Errorf("%w: place_id is required", ErrValidation)
	}
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: location resolver not configured", ErrUpstreamUnavailable)
	}

	coords, err := s.resolver.Resolve(ctx, placeID)
	if err != nil {
		s.log.Warn("Location resolve failed", zap.Error(err), zap.String("place_id", placeID))
		return nil, fmt.Errorf("%w: resolve %s: %w", ErrUpstreamUnavailable, placeID, err)
	}
	return &coords, nil
}

func (s *parkingService) searchCenter(ctx context.Context, req *request.SearchParkingRequest) (geo.Coordinates, error) {
	if req.HasCoordinates() {
		return geo.Coordinates{Lat: *req.Lat, Lng: *req.Lng}, nil
	}
	if req.PlaceID != "" {
		coords, err := s.ResolveLocation(ctx, req.PlaceID)
		if err != nil {
			return geo.Coordinates{}, err
		}
		return *coords, nil
	}
	return geo.Coordinates{}, fmt.Errorf("%w: lat and lng or place_id are required", ErrValidation)
}

func (s *parkingService) rank(ctx context.Context, center geo.Coordinates, filters Filters) ([]entity.ParkingLocation, entity.CatalogSource, error) {
	catalog := s.catalog.FetchCatalog(ctx, center, filters.RadiusKm)

	availability, err := s.availability.All(ctx)
	if err != nil {
		s.log.Error("Failed to load availability", zap.Error(err))
		return nil, catalog.Source, fmt.Errorf("%w: load availability: %w", ErrPersistence, err)
	}

	locations, err := Rank(catalog.Venues, availability, center, filters)
	if err != nil {
		s.log.Error("Failed to rank parking", zap.Error(err))
		return nil, catalog.Source, err
	}
	return locations, catalog.Source, nil
}
