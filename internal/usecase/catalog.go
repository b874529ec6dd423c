package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// PlacesProvider looks up parking venues around a point.
type PlacesProvider interface {
	NearbyParking(ctx context.Context, center geo.Coordinates, radiusMeters float64) ([]entity.Venue, error)
}

type Catalog struct {
	Venues []entity.Venue
	Source entity.CatalogSource
}

var errPlacesDisabled = errors.New("places provider not configured")

// CatalogSource produces the venue list for a search and makes sure each venue has
// an availability record. It never fails: live lookup problems fall back to the
// built-in catalog.
type CatalogSource struct {
	places       PlacesProvider
	availability repository.AvailabilityRepository
	seeder       InventorySeeder
	config       utils.CatalogConfig
	log          *zap.Logger
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewCatalogSource(
	places PlacesProvider,
	availability repository.AvailabilityRepository,
	seeder InventorySeeder,
	config utils.CatalogConfig,
	log *zap.Logger,
) *CatalogSource {
	return &CatalogSource{
		places:       places,
		availability: availability,
		seeder:       seeder,
		config:       config,
		log:          log.With(zap.String("service", "catalog")),
		sleep:        sleepContext,
	}
}

func (c *CatalogSource) FetchCatalog(ctx context.Context, center geo.Coordinates, radiusKm float64) Catalog {
	catalog := Catalog{Source: entity.CatalogSourceLive}

	venues, err := c.fetchLive(ctx, center, radiusKm)
	switch {
	case err != nil:
		c.log.Warn("Live catalog unavailable, using fallback", zap.Error(err))
	case len(venues) == 0:
		c.log.Info("Live catalog returned no venues in radius, using fallback",
			zap.Float64("radius_km", radiusKm))
	default:
		catalog.Venues = venues
	}

	if catalog.Venues == nil {
		catalog.Venues = FallbackVenues(center, radiusKm)
		catalog.Source = entity.CatalogSourceFallback
	}

	if len(catalog.Venues) > 0 {
		// seeding outlives request cancellation
		seedCtx := context.WithoutCancel(ctx)
		added, err := c.availability.SeedMissing(seedCtx, catalog.Venues, c.seeder.Seed)
		if err != nil {
			c.log.Error("Failed to seed availability", zap.Error(err), zap.Int("venues", len(catalog.Venues)))
		} else if added > 0 {
			c.log.Debug("Seeded new venues", zap.Int("added", added))
		}
	}

	c.log.Info("Catalog fetched",
		zap.String("source", string(catalog.Source)),
		zap.Int("venues", len(catalog.Venues)),
		zap.Float64("lat", center.Lat),
		zap.Float64("lng", center.Lng),
	)

	return catalog
}

// fetchLive queries the provider, retrying with a linearly growing delay.
// Results are limited to radiusKm.
func (c *CatalogSource) fetchLive(ctx context.Context, center geo.Coordinates, radiusKm float64) ([]entity.Venue, error) {
	if c.places == nil {
		return nil, errPlacesDisabled
	}

	attempts := c.config.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryDelay * time.Duration(attempt)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		venues, err := c.attempt(ctx, center, radiusKm)
		if err == nil {
			return withinRadius(venues, center, radiusKm), nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.log.Warn("Places lookup failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", attempts),
		)
	}

	return nil, fmt.Errorf("places lookup failed after %d attempts: %w", attempts, lastErr)
}

func (c *CatalogSource) attempt(ctx context.Context, center geo.Coordinates, radiusKm float64) ([]entity.Venue, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}
	return c.places.NearbyParking(ctx, center, radiusKm*1000)
}

func withinRadius(venues []entity.Venue, center geo.Coordinates, radiusKm float64) []entity.Venue {
	if radiusKm <= 0 {
		return venues
	}

	result := make([]entity.Venue, 0, len(venues))
	for _, venue := range venues {
		if geo.DistanceKm(center, venue.Location) <= radiusKm {
			result = append(result, venue)
		}
	}
	return result
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
