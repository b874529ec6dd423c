package usecase

import (
	"smartpark/internal/data/repository"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

// Dependencies are the outbound collaborators. Nil providers disable the matching
// feature: the catalog falls back, suggestions come back empty and predictions
// report themselves unavailable.
type Dependencies struct {
	Places    PlacesProvider
	Locations LocationResolver
	Predictor Predictor
	Publisher EventPublisher
	Seeder    InventorySeeder
}

type Service struct {
	Booking    BookingService
	Parking    ParkingService
	Prediction PredictionService
	Inventory  InventoryService
	Analytics  AnalyticsService
	Receipt    ReceiptService
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	seeder := deps.Seeder
	if seeder == nil {
		seeder = NewRandomSeeder(0)
	}

	catalog := NewCatalogSource(deps.Places, repo.Availability, seeder, config.Catalog, log)
	inventory := NewInventoryService(repo.Inventory, log)

	return &Service{
		Booking:    NewBookingService(repo, deps.Publisher, config.Booking, log),
		Parking:    NewParkingService(catalog, repo.Availability, deps.Locations, config, log),
		Prediction: NewPredictionService(deps.Predictor, log),
		Inventory:  inventory,
		Analytics:  NewAnalyticsService(repo.Booking, inventory, log),
		Receipt:    NewReceiptService(repo.Booking, config.App.Name, log),
	}
}
