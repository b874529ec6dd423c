package repository

import (
	"smartpark/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking      BookingRepository
	Availability AvailabilityRepository
	Inventory    InventoryRepository
}

func NewRepository(store database.DocumentStore, log *zap.Logger) *Repository {
	return &Repository{
		Booking:      NewBookingRepository(store, log),
		Availability: NewAvailabilityRepository(store, log),
		Inventory:    NewInventoryRepository(store, log),
	}
}
