package repository

import (
	"context"
	"fmt"

	"smartpark/internal/data/entity"
	"smartpark/pkg/database"

	"go.uber.org/zap"
)

// BookingRepository reads and writes the booking collection as one document.
type BookingRepository interface {
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error)
	SaveAll(ctx context.Context, bookings []*entity.Booking) error
}

type bookingRepository struct {
	store database.DocumentStore
	log   *zap.Logger
}

func NewBookingRepository(store database.DocumentStore, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		store: store,
		log:   log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	if _, err := loadDocument(ctx, r.store, BookingsKey, &bookings); err != nil {
		r.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return nil, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []*entity.Booking
	for _, booking := range bookings {
		if booking.UserID == userID {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (r *bookingRepository) SaveAll(ctx context.Context, bookings []*entity.Booking) error {
	if bookings == nil {
		bookings = []*entity.Booking{}
	}

	if err := saveDocument(ctx, r.store, BookingsKey, bookings); err != nil {
		r.log.Error("Failed to save bookings",
			zap.Error(err),
			zap.Int("count", len(bookings)),
		)
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}
