package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/internal/dto/request"
	"smartpark/internal/dto/response"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
)

const defaultParkingName = "Parking Location"

// BookingService is the booking ledger. It is the only writer of available slot counts.
type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CheckOut(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Admin
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher EventPublisher
	policy    utils.BookingConfig
	log       *zap.Logger
	now       func() time.Time
}

func NewBookingService(repo *repository.Repository, publisher EventPublisher, policy utils.BookingConfig, log *zap.Logger) BookingService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		policy:    policy,
		log:       log.With(zap.String("service", "booking")),
		now:       time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	name := strings.TrimSpace(req.ParkingName)
	if name == "" {
		name = defaultParkingName
	}

	now := s.now().UTC()
	booking := &entity.Booking{
		ID:          utils.GenerateBookingID(now),
		UserID:      req.UserID,
		ParkingID:   req.ParkingID,
		ParkingName: name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		Price:       req.Price,
		TotalAmount: req.Price * req.Duration,
		Status:      entity.BookingStatusConfirmed,
		BookingTime: now,
	}

	var reserved bool
	if s.policy.FailOpen {
		if err := s.appendBooking(ctx, booking); err != nil {
			return nil, err
		}
		reserved = s.takeSlot(ctx, booking.ParkingID)
	} else {
		ok, err := s.repo.Availability.Decrement(ctx, booking.ParkingID)
		if err != nil {
			s.log.Error("Failed to reserve slot", zap.Error(err), zap.String("parking_id", booking.ParkingID))
			return nil, fmt.Errorf("%w: reserve slot at %s: %w", ErrPersistence, booking.ParkingID, err)
		}
		if !ok {
			s.log.Warn("No slot available", zap.String("parking_id", booking.ParkingID))
			return nil, fmt.Errorf("%w: parking %s has no free slot", ErrNoAvailability, booking.ParkingID)
		}
		reserved = true

		if err := s.appendBooking(ctx, booking); err != nil {
			s.returnSlot(ctx, booking.ParkingID)
			return nil, err
		}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("user_id", booking.UserID),
		zap.String("parking_id", booking.ParkingID),
		zap.Int("total_amount", booking.TotalAmount),
		zap.Bool("slot_reserved", reserved),
	)

	result := response.NewBookingResponse(booking)
	result.SlotReserved = &reserved
	available := s.publish(ctx, entity.BookingEventCreated, booking)
	if reserved {
		result.AvailableSlots = available
	}
	return &result, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("%w: get user bookings: %w", ErrPersistence, err)
	}

	newestFirst(bookings)
	return response.NewBookingResponses(bookings), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("%w: get booking: %w", ErrPersistence, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	result := response.NewBookingResponse(booking)
	return &result, nil
}

func (s *bookingService) CheckOut(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.finish(ctx, bookingID, entity.BookingStatusCompleted, entity.BookingEventCompleted)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.finish(ctx, bookingID, entity.BookingStatusCancelled, entity.BookingEventCancelled)
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("%w: list bookings: %w", ErrPersistence, err)
	}

	newestFirst(bookings)

	limit := req.Limit()
	page := utils.Paginate(bookings, req.Page, limit)

	return response.NewPaginatedResponse(response.NewBookingResponses(page), req.Page, limit, int64(len(bookings))), nil
}

// finish moves a CONFIRMED booking to a terminal status and gives its slot back.
func (s *bookingService) finish(ctx context.Context, bookingID string, status entity.BookingStatus, eventType entity.BookingEventType) (*response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("%w: load bookings: %w", ErrPersistence, err)
	}

	var booking *entity.Booking
	for _, b := range bookings {
		if b.ID == bookingID {
			booking = b
			break
		}
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	if booking.Status != entity.BookingStatusConfirmed {
		s.log.Warn("Rejected booking transition",
			zap.String("booking_id", bookingID),
			zap.String("from", string(booking.Status)),
			zap.String("to", string(status)),
		)
		return nil, fmt.Errorf("%w: booking %s is already %s", ErrInvalidState, bookingID, booking.Status)
	}

	now := s.now().UTC()
	booking.Status = status
	switch status {
	case entity.BookingStatusCompleted:
		booking.CheckOutTime = &now
	case entity.BookingStatusCancelled:
		booking.CancelledTime = &now
	}

	if err := s.saveWithCleanup(ctx, bookings, booking.ID); err != nil {
		return nil, err
	}

	restored := s.returnSlot(ctx, booking.ParkingID)

	s.log.Info("Booking closed",
		zap.String("booking_id", booking.ID),
		zap.String("status", string(status)),
		zap.Bool("slot_restored", restored),
	)

	result := response.NewBookingResponse(booking)
	available := s.publish(ctx, eventType, booking)
	if restored {
		result.AvailableSlots = available
	}
	return &result, nil
}

func (s *bookingService) appendBooking(ctx context.Context, booking *entity.Booking) error {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return fmt.Errorf("%w: load bookings: %w", ErrPersistence, err)
	}

	return s.saveWithCleanup(ctx, append(bookings, booking), booking.ID)
}

// saveWithCleanup writes the booking list. When the write fails it drops finished
// bookings older than the retention window and tries once more. The booking named
// by writingID is never dropped.
func (s *bookingService) saveWithCleanup(ctx context.Context, bookings []*entity.Booking, writingID string) error {
	err := s.repo.Booking.SaveAll(ctx, bookings)
	if err == nil {
		return nil
	}

	kept := s.evictExpired(bookings, writingID)
	s.log.Warn("Booking write failed, retrying after cleanup",
		zap.Error(err),
		zap.Int("evicted", len(bookings)-len(kept)),
	)

	if err := s.repo.Booking.SaveAll(ctx, kept); err != nil {
		s.log.Error("Booking write failed after cleanup", zap.Error(err))
		return fmt.Errorf("%w: save bookings: %w", ErrPersistence, err)
	}
	return nil
}

func (s *bookingService) evictExpired(bookings []*entity.Booking, keepID string) []*entity.Booking {
	cutoff := s.now().AddDate(0, 0, -s.policy.RetentionDays)

	kept := make([]*entity.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID == keepID || !b.Status.IsTerminal() || b.BookingTime.After(cutoff) {
			kept = append(kept, b)
		}
	}
	return kept
}

func (s *bookingService) takeSlot(ctx context.Context, parkingID string) bool {
	ok, err := s.repo.Availability.Decrement(ctx, parkingID)
	if err != nil {
		s.log.Warn("Failed to decrement availability", zap.Error(err), zap.String("parking_id", parkingID))
		return false
	}
	if !ok {
		s.log.Warn("Booking created without a free slot", zap.String("parking_id", parkingID))
	}
	return ok
}

func (s *bookingService) returnSlot(ctx context.Context, parkingID string) bool {
	ok, err := s.repo.Availability.Increment(ctx, parkingID)
	if err != nil {
		s.log.Warn("Failed to increment availability", zap.Error(err), zap.String("parking_id", parkingID))
		return false
	}
	return ok
}

// publish announces the transition and returns the slot count it carried, if known.
func (s *bookingService) publish(ctx context.Context, eventType entity.BookingEventType, booking *entity.Booking) *int {
	event := entity.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		ParkingID:  booking.ParkingID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		OccurredAt: s.now().UTC(),
	}

	if record, err := s.repo.Availability.Get(ctx, booking.ParkingID); err == nil && record != nil {
		available := record.AvailableSlots
		event.AvailableSlots = &available
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(eventType)),
			zap.String("booking_id", booking.ID),
		)
	}
	return event.AvailableSlots
}

func newestFirst(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingTime.After(bookings[j].BookingTime)
	})
}
