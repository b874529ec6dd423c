package usecase

import (
	"context"
	"errors"
	"testing"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/internal/dto/request"
)

func bookingRequest(parkingID string, duration, price int) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		UserID:      "user-1",
		ParkingID:   parkingID,
		ParkingName: "Connaught Place Parking",
		Date:        "2026-03-10",
		StartTime:   "10:00",
		EndTime:     "13:00",
		Duration:    duration,
		Price:       price,
	}
}

func TestCreateBookingFreezesTotalAmount(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 5, 50)

	created, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 3, 50))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if created.TotalAmount != 150 {
		t.Fatalf("total_amount = %d, want 150", created.TotalAmount)
	}
	if created.Status != entity.BookingStatusConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", created.Status)
	}

	f.setAvailability(t, "P1", 10, 4, 80)

	got, err := f.svc.GetBookingByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBookingByID: %v", err)
	}
	if got.TotalAmount != 150 || got.Price != 50 {
		t.Fatalf("stored booking changed after price update: price=%d total=%d", got.Price, got.TotalAmount)
	}
}

func TestCreateBookingDefaultsParkingName(t *testing.T) {
	f := newLedger(t, true)

	req := bookingRequest("P9", 1, 0)
	req.ParkingName = "  "
	created, err := f.svc.CreateBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if created.ParkingName != defaultParkingName {
		t.Fatalf("parking_name = %q, want %q", created.ParkingName, defaultParkingName)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
	}{
		{"missing user", func(r *request.CreateBookingRequest) { r.UserID = "" }},
		{"missing parking", func(r *request.CreateBookingRequest) { r.ParkingID = "" }},
		{"zero duration", func(r *request.CreateBookingRequest) { r.Duration = 0 }},
		{"bad date", func(r *request.CreateBookingRequest) { r.Date = "10/03/2026" }},
		{"bad start", func(r *request.CreateBookingRequest) { r.StartTime = "25:00" }},
		{"negative price", func(r *request.CreateBookingRequest) { r.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newLedger(t, true)
			f.setAvailability(t, "P1", 10, 5, 50)

			req := bookingRequest("P1", 2, 50)
			tt.mutate(req)

			if _, err := f.svc.CreateBooking(ctx, req); !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}

			bookings, _ := f.repo.Booking.FindAll(ctx)
			if len(bookings) != 0 {
				t.Fatalf("%d bookings written on validation failure", len(bookings))
			}
			if got := f.available(t, "P1"); got != 5 {
				t.Fatalf("available = %d, want 5", got)
			}
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 1, 20)

	first, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 2, 20))
	if err != nil {
		t.Fatalf("first CreateBooking: %v", err)
	}
	if first.SlotReserved == nil || !*first.SlotReserved {
		t.Fatal("first booking should reserve a slot")
	}
	if got := f.available(t, "P1"); got != 0 {
		t.Fatalf("available after first booking = %d, want 0", got)
	}

	second, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20))
	if err != nil {
		t.Fatalf("second CreateBooking: %v", err)
	}
	if second.SlotReserved == nil || *second.SlotReserved {
		t.Fatal("second booking should be created without a slot")
	}
	if got := f.available(t, "P1"); got != 0 {
		t.Fatalf("available after second booking = %d, want 0", got)
	}

	done, err := f.svc.CheckOut(ctx, first.ID)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if done.Status != entity.BookingStatusCompleted || done.CheckOutTime == nil {
		t.Fatalf("after checkout: status=%s check_out_time=%v", done.Status, done.CheckOutTime)
	}
	if got := f.available(t, "P1"); got != 1 {
		t.Fatalf("available after checkout = %d, want 1", got)
	}

	if _, err := f.svc.CheckOut(ctx, first.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second CheckOut err = %v, want ErrInvalidState", err)
	}
	if _, err := f.svc.CancelBooking(ctx, first.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Cancel after checkout err = %v, want ErrInvalidState", err)
	}

	stored, _ := f.repo.Booking.FindByID(ctx, first.ID)
	if stored.Status != entity.BookingStatusCompleted || stored.CancelledTime != nil {
		t.Fatalf("stored booking = %+v, want COMPLETED without cancelled time", stored)
	}
	if got := f.available(t, "P1"); got != 1 {
		t.Fatalf("available after rejected transitions = %d, want 1", got)
	}

	want := []entity.BookingEventType{entity.BookingEventCreated, entity.BookingEventCreated, entity.BookingEventCompleted}
	got := f.publisher.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestCancelRestoresSlot(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 4, 30)

	created, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 30))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if got := f.available(t, "P1"); got != 3 {
		t.Fatalf("available after booking = %d, want 3", got)
	}

	cancelled, err := f.svc.CancelBooking(ctx, created.ID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != entity.BookingStatusCancelled || cancelled.CancelledTime == nil {
		t.Fatalf("cancelled = %+v", cancelled)
	}
	if cancelled.AvailableSlots == nil || *cancelled.AvailableSlots != 4 {
		t.Fatalf("reported available_slots = %v, want 4", cancelled.AvailableSlots)
	}
	if got := f.available(t, "P1"); got != 4 {
		t.Fatalf("available after cancel = %d, want 4", got)
	}
}

func TestTransitionUnknownBooking(t *testing.T) {
	f := newLedger(t, true)

	if _, err := f.svc.CheckOut(context.Background(), "BK0-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CheckOut err = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.GetBookingByID(context.Background(), "BK0-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBookingByID err = %v, want ErrNotFound", err)
	}
}

func TestFailClosedPolicy(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, false)
	f.setAvailability(t, "P1", 10, 0, 20)

	if _, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20)); !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("full lot err = %v, want ErrNoAvailability", err)
	}
	if _, err := f.svc.CreateBooking(ctx, bookingRequest("unknown", 1, 20)); !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("unknown lot err = %v, want ErrNoAvailability", err)
	}

	bookings, _ := f.repo.Booking.FindAll(ctx)
	if len(bookings) != 0 {
		t.Fatalf("%d bookings written when no slot was available", len(bookings))
	}

	f.setAvailability(t, "P1", 10, 1, 20)
	created, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20))
	if err != nil {
		t.Fatalf("CreateBooking with a free slot: %v", err)
	}
	if created.SlotReserved == nil || !*created.SlotReserved {
		t.Fatal("fail-closed booking must hold a slot")
	}
}

func TestFailClosedReturnsSlotWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, false)
	f.setAvailability(t, "P1", 10, 2, 20)
	f.store.failNext(repository.BookingsKey, 2)

	if _, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20)); !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if got := f.available(t, "P1"); got != 2 {
		t.Fatalf("available = %d, want 2 after rollback", got)
	}
}

func TestWriteFailureEvictsExpiredBookings(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 5, 20)

	old := testNow.AddDate(0, 0, -40)
	recent := testNow.AddDate(0, 0, -5)
	seed := []*entity.Booking{
		{ID: "old-completed", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusCompleted, BookingTime: old},
		{ID: "old-cancelled", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusCancelled, BookingTime: old},
		{ID: "old-confirmed", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusConfirmed, BookingTime: old},
		{ID: "recent-completed", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusCompleted, BookingTime: recent},
	}
	if err := f.repo.Booking.SaveAll(ctx, seed); err != nil {
		t.Fatalf("seed bookings: %v", err)
	}

	f.store.failNext(repository.BookingsKey, 1)

	created, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	bookings, _ := f.repo.Booking.FindAll(ctx)
	ids := make(map[string]bool)
	for _, b := range bookings {
		ids[b.ID] = true
	}

	for _, id := range []string{"old-confirmed", "recent-completed", created.ID} {
		if !ids[id] {
			t.Errorf("booking %s should be kept", id)
		}
	}
	for _, id := range []string{"old-completed", "old-cancelled"} {
		if ids[id] {
			t.Errorf("booking %s should be evicted", id)
		}
	}
}

func TestWriteFailureKeepsBookingBeingClosed(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 4, 20)

	old := testNow.AddDate(0, 0, -40)
	seed := []*entity.Booking{
		{ID: "B1", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusConfirmed, BookingTime: old},
		{ID: "old-completed", UserID: "u", ParkingID: "P1", Status: entity.BookingStatusCompleted, BookingTime: old},
	}
	if err := f.repo.Booking.SaveAll(ctx, seed); err != nil {
		t.Fatalf("seed bookings: %v", err)
	}

	f.store.failNext(repository.BookingsKey, 1)

	cancelled, err := f.svc.CancelBooking(ctx, "B1")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != entity.BookingStatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", cancelled.Status)
	}

	stored, err := f.svc.GetBookingByID(ctx, "B1")
	if err != nil {
		t.Fatalf("GetBookingByID after cancel: %v", err)
	}
	if stored.Status != entity.BookingStatusCancelled || stored.CancelledTime == nil {
		t.Fatalf("stored = %+v, want CANCELLED with cancelled_time", stored.Booking)
	}

	if b, _ := f.repo.Booking.FindByID(ctx, "old-completed"); b != nil {
		t.Error("old-completed should still be evicted")
	}
	if got := f.available(t, "P1"); got != 5 {
		t.Fatalf("available = %d, want 5", got)
	}
}

func TestWriteFailureAfterCleanup(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)
	f.setAvailability(t, "P1", 10, 5, 20)
	f.store.failNext(repository.BookingsKey, 2)

	if _, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 20)); !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if got := f.available(t, "P1"); got != 5 {
		t.Fatalf("available = %d, want 5 (no decrement after a failed write)", got)
	}
}

func TestGetUserBookings(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)

	var ids []string
	for i := 0; i < 3; i++ {
		created, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 10))
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		ids = append(ids, created.ID)
	}
	other := bookingRequest("P1", 1, 10)
	other.UserID = "user-2"
	if _, err := f.svc.CreateBooking(ctx, other); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	mine, err := f.svc.GetUserBookings(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("got %d bookings, want 3", len(mine))
	}
	for i, b := range mine {
		if b.ID != ids[len(ids)-1-i] {
			t.Fatalf("bookings not newest first: position %d is %s", i, b.ID)
		}
	}

	if _, err := f.svc.GetUserBookings(ctx, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty user err = %v, want ErrValidation", err)
	}
}

func TestGetAllBookingsPaginates(t *testing.T) {
	ctx := context.Background()
	f := newLedger(t, true)

	for i := 0; i < 5; i++ {
		if _, err := f.svc.CreateBooking(ctx, bookingRequest("P1", 1, 10)); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
	}

	page, err := f.svc.GetAllBookings(ctx, &request.PaginatedRequest{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("GetAllBookings: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Data))
	}
	if page.Pagination.Total != 5 || page.Pagination.TotalPages != 3 {
		t.Fatalf("pagination = %+v", page.Pagination)
	}
}
