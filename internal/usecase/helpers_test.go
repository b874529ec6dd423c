package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/pkg/database"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// flakyStore fails the next failPuts writes to failKey with a quota error.
type flakyStore struct {
	database.DocumentStore
	mu       sync.Mutex
	failKey  string
	failPuts int
}

func (s *flakyStore) failNext(key string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKey, s.failPuts = key, n
}

func (s *flakyStore) Put(ctx context.Context, key string, body []byte) error {
	s.mu.Lock()
	if key == s.failKey && s.failPuts > 0 {
		s.failPuts--
		s.mu.Unlock()
		return database.ErrQuotaExceeded
	}
	s.mu.Unlock()
	return s.DocumentStore.Put(ctx, key, body)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []entity.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]entity.BookingEventType, len(p.events))
	for i, e := range p.events {
		result[i] = e.Type
	}
	return result
}

// tickingClock advances by one minute on every call.
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	svc       *bookingService
	repo      *repository.Repository
	store     *flakyStore
	publisher *recordingPublisher
}

func newLedger(t *testing.T, failOpen bool) *ledgerFixture {
	t.Helper()

	store := &flakyStore{DocumentStore: database.NewMemoryStore(0)}
	log := zaptest.NewLogger(t)
	repo := repository.NewRepository(store, log)
	publisher := &recordingPublisher{}

	svc := NewBookingService(repo, publisher, utils.BookingConfig{FailOpen: failOpen, RetentionDays: 30}, log).(*bookingService)
	svc.now = tickingClock(testNow)

	return &ledgerFixture{svc: svc, repo: repo, store: store, publisher: publisher}
}

func (f *ledgerFixture) setAvailability(t *testing.T, id string, total, available, price int) {
	t.Helper()
	err := f.repo.Availability.Upsert(context.Background(), id, entity.AvailabilityRecord{
		TotalSlots: total, AvailableSlots: available, Price: price,
	})
	if err != nil {
		t.Fatalf("Upsert %s: %v", id, err)
	}
}

func (f *ledgerFixture) available(t *testing.T, id string) int {
	t.Helper()
	record, err := f.repo.Availability.Get(context.Background(), id)
	if err != nil || record == nil {
		t.Fatalf("Get %s = %v, %v", id, record, err)
	}
	return record.AvailableSlots
}

// fakePlaces returns errs in order, then venues.
type fakePlaces struct {
	mu     sync.Mutex
	calls  int
	errs   []error
	venues []entity.Venue
}

func (p *fakePlaces) NearbyParking(_ context.Context, _ geo.Coordinates, _ float64) ([]entity.Venue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= len(p.errs) {
		return nil, p.errs[p.calls-1]
	}
	return p.venues, nil
}

type fixedSeeder struct{ record entity.AvailabilityRecord }

func (s fixedSeeder) Seed(entity.Venue) entity.AvailabilityRecord { return s.record }

func nopLogger() *zap.Logger { return zap.NewNop() }
