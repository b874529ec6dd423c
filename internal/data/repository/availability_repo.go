package repository

import (
	"context"
	"fmt"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/pkg/database"

	"go.uber.org/zap"
)

// AvailabilityRepository is the slot-count store keyed by parking id.
//
// Every method is an unlocked read-modify-write of the whole availability document.
// Two concurrent mutations of the same id can therefore lose an update; callers that
// need arbitration must provide it outside this repository.
type AvailabilityRepository interface {
	Get(ctx context.Context, id string) (*entity.AvailabilityRecord, error)
	All(ctx context.Context) (map[string]entity.AvailabilityRecord, error)
	Upsert(ctx context.Context, id string, record entity.AvailabilityRecord) error
	Decrement(ctx context.Context, id string) (bool, error)
	Increment(ctx context.Context, id string) (bool, error)
	SeedMissing(ctx context.Context, venues []entity.Venue, seed func(entity.Venue) entity.AvailabilityRecord) (int, error)
}

type availabilityRepository struct {
	store database.DocumentStore
	log   *zap.Logger
	now   func() time.Time
}

func NewAvailabilityRepository(store database.DocumentStore, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		store: store,
		log:   log.With(zap.String("repository", "availability")),
		now:   time.Now,
	}
}

func (r *availabilityRepository) load(ctx context.Context) (map[string]entity.AvailabilityRecord, error) {
	records := make(map[string]entity.AvailabilityRecord)
	if _, err := loadDocument(ctx, r.store, AvailabilityKey, &records); err != nil {
		r.log.Error("Failed to load availability", zap.Error(err))
		return nil, fmt.Errorf("load availability: %w", err)
	}
	return records, nil
}

func (r *availabilityRepository) save(ctx context.Context, records map[string]entity.AvailabilityRecord) error {
	if err := saveDocument(ctx, r.store, AvailabilityKey, records); err != nil {
		r.log.Error("Failed to save availability",
			zap.Error(err),
			zap.Int("records", len(records)),
		)
		return fmt.Errorf("save availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id string) (*entity.AvailabilityRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *availabilityRepository) All(ctx context.Context) (map[string]entity.AvailabilityRecord, error) {
	return r.load(ctx)
}

func (r *availabilityRepository) Upsert(ctx context.Context, id string, record entity.AvailabilityRecord) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	record.LastUpdated = r.now().UTC()
	records[id] = record
	return r.save(ctx, records)
}

// Decrement takes one slot. It is a no-op returning false when the record is
// missing or already at zero.
func (r *availabilityRepository) Decrement(ctx context.Context, id string) (bool, error) {
	records, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	record, ok := records[id]
	if !ok || record.AvailableSlots <= 0 {
		return false, nil
	}

	record.AvailableSlots--
	record.LastUpdated = r.now().UTC()
	records[id] = record

	if err := r.save(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// Increment returns one slot. It does not clamp to TotalSlots.
func (r *availabilityRepository) Increment(ctx context.Context, id string) (bool, error) {
	records, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	record, ok := records[id]
	if !ok {
		return false, nil
	}

	record.AvailableSlots++
	record.LastUpdated = r.now().UTC()
	records[id] = record

	if err := r.save(ctx, records); err != nil {
		return false, err
	}
	return true, nil
}

// SeedMissing creates a record for every venue id not yet present and returns how many
// were added. Existing records are left untouched.
func (r *availabilityRepository) SeedMissing(ctx context.Context, venues []entity.Venue, seed func(entity.Venue) entity.AvailabilityRecord) (int, error) {
	records, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, venue := range venues {
		if _, ok := records[venue.ID]; ok {
			continue
		}
		record := seed(venue)
		record.LastUpdated = r.now().UTC()
		records[venue.ID] = record
		added++
	}

	if added == 0 {
		return 0, nil
	}

	if err := r.save(ctx, records); err != nil {
		return 0, err
	}

	r.log.Debug("Seeded availability", zap.Int("added", added))
	return added, nil
}
