package repository

import (
	"context"
	"fmt"

	"smartpark/internal/data/entity"
	"smartpark/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryRepository stores admin-managed parking lots. Deleted lots are kept with DeletedAt set.
type InventoryRepository interface {
	// FindAll returns live lots; initialized is false when no inventory was ever saved.
	FindAll(ctx context.Context) (lots []*entity.ParkingLot, initialized bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error)
	SaveAll(ctx context.Context, lots []*entity.ParkingLot) error
	Create(ctx context.Context, lot *entity.ParkingLot) error
	Update(ctx context.Context, lot *entity.ParkingLot) error
}

type inventoryRepository struct {
	store database.DocumentStore
	log   *zap.Logger
}

func NewInventoryRepository(store database.DocumentStore, log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		store: store,
		log:   log.With(zap.String("repository", "inventory")),
	}
}

func (r *inventoryRepository) loadAll(ctx context.Context) ([]*entity.ParkingLot, bool, error) {
	var lots []*entity.ParkingLot
	found, err := loadDocument(ctx, r.store, InventoryKey, &lots)
	if err != nil {
		r.log.Error("Failed to load inventory", zap.Error(err))
		return nil, false, fmt.Errorf("load inventory: %w", err)
	}
	return lots, found, nil
}

func (r *inventoryRepository) FindAll(ctx context.Context) ([]*entity.ParkingLot, bool, error) {
	lots, found, err := r.loadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	live := make([]*entity.ParkingLot, 0, len(lots))
	for _, lot := range lots {
		if !lot.IsDeleted() {
			live = append(live, lot)
		}
	}
	return live, found, nil
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error) {
	lots, _, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, lot := range lots {
		if lot.ID == id && !lot.IsDeleted() {
			return lot, nil
		}
	}
	return nil, nil
}

func (r *inventoryRepository) SaveAll(ctx context.Context, lots []*entity.ParkingLot) error {
	if lots == nil {
		lots = []*entity.ParkingLot{}
	}
	if err := saveDocument(ctx, r.store, InventoryKey, lots); err != nil {
		r.log.Error("Failed to save inventory", zap.Error(err), zap.Int("count", len(lots)))
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Create(ctx context.Context, lot *entity.ParkingLot) error {
	lots, _, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	lots = append(lots, lot)
	if err := r.SaveAll(ctx, lots); err != nil {
		return fmt.Errorf("create parking lot %s: %w", lot.ID, err)
	}
	return nil
}

// Update replaces the stored lot with the same id, including soft-deleted state.
func (r *inventoryRepository) Update(ctx context.Context, lot *entity.ParkingLot) error {
	lots, _, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i, existing := range lots {
		if existing.ID == lot.ID {
			lots[i] = lot
			if err := r.SaveAll(ctx, lots); err != nil {
				return fmt.Errorf("update parking lot %s: %w", lot.ID, err)
			}
			return nil
		}
	}

	return fmt.Errorf("parking lot %s not found", lot.ID)
}
