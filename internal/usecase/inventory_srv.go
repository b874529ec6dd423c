package usecase

import (
	"context"
	"fmt"
	"time"

	"smartpark/internal/data/entity"
	"smartpark/internal/data/repository"
	"smartpark/internal/dto/request"
	"smartpark/internal/dto/response"
	"smartpark/pkg/geo"
	"smartpark/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService manages the admin parking lot list.
type InventoryService interface {
	ListParkingLots(ctx context.Context) ([]response.ParkingLotResponse, error)
	CreateParkingLot(ctx context.Context, req *request.CreateParkingLotRequest) (*response.ParkingLotResponse, error)
	UpdateParkingLot(ctx context.Context, id string, req *request.UpdateParkingLotRequest) (*response.ParkingLotResponse, error)
	DeleteParkingLot(ctx context.Context, id string) error
}

type inventoryService struct {
	repo repository.InventoryRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewInventoryService(repo repository.InventoryRepository, log *zap.Logger) InventoryService {
	return &inventoryService{
		repo: repo,
		log:  log.With(zap.String("service", "inventory")),
		now:  time.Now,
	}
}

// defaultParkingLots is the starting inventory when none was ever saved.
func defaultParkingLots(now time.Time) []*entity.ParkingLot {
	lot := func(name, address string, lat, lng float64, total, available, price int, kind entity.ParkingType) *entity.ParkingLot {
		return &entity.ParkingLot{
			Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:           name,
			Address:        address,
			Location:       geo.Coordinates{Lat: lat, Lng: lng},
			TotalSlots:     total,
			AvailableSlots: available,
			Price:          price,
			Type:           kind,
		}
	}

	return []*entity.ParkingLot{
		lot("Connaught Place Parking", "Connaught Place, New Delhi", 28.6304, 77.2177, 100, 45, 50, entity.ParkingTypeCovered),
		lot("India Gate Parking", "India Gate, New Delhi", 28.6129, 77.2295, 150, 80, 40, entity.ParkingTypeOpen),
		lot("Saket Mall Parking", "Saket, New Delhi", 28.5244, 77.2066, 200, 120, 60, entity.ParkingTypeCovered),
	}
}

// lots loads the inventory, writing the default list on first use.
func (s *inventoryService) lots(ctx context.Context) ([]*entity.ParkingLot, error) {
	lots, initialized, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load inventory: %w", ErrPersistence, err)
	}
	if initialized {
		return lots, nil
	}

	lots = defaultParkingLots(s.now().UTC())
	if err := s.repo.SaveAll(ctx, lots); err != nil {
		return nil, fmt.Errorf("%w: initialize inventory: %w", ErrPersistence, err)
	}
	s.log.Info("Inventory initialized with defaults", zap.Int("lots", len(lots)))
	return lots, nil
}

func (s *inventoryService) ListParkingLots(ctx context.Context) ([]response.ParkingLotResponse, error) {
	lots, err := s.lots(ctx)
	if err != nil {
		s.log.Error("Failed to list parking lots", zap.Error(err))
		return nil, err
	}

	result := make([]response.ParkingLotResponse, len(lots))
	for i, lot := range lots {
		result[i] = response.NewParkingLotResponse(lot)
	}
	return result, nil
}

func (s *inventoryService) CreateParkingLot(ctx context.Context, req *request.CreateParkingLotRequest) (*response.ParkingLotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create parking lot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// make sure the defaults exist before the first admin addition
	if _, err := s.lots(ctx); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	lot := &entity.ParkingLot{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:           req.Name,
		Address:        req.Address,
		Location:       geo.Coordinates{Lat: req.Lat, Lng: req.Lng},
		TotalSlots:     req.TotalSlots,
		AvailableSlots: req.TotalSlots,
		Price:          req.Price,
		Type:           entity.ParkingType(req.Type),
	}

	if err := s.repo.Create(ctx, lot); err != nil {
		s.log.Error("Failed to create parking lot", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.log.Info("Parking lot created", zap.String("id", lot.ID.String()), zap.String("name", lot.Name))

	result := response.NewParkingLotResponse(lot)
	return &result, nil
}

func (s *inventoryService) UpdateParkingLot(ctx context.Context, id string, req *request.UpdateParkingLotRequest) (*response.ParkingLotResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	lot, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.Lat != nil {
		lot.Location.Lat = *req.Lat
	}
	if req.Lng != nil {
		lot.Location.Lng = *req.Lng
	}
	if req.TotalSlots != nil {
		lot.TotalSlots = *req.TotalSlots
	}
	if req.AvailableSlots != nil {
		lot.AvailableSlots = *req.AvailableSlots
	}
	if req.Price != nil {
		lot.Price = *req.Price
	}
	if req.Type != nil {
		lot.Type = entity.ParkingType(*req.Type)
	}

	if lot.AvailableSlots > lot.TotalSlots {
		return nil, fmt.Errorf("%w: available_slots cannot exceed total_slots", ErrValidation)
	}

	lot.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, lot); err != nil {
		s.log.Error("Failed to update parking lot", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	result := response.NewParkingLotResponse(lot)
	return &result, nil
}

func (s *inventoryService) DeleteParkingLot(ctx context.Context, id string) error {
	lot, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	lot.DeletedAt = &now
	lot.UpdatedAt = now

	if err := s.repo.Update(ctx, lot); err != nil {
		s.log.Error("Failed to delete parking lot", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.log.Info("Parking lot deleted", zap.String("id", id))
	return nil
}

func (s *inventoryService) find(ctx context.Context, id string) (*entity.ParkingLot, error) {
	lotID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid parking lot id %s", ErrValidation, id)
	}

	lot, err := s.repo.FindByID(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("%w: find parking lot: %w", ErrPersistence, err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: parking lot %s", ErrNotFound, id)
	}
	return lot, nil
}
