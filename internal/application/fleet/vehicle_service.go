package fleet

import (
	"context"

	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
)

// VehicleService handles vehicle registration and lifecycle
type VehicleService struct {
	vehicleRepo fleet.VehicleRepository
	storage     ObjectStorage
	logger      *zap.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo fleet.VehicleRepository, storage ObjectStorage, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Create registers a new vehicle, storing any uploaded images
func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error) {
	exists, err := s.vehicleRepo.ExistsByPlate(ctx, input.PlateNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A vehicle with this plate number already exists")
	}

	vehicle, err := fleet.NewVehicle(input.PlateNumber, input.Model, input.Color, input.OwnerID)
	if err != nil {
		return nil, err
	}

	keys, err := s.storeImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	vehicle.Images = keys

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		s.releaseImages(ctx, keys)
		return nil, err
	}

	s.logger.Info("Vehicle created",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.String("plate_number", vehicle.PlateNumber))

	dto := ToVehicleDTO(vehicle, s.storage)
	return &dto, nil
}

// List returns all vehicles matching the filter
func (s *VehicleService) List(ctx context.Context, filter shared.Filter) ([]VehicleDTO, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]VehicleDTO, len(vehicles))
	for i := range vehicles {
		dtos[i] = ToVehicleDTO(&vehicles[i], s.storage)
	}
	return dtos, nil
}

// Get returns a single vehicle
func (s *VehicleService) Get(ctx context.Context, id int64) (*VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToVehicleDTO(vehicle, s.storage)
	return &dto, nil
}

// Update modifies a vehicle. A non-nil Images slice replaces the whole
// image set and releases the replaced blobs.
func (s *VehicleService) Update(ctx context.Context, id int64, input UpdateVehicleInput) (*VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PlateNumber != "" && input.PlateNumber != vehicle.PlateNumber {
		exists, err := s.vehicleRepo.ExistsByPlate(ctx, input.PlateNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A vehicle with this plate number already exists")
		}
	}

	if err := vehicle.Update(input.PlateNumber, input.Model, input.Color); err != nil {
		return nil, err
	}
	if input.OwnerID != nil {
		vehicle.OwnerID = input.OwnerID
	}

	var released []string
	if input.Images != nil {
		keys, err := s.storeImages(ctx, input.Images)
		if err != nil {
			return nil, err
		}
		released = vehicle.ReplaceImages(keys)
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}
	s.releaseImages(ctx, released)

	dto := ToVehicleDTO(vehicle, s.storage)
	return &dto, nil
}

// Delete removes a vehicle and releases its stored images
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.releaseImages(ctx, vehicle.Images)

	s.logger.Info("Vehicle deleted",
		zap.Int64("vehicle_id", id),
		zap.String("plate_number", vehicle.PlateNumber))
	return nil
}

func (s *VehicleService) storeImages(ctx context.Context, dataURLs []string) ([]string, error) {
	keys := make([]string, 0, len(dataURLs))
	for _, dataURL := range dataURLs {
		key, err := storeImage(ctx, s.storage, "vehicles", dataURL)
		if err != nil {
			s.releaseImages(ctx, keys)
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// releaseImages best-effort deletes blobs; failures are logged, not returned
func (s *VehicleService) releaseImages(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete vehicle image", zap.String("key", key), zap.Error(err))
		}
	}
}
