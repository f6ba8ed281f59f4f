package fleet

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
)

// DriverService handles driver registration and keeps the vehicle roster
// in sync. It is the only writer of roster entries: every driver create,
// update and delete updates the owning vehicle's roster in the same
// transaction.
type DriverService struct {
	txScope TransactionScope
	storage ObjectStorage
	logger  *zap.Logger
}

// NewDriverService creates a new driver service
func NewDriverService(txScope TransactionScope, storage ObjectStorage, logger *zap.Logger) *DriverService {
	return &DriverService{
		txScope: txScope,
		storage: storage,
		logger:  logger,
	}
}

// Create registers a new driver and mirrors it onto the assigned
// vehicle's roster.
func (s *DriverService) Create(ctx context.Context, input CreateDriverInput, createdBy int64) (*DriverDTO, error) {
	photoKey := ""
	if input.Photo != "" {
		key, err := storeImage(ctx, s.storage, "drivers", input.Photo)
		if err != nil {
			return nil, err
		}
		photoKey = key
	}

	var driver *fleet.Driver
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.DriverRepo().ExistsByPhone(ctx, input.Phone, 0)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A driver with this phone number already exists")
		}
		exists, err = repos.DriverRepo().ExistsByLicense(ctx, input.LicenseNumber, 0)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A driver with this license number already exists")
		}

		driver, err = fleet.NewDriver(input.FullName, input.Phone, input.LicenseNumber,
			input.VehicleNumber, fleet.DriverType(input.Type), input.VehicleID, createdBy)
		if err != nil {
			return err
		}
		driver.PhotoKey = photoKey

		if err := repos.DriverRepo().Save(ctx, driver); err != nil {
			return err
		}

		if driver.VehicleID != nil {
			return s.attachToVehicle(ctx, repos, driver)
		}
		return nil
	})
	if err != nil {
		s.releasePhoto(ctx, photoKey)
		return nil, err
	}

	s.logger.Info("Driver created",
		zap.Int64("driver_id", driver.ID),
		zap.String("license_number", driver.LicenseNumber))

	dto := ToDriverDTO(driver, s.storage)
	return &dto, nil
}

// List returns all drivers matching the filter
func (s *DriverService) List(ctx context.Context, filter shared.Filter) ([]DriverDTO, error) {
	var dtos []DriverDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		drivers, err := repos.DriverRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		dtos = make([]DriverDTO, len(drivers))
		for i := range drivers {
			dtos[i] = ToDriverDTO(&drivers[i], s.storage)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

// Get returns a single driver
func (s *DriverService) Get(ctx context.Context, id int64) (*DriverDTO, error) {
	var dto DriverDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		driver, err := repos.DriverRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		dto = ToDriverDTO(driver, s.storage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Update modifies a driver and re-syncs the roster of the affected
// vehicles. Moving a driver between vehicles prunes the old roster entry
// and adds one to the new vehicle atomically.
func (s *DriverService) Update(ctx context.Context, id int64, input UpdateDriverInput) (*DriverDTO, error) {
	var (
		dto           DriverDTO
		releasedPhoto string
		newPhotoKey   string
	)

	if input.Photo != nil && *input.Photo != "" {
		key, err := storeImage(ctx, s.storage, "drivers", *input.Photo)
		if err != nil {
			return nil, err
		}
		newPhotoKey = key
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		driver, err := repos.DriverRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Phone != nil && *input.Phone != driver.Phone {
			exists, err := repos.DriverRepo().ExistsByPhone(ctx, *input.Phone, id)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError("ALREADY_EXISTS", "A driver with this phone number already exists")
			}
		}
		if input.LicenseNumber != nil && *input.LicenseNumber != driver.LicenseNumber {
			exists, err := repos.DriverRepo().ExistsByLicense(ctx, *input.LicenseNumber, id)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError("ALREADY_EXISTS", "A driver with this license number already exists")
			}
		}

		update := fleet.DriverUpdate{
			FullName:      input.FullName,
			Phone:         input.Phone,
			LicenseNumber: input.LicenseNumber,
			VehicleNumber: input.VehicleNumber,
		}
		if input.Type != nil {
			t := fleet.DriverType(*input.Type)
			update.Type = &t
		}
		if input.Status != nil {
			st := fleet.DriverStatus(*input.Status)
			update.Status = &st
		}
		if err := driver.Apply(update); err != nil {
			return err
		}
		if newPhotoKey != "" {
			releasedPhoto = driver.SetPhoto(newPhotoKey)
		}

		oldVehicleID := driver.VehicleID
		if input.VehicleID != nil {
			driver.VehicleID = input.VehicleID
		}

		if err := repos.DriverRepo().Save(ctx, driver); err != nil {
			return err
		}

		if err := s.syncRoster(ctx, repos, driver, oldVehicleID); err != nil {
			return err
		}

		dto = ToDriverDTO(driver, s.storage)
		return nil
	})
	if err != nil {
		s.releasePhoto(ctx, newPhotoKey)
		return nil, err
	}

	s.releasePhoto(ctx, releasedPhoto)
	return &dto, nil
}

// Delete removes a driver, prunes its roster entry from the assigned
// vehicle and releases its photo.
func (s *DriverService) Delete(ctx context.Context, id int64) error {
	var photoKey string
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		driver, err := repos.DriverRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		photoKey = driver.PhotoKey

		if driver.VehicleID != nil {
			if err := s.detachFromVehicle(ctx, repos, *driver.VehicleID, driver.ID); err != nil {
				return err
			}
		}

		return repos.DriverRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.releasePhoto(ctx, photoKey)
	s.logger.Info("Driver deleted", zap.Int64("driver_id", id))
	return nil
}

// attachToVehicle mirrors the driver onto its vehicle's roster. A vehicle
// id that does not resolve is non-fatal: the driver stands on its own and
// no roster entry is written.
func (s *DriverService) attachToVehicle(ctx context.Context, repos TransactionalRepositories, driver *fleet.Driver) error {
	vehicle, err := repos.VehicleRepo().FindByID(ctx, *driver.VehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Assigned vehicle does not exist, roster entry skipped",
				zap.Int64("driver_id", driver.ID),
				zap.Int64("vehicle_id", *driver.VehicleID))
			return nil
		}
		return err
	}
	if err := vehicle.AddRosterEntry(driver.RosterEntry()); err != nil {
		return err
	}
	return repos.VehicleRepo().Save(ctx, vehicle)
}

// detachFromVehicle prunes the driver's entry from a vehicle roster.
// A missing vehicle or entry is ignored; the ledger converges either way.
func (s *DriverService) detachFromVehicle(ctx context.Context, repos TransactionalRepositories, vehicleID, driverID int64) error {
	vehicle, err := repos.VehicleRepo().FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if !vehicle.RemoveRosterEntry(driverID) {
		return nil
	}
	return repos.VehicleRepo().Save(ctx, vehicle)
}

// syncRoster propagates a driver change to the affected vehicle rosters
func (s *DriverService) syncRoster(ctx context.Context, repos TransactionalRepositories, driver *fleet.Driver, oldVehicleID *int64) error {
	sameVehicle := oldVehicleID != nil && driver.VehicleID != nil && *oldVehicleID == *driver.VehicleID

	if sameVehicle {
		vehicle, err := repos.VehicleRepo().FindByID(ctx, *driver.VehicleID)
		if err != nil {
			return err
		}
		if !vehicle.SyncRosterEntry(driver.RosterEntry()) {
			if err := vehicle.AddRosterEntry(driver.RosterEntry()); err != nil {
				return err
			}
		}
		return repos.VehicleRepo().Save(ctx, vehicle)
	}

	if oldVehicleID != nil {
		if err := s.detachFromVehicle(ctx, repos, *oldVehicleID, driver.ID); err != nil {
			return err
		}
	}
	if driver.VehicleID != nil {
		return s.attachToVehicle(ctx, repos, driver)
	}
	return nil
}

// releasePhoto best-effort deletes a photo blob; failures are logged
func (s *DriverService) releasePhoto(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete driver photo", zap.String("key", key), zap.Error(err))
	}
}
