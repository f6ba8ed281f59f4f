package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/persistence/models"
)

// vehicleSortFields contains allowed sort fields for vehicles
var vehicleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"plate_number": true,
	"model":        true,
	"color":        true,
}

// GormVehicleRepository implements fleet.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id int64) (*fleet.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all vehicles with the given IDs. Missing IDs are
// silently omitted from the result.
func (r *GormVehicleRepository) FindByIDs(ctx context.Context, ids []int64) ([]fleet.Vehicle, error) {
	if len(ids) == 0 {
		return []fleet.Vehicle{}, nil
	}
	var vehicleModels []models.VehicleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicleModels).Error; err != nil {
		return nil, err
	}
	vehicles := make([]fleet.Vehicle, len(vehicleModels))
	for i := range vehicleModels {
		vehicles[i] = *vehicleModels[i].ToDomain()
	}
	return vehicles, nil
}

// FindAll finds all vehicles matching the filter
func (r *GormVehicleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.VehicleModel{}), filter, vehicleSortFields)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("plate_number ILIKE ? OR model ILIKE ?", pattern, pattern)
	}

	if err := query.Find(&vehicleModels).Error; err != nil {
		return nil, err
	}

	vehicles := make([]fleet.Vehicle, len(vehicleModels))
	for i := range vehicleModels {
		vehicles[i] = *vehicleModels[i].ToDomain()
	}
	return vehicles, nil
}

// ExistsByPlate checks whether a vehicle with the plate exists, excluding the given ID
func (r *GormVehicleRepository) ExistsByPlate(ctx context.Context, plate string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VehicleModel{}).
		Where("plate_number = ?", plate)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a vehicle, backfilling the generated ID
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	model := models.VehicleModelFromDomain(vehicle)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	vehicle.ID = model.ID
	return nil
}

// Delete deletes a vehicle
func (r *GormVehicleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.VehicleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ fleet.VehicleRepository = (*GormVehicleRepository)(nil)
