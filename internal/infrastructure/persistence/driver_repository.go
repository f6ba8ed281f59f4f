package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/persistence/models"
)

// driverSortFields contains allowed sort fields for drivers
var driverSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"full_name":      true,
	"phone":          true,
	"license_number": true,
	"type":           true,
	"status":         true,
}

// GormDriverRepository implements fleet.DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByID finds a driver by its ID
func (r *GormDriverRepository) FindByID(ctx context.Context, id int64) (*fleet.Driver, error) {
	var model models.DriverModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all drivers matching the filter
func (r *GormDriverRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Driver, error) {
	var driverModels []models.DriverModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.DriverModel{}), filter, driverSortFields)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR phone ILIKE ? OR license_number ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Find(&driverModels).Error; err != nil {
		return nil, err
	}

	drivers := make([]fleet.Driver, len(driverModels))
	for i := range driverModels {
		drivers[i] = *driverModels[i].ToDomain()
	}
	return drivers, nil
}

// ExistsByPhone checks whether a driver with the phone exists, excluding the given ID
func (r *GormDriverRepository) ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.exists(ctx, "phone = ?", phone, excludeID)
}

// ExistsByLicense checks whether a driver with the license exists, excluding the given ID
func (r *GormDriverRepository) ExistsByLicense(ctx context.Context, licenseNumber string, excludeID int64) (bool, error) {
	return r.exists(ctx, "license_number = ?", licenseNumber, excludeID)
}

func (r *GormDriverRepository) exists(ctx context.Context, cond, value string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.DriverModel{}).Where(cond, value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a driver, backfilling the generated ID
func (r *GormDriverRepository) Save(ctx context.Context, driver *fleet.Driver) error {
	model := models.DriverModelFromDomain(driver)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	driver.ID = model.ID
	return nil
}

// Delete deletes a driver
func (r *GormDriverRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.DriverModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
