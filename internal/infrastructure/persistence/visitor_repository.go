package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/persistence/models"
)

// visitorSortFields contains allowed sort fields for visitors
var visitorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"id_number":  true,
	"company":    true,
}

// GormVisitorRepository implements fleet.VisitorRepository using GORM
type GormVisitorRepository struct {
	db *gorm.DB
}

// NewGormVisitorRepository creates a new GormVisitorRepository
func NewGormVisitorRepository(db *gorm.DB) *GormVisitorRepository {
	return &GormVisitorRepository{db: db}
}

// FindByID finds a visitor by its ID
func (r *GormVisitorRepository) FindByID(ctx context.Context, id int64) (*fleet.Visitor, error) {
	var model models.VisitorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all visitors with the given IDs. Missing IDs are
// silently omitted from the result.
func (r *GormVisitorRepository) FindByIDs(ctx context.Context, ids []int64) ([]fleet.Visitor, error) {
	if len(ids) == 0 {
		return []fleet.Visitor{}, nil
	}
	var visitorModels []models.VisitorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&visitorModels).Error; err != nil {
		return nil, err
	}
	visitors := make([]fleet.Visitor, len(visitorModels))
	for i := range visitorModels {
		visitors[i] = *visitorModels[i].ToDomain()
	}
	return visitors, nil
}

// FindAll finds all visitors matching the filter
func (r *GormVisitorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Visitor, error) {
	var visitorModels []models.VisitorModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.VisitorModel{}), filter, visitorSortFields)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR id_number ILIKE ? OR company ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Find(&visitorModels).Error; err != nil {
		return nil, err
	}

	visitors := make([]fleet.Visitor, len(visitorModels))
	for i := range visitorModels {
		visitors[i] = *visitorModels[i].ToDomain()
	}
	return visitors, nil
}

// ExistsByIDNumber checks whether a visitor with the ID number exists, excluding the given ID
func (r *GormVisitorRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VisitorModel{}).
		Where("id_number = ?", idNumber)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a visitor, backfilling the generated ID
func (r *GormVisitorRepository) Save(ctx context.Context, visitor *fleet.Visitor) error {
	model := models.VisitorModelFromDomain(visitor)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	visitor.ID = model.ID
	return nil
}

// Delete deletes a visitor
func (r *GormVisitorRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.VisitorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ fleet.VisitorRepository = (*GormVisitorRepository)(nil)
