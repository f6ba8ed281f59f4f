package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gatesec/backend/internal/domain/security"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/persistence/models"
)

// checkpointSortFields contains allowed sort fields for checkpoints
var checkpointSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"location":   true,
}

// GormCheckpointRepository implements security.CheckpointRepository using GORM
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewGormCheckpointRepository creates a new GormCheckpointRepository
func NewGormCheckpointRepository(db *gorm.DB) *GormCheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// FindByID finds a checkpoint by its ID
func (r *GormCheckpointRepository) FindByID(ctx context.Context, id int64) (*security.Checkpoint, error) {
	var model models.CheckpointModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all checkpoints matching the filter
func (r *GormCheckpointRepository) FindAll(ctx context.Context, filter shared.Filter) ([]security.Checkpoint, error) {
	var checkpointModels []models.CheckpointModel
	query := applyFilter(r.db.WithContext(ctx).Model(&models.CheckpointModel{}), filter, checkpointSortFields)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR location ILIKE ?", pattern, pattern)
	}

	if err := query.Find(&checkpointModels).Error; err != nil {
		return nil, err
	}

	checkpoints := make([]security.Checkpoint, len(checkpointModels))
	for i := range checkpointModels {
		checkpoints[i] = *checkpointModels[i].ToDomain()
	}
	return checkpoints, nil
}

// ExistsByName checks whether a checkpoint with the name exists, excluding the given ID
func (r *GormCheckpointRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CheckpointModel{}).
		Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a checkpoint, backfilling the generated ID
func (r *GormCheckpointRepository) Save(ctx context.Context, checkpoint *security.Checkpoint) error {
	model := models.CheckpointModelFromDomain(checkpoint)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	checkpoint.ID = model.ID
	return nil
}

// Delete deletes a checkpoint
func (r *GormCheckpointRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CheckpointModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ security.CheckpointRepository = (*GormCheckpointRepository)(nil)
