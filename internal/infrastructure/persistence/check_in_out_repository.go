package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatesec/backend/internal/domain/security"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/persistence/models"
)

// recordSortFields contains allowed sort fields for ledger records
var recordSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"check_in_time":  true,
	"check_out_time": true,
	"status":         true,
	"type":           true,
}

// GormCheckInOutRepository implements security.CheckInOutRepository using GORM
type GormCheckInOutRepository struct {
	db *gorm.DB
}

// NewGormCheckInOutRepository creates a new GormCheckInOutRepository
func NewGormCheckInOutRepository(db *gorm.DB) *GormCheckInOutRepository {
	return &GormCheckInOutRepository{db: db}
}

// FindByID finds a ledger record by its ID
func (r *GormCheckInOutRepository) FindByID(ctx context.Context, id int64) (*security.CheckInOutRecord, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDLocked finds a ledger record by its ID under a FOR UPDATE row lock.
// Must be called inside a transaction.
func (r *GormCheckInOutRepository) FindByIDLocked(ctx context.Context, id int64) (*security.CheckInOutRecord, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCheckInOutRepository) findByID(db *gorm.DB, id int64) (*security.CheckInOutRecord, error) {
	var model models.CheckInOutModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all ledger records matching the filter, newest-first by default
func (r *GormCheckInOutRepository) FindAll(ctx context.Context, filter security.RecordFilter) ([]security.CheckInOutRecord, error) {
	var recordModels []models.CheckInOutModel
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.CheckInOutModel{}), filter)
	query = applyFilter(query, filter.Filter, recordSortFields)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]security.CheckInOutRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Count counts ledger records matching the filter, ignoring pagination
func (r *GormCheckInOutRepository) Count(ctx context.Context, filter security.RecordFilter) (int64, error) {
	var count int64
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&models.CheckInOutModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActiveByType returns all checked-in records of the given type
func (r *GormCheckInOutRepository) FindActiveByType(ctx context.Context, itemType security.ItemType) ([]security.CheckInOutRecord, error) {
	return r.findActiveByType(r.db.WithContext(ctx), itemType)
}

// FindActiveByTypeLocked returns all checked-in records of the given type
// for the check-in conflict check. Must be called inside a transaction.
// Row locks cannot serialize two first check-ins (an empty active set has
// no rows to lock), so the read is preceded by a transaction-scoped
// advisory lock keyed on the type; it is released at commit or rollback.
func (r *GormCheckInOutRepository) FindActiveByTypeLocked(ctx context.Context, itemType security.ItemType) ([]security.CheckInOutRecord, error) {
	tx := r.db.WithContext(ctx)
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", string(itemType)).Error; err != nil {
		return nil, err
	}
	return r.findActiveByType(tx.Clauses(clause.Locking{Strength: "UPDATE"}), itemType)
}

func (r *GormCheckInOutRepository) findActiveByType(db *gorm.DB, itemType security.ItemType) ([]security.CheckInOutRecord, error) {
	var recordModels []models.CheckInOutModel
	err := db.
		Where("type = ? AND status = ?", string(itemType), string(security.StatusCheckedIn)).
		Order("check_in_time ASC").
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]security.CheckInOutRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records, nil
}

// Save creates or updates a ledger record, backfilling the generated ID
func (r *GormCheckInOutRepository) Save(ctx context.Context, record *security.CheckInOutRecord) error {
	model := models.CheckInOutModelFromDomain(record)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	record.ID = model.ID
	return nil
}

// Delete deletes a ledger record
func (r *GormCheckInOutRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.CheckInOutModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyRecordFilter applies the ledger-specific filter criteria
func applyRecordFilter(query *gorm.DB, filter security.RecordFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CheckpointID != nil {
		query = query.Where("checkpoint_id = ?", *filter.CheckpointID)
	}
	return query
}

var _ security.CheckInOutRepository = (*GormCheckInOutRepository)(nil)
