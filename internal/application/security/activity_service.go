package security

import (
	"context"
	"time"

	"go.uber.org/zap"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/security"
	"github.com/gatesec/backend/internal/domain/shared"
)

// ActivityService owns the checkpoint activity ledger. Check-ins are
// conflict-checked against every active record of the same type under
// row locks, so two concurrent check-ins sharing a subject cannot both
// commit.
type ActivityService struct {
	txScope        TransactionScope
	checkpointRepo security.CheckpointRepository
	vehicleRepo    fleet.VehicleRepository
	visitorRepo    fleet.VisitorRepository
	storage        fleetapp.ObjectStorage
	logger         *zap.Logger
	now            func() time.Time
}

// NewActivityService creates a new activity ledger service
func NewActivityService(
	txScope TransactionScope,
	checkpointRepo security.CheckpointRepository,
	vehicleRepo fleet.VehicleRepository,
	visitorRepo fleet.VisitorRepository,
	storage fleetapp.ObjectStorage,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		txScope:        txScope,
		checkpointRepo: checkpointRepo,
		vehicleRepo:    vehicleRepo,
		visitorRepo:    visitorRepo,
		storage:        storage,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckIn opens a ledger record for one or more subjects at a checkpoint.
// The record snapshots the checkpoint name and the subject display names;
// submitted names win over the fleet data, which only serves as fallback.
// Fails with a conflict if any subject is already covered by an active
// record of the same type.
func (s *ActivityService) CheckIn(ctx context.Context, input CheckInInput, actor int64) (*RecordDTO, error) {
	itemType := security.ItemType(input.Type)
	if err := security.ValidateItemType(itemType); err != nil {
		return nil, err
	}

	if len(input.ItemNames) > 0 && len(input.ItemNames) != len(input.ItemIDs) {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Item names must match the item list")
	}

	items, err := security.NewItemSet(input.ItemIDs)
	if err != nil {
		return nil, err
	}

	checkpoint, err := s.checkpointRepo.FindByID(ctx, input.CheckpointID)
	if err != nil {
		return nil, err
	}

	itemNames, err := s.resolveItemNames(ctx, itemType, items)
	if err != nil {
		return nil, err
	}
	if len(input.ItemNames) > 0 {
		// Item sets drop duplicate IDs keeping first-occurrence order, so
		// the submitted names are realigned by ID before snapshotting.
		submitted := make(map[int64]string, len(input.ItemIDs))
		for i, id := range input.ItemIDs {
			if _, ok := submitted[id]; !ok {
				submitted[id] = input.ItemNames[i]
			}
		}
		for i, id := range items {
			if name, ok := submitted[id]; ok && name != "" {
				itemNames[i] = name
			}
		}
	}

	var record *security.CheckInOutRecord
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		active, err := repos.RecordRepo().FindActiveByTypeLocked(ctx, itemType)
		if err != nil {
			return err
		}
		for i := range active {
			if active[i].Items.Overlaps(items) {
				return security.AlreadyCheckedInError(itemType)
			}
		}

		record, err = security.NewCheckInOutRecord(checkpoint.ID, checkpoint.Name,
			itemType, items, itemNames, input.Shift, input.Purpose, actor, s.now())
		if err != nil {
			return err
		}
		return repos.RecordRepo().Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Checked in",
		zap.Int64("record_id", record.ID),
		zap.String("type", string(itemType)),
		zap.Int64s("item_ids", record.Items),
		zap.Int64("checkpoint_id", checkpoint.ID))

	return s.toRecordDTO(ctx, record)
}

// CheckOut closes a ledger record. The record is locked for the state
// transition so a concurrent checkout of the same record conflicts
// instead of double-applying.
func (s *ActivityService) CheckOut(ctx context.Context, id, actor int64) (*RecordDTO, error) {
	var record *security.CheckInOutRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByIDLocked(ctx, id)
		if err != nil {
			return err
		}
		if err := record.CheckOut(actor, s.now()); err != nil {
			return err
		}
		return repos.RecordRepo().Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Checked out",
		zap.Int64("record_id", record.ID),
		zap.String("type", string(record.Type)))

	return s.toRecordDTO(ctx, record)
}

// List returns a page of ledger records, newest first
func (s *ActivityService) List(ctx context.Context, input ListRecordsInput) (*RecordListDTO, error) {
	filter := security.RecordFilter{Filter: shared.DefaultFilter()}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Type != "" {
		t := security.ItemType(input.Type)
		if err := security.ValidateItemType(t); err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	if input.Status != "" {
		st := security.RecordStatus(input.Status)
		if st != security.StatusCheckedIn && st != security.StatusCheckedOut {
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be 'checked-in' or 'checked-out'")
		}
		filter.Status = &st
	}
	if input.CheckpointID > 0 {
		filter.CheckpointID = &input.CheckpointID
	}

	var (
		records []security.CheckInOutRecord
		total   int64
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		records, err = repos.RecordRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.RecordRepo().Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]RecordDTO, len(records))
	for i := range records {
		dto, err := s.toRecordDTO(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		dtos[i] = *dto
	}

	return &RecordListDTO{
		Records:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns a single enriched ledger record
func (s *ActivityService) Get(ctx context.Context, id int64) (*RecordDTO, error) {
	var record *security.CheckInOutRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.toRecordDTO(ctx, record)
}

// Delete removes a ledger record
func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.RecordRepo().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.RecordRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Ledger record deleted", zap.Int64("record_id", id))
	return nil
}

// resolveItemNames looks up the display names for the item set, in item
// order. Every referenced subject must exist at check-in time.
func (s *ActivityService) resolveItemNames(ctx context.Context, itemType security.ItemType, items security.ItemSet) ([]string, error) {
	names := make([]string, len(items))

	switch itemType {
	case security.ItemTypeVehicle:
		vehicles, err := s.vehicleRepo.FindByIDs(ctx, items)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*fleet.Vehicle, len(vehicles))
		for i := range vehicles {
			byID[vehicles[i].ID] = &vehicles[i]
		}
		for i, id := range items {
			v, ok := byID[id]
			if !ok {
				return nil, shared.NewDomainError("NOT_FOUND", "One or more vehicles do not exist")
			}
			names[i] = v.PlateNumber
		}
	case security.ItemTypeVisitor:
		visitors, err := s.visitorRepo.FindByIDs(ctx, items)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*fleet.Visitor, len(visitors))
		for i := range visitors {
			byID[visitors[i].ID] = &visitors[i]
		}
		for i, id := range items {
			v, ok := byID[id]
			if !ok {
				return nil, shared.NewDomainError("NOT_FOUND", "One or more visitors do not exist")
			}
			names[i] = v.Name
		}
	}

	return names, nil
}

// toRecordDTO enriches a record with the current fleet data. Subjects
// deleted since check-in fall back to the snapshotted name.
func (s *ActivityService) toRecordDTO(ctx context.Context, r *security.CheckInOutRecord) (*RecordDTO, error) {
	items := make([]ItemDTO, len(r.Items))
	for i, id := range r.Items {
		name := ""
		if i < len(r.ItemNames) {
			name = r.ItemNames[i]
		}
		items[i] = ItemDTO{ID: id, Name: name}
	}

	switch r.Type {
	case security.ItemTypeVehicle:
		vehicles, err := s.vehicleRepo.FindByIDs(ctx, r.Items)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*fleet.Vehicle, len(vehicles))
		for i := range vehicles {
			byID[vehicles[i].ID] = &vehicles[i]
		}
		for i := range items {
			if v, ok := byID[items[i].ID]; ok {
				items[i].Name = v.PlateNumber
				items[i].Photo = s.storage.ObjectURL(v.FirstImage())
			}
		}
	case security.ItemTypeVisitor:
		visitors, err := s.visitorRepo.FindByIDs(ctx, r.Items)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]*fleet.Visitor, len(visitors))
		for i := range visitors {
			byID[visitors[i].ID] = &visitors[i]
		}
		for i := range items {
			if v, ok := byID[items[i].ID]; ok {
				items[i].Name = v.Name
				items[i].Photo = s.storage.ObjectURL(v.PhotoKey)
			}
		}
	}

	return &RecordDTO{
		ID:             r.ID,
		CheckpointID:   r.CheckpointID,
		CheckpointName: r.CheckpointName,
		Type:           string(r.Type),
		Status:         string(r.Status),
		Shift:          r.Shift,
		Purpose:        r.Purpose,
		ItemIDs:        r.Items,
		ItemNames:      r.ItemNames,
		Items:          items,
		CheckedInBy:    r.CheckedInBy,
		CheckedOutBy:   r.CheckedOutBy,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}
