package security

import (
	"context"

	"github.com/gatesec/backend/internal/domain/shared"
)

// CheckpointRepository defines the persistence interface for checkpoints
type CheckpointRepository interface {
	FindByID(ctx context.Context, id int64) (*Checkpoint, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Checkpoint, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Save(ctx context.Context, checkpoint *Checkpoint) error
	Delete(ctx context.Context, id int64) error
}

// RecordFilter narrows ledger listings
type RecordFilter struct {
	shared.Filter
	Type         *ItemType
	Status       *RecordStatus
	CheckpointID *int64
}

// CheckInOutRepository defines the persistence interface for the activity ledger
type CheckInOutRepository interface {
	FindByID(ctx context.Context, id int64) (*CheckInOutRecord, error)
	// FindByIDLocked loads a record under a row lock so a concurrent
	// checkout of the same record blocks until the transaction ends.
	FindByIDLocked(ctx context.Context, id int64) (*CheckInOutRecord, error)
	// FindAll lists records newest-first
	FindAll(ctx context.Context, filter RecordFilter) ([]CheckInOutRecord, error)
	Count(ctx context.Context, filter RecordFilter) (int64, error)
	// FindActiveByType returns all checked-in records of the given type
	FindActiveByType(ctx context.Context, itemType ItemType) ([]CheckInOutRecord, error)
	// FindActiveByTypeLocked is FindActiveByType under row locks; used for
	// the conflict check so concurrent check-ins serialize.
	FindActiveByTypeLocked(ctx context.Context, itemType ItemType) ([]CheckInOutRecord, error)
	Save(ctx context.Context, record *CheckInOutRecord) error
	Delete(ctx context.Context, id int64) error
}
