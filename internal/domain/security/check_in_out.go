package security

import (
	"fmt"
	"time"

	"github.com/gatesec/backend/internal/domain/shared"
)

// ItemType identifies what kind of subject a ledger record tracks
type ItemType string

const (
	ItemTypeVehicle ItemType = "vehicle"
	ItemTypeVisitor ItemType = "visitor"
)

// RecordStatus is the lifecycle state of a ledger record
type RecordStatus string

const (
	StatusCheckedIn  RecordStatus = "checked-in"
	StatusCheckedOut RecordStatus = "checked-out"
)

// CheckInOutRecord is one entry in the checkpoint activity ledger. A record
// covers one or more subjects of a single type passing a checkpoint
// together; it is created checked-in and transitions to checked-out at
// most once.
type CheckInOutRecord struct {
	shared.BaseEntity
	CheckpointID   int64
	CheckpointName string // snapshot at check-in time, survives checkpoint renames
	Type           ItemType
	Items          ItemSet
	ItemNames      []string // display names snapshotted at check-in, same order as Items
	Status         RecordStatus
	Shift          string // duty period label (morning/afternoon/night)
	Purpose        string
	CheckedInBy    int64
	CheckedOutBy   *int64
	CheckInTime    time.Time
	CheckOutTime   *time.Time
}

// TableName returns the table name for GORM
func (CheckInOutRecord) TableName() string {
	return "check_in_outs"
}

// NewCheckInOutRecord opens a ledger record in the checked-in state.
// The caller is responsible for the conflict check against active records;
// item names must line up one-to-one with the item set.
func NewCheckInOutRecord(checkpointID int64, checkpointName string, itemType ItemType, items ItemSet, itemNames []string, shift, purpose string, checkedInBy int64, now time.Time) (*CheckInOutRecord, error) {
	if err := ValidateItemType(itemType); err != nil {
		return nil, err
	}
	if checkpointID <= 0 {
		return nil, shared.NewDomainError("INVALID_CHECKPOINT", "Checkpoint is required")
	}
	if checkpointName == "" {
		return nil, shared.NewDomainError("INVALID_CHECKPOINT", "Checkpoint name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "At least one item is required")
	}
	if len(itemNames) != len(items) {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Item names must match the item list")
	}

	return &CheckInOutRecord{
		BaseEntity:     shared.NewBaseEntity(),
		CheckpointID:   checkpointID,
		CheckpointName: checkpointName,
		Type:           itemType,
		Items:          items,
		ItemNames:      itemNames,
		Status:         StatusCheckedIn,
		Shift:          shift,
		Purpose:        purpose,
		CheckedInBy:    checkedInBy,
		CheckInTime:    now,
	}, nil
}

// IsActive reports whether the record still holds its subjects checked in
func (r *CheckInOutRecord) IsActive() bool {
	return r.Status == StatusCheckedIn
}

// CheckOut transitions the record to checked-out. A record can only be
// checked out once; a second attempt fails with a conflict.
func (r *CheckInOutRecord) CheckOut(actor int64, now time.Time) error {
	if r.Status == StatusCheckedOut {
		return AlreadyCheckedOutError(r.Type)
	}
	r.Status = StatusCheckedOut
	r.CheckedOutBy = &actor
	r.CheckOutTime = &now
	r.Touch()
	return nil
}

// AlreadyCheckedInError is the conflict raised when a check-in overlaps an
// active record of the same type.
func AlreadyCheckedInError(t ItemType) error {
	return shared.NewDomainError("CONFLICT", fmt.Sprintf("%s already checked in.", titleCase(t)))
}

// AlreadyCheckedOutError is the conflict raised when checking out a record
// that is already checked out.
func AlreadyCheckedOutError(t ItemType) error {
	return shared.NewDomainError("CONFLICT", fmt.Sprintf("%s already checked out.", titleCase(t)))
}

// ValidateItemType checks that the type is one of the known item types
func ValidateItemType(t ItemType) error {
	switch t {
	case ItemTypeVehicle, ItemTypeVisitor:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Type must be 'vehicle' or 'visitor'")
	}
}

func titleCase(t ItemType) string {
	switch t {
	case ItemTypeVehicle:
		return "Vehicle"
	case ItemTypeVisitor:
		return "Visitor"
	default:
		return string(t)
	}
}
