package security

import (
	"github.com/gatesec/backend/internal/domain/shared"
)

// Checkpoint represents a guarded gate where check-in/out activity is recorded
type Checkpoint struct {
	shared.BaseEntity
	Name        string
	Location    string
	Description string
	CreatedBy   int64
}

// TableName returns the table name for GORM
func (Checkpoint) TableName() string {
	return "checkpoints"
}

// NewCheckpoint creates a new checkpoint
func NewCheckpoint(name, location, description string, createdBy int64) (*Checkpoint, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Checkpoint name cannot be empty")
	}

	return &Checkpoint{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Location:    location,
		Description: description,
		CreatedBy:   createdBy,
	}, nil
}

// Update updates the checkpoint's details. The creator reference is fixed
// at creation and never changes.
func (c *Checkpoint) Update(name, location, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Checkpoint name cannot be empty")
	}
	c.Name = name
	c.Location = location
	c.Description = description
	c.Touch()
	return nil
}
