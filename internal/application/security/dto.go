package security

import (
	"time"

	"github.com/gatesec/backend/internal/domain/security"
)

// CreateCheckpointInput contains the data to create a checkpoint
type CreateCheckpointInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// UpdateCheckpointInput contains the changes for a checkpoint
type UpdateCheckpointInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CheckpointDTO is the API representation of a checkpoint
type CheckpointDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCheckpointDTO converts a domain checkpoint to its API representation
func ToCheckpointDTO(c *security.Checkpoint) CheckpointDTO {
	return CheckpointDTO{
		ID:          c.ID,
		Name:        c.Name,
		Location:    c.Location,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CheckInInput contains the data to open a ledger record. ItemNames is
// optional; when present it must parallel ItemIDs and is snapshotted as
// submitted, otherwise names are resolved from the fleet data.
type CheckInInput struct {
	CheckpointID int64    `json:"checkpoint_id" binding:"required"`
	Type         string   `json:"type" binding:"required,oneof=vehicle visitor"`
	ItemIDs      []int64  `json:"item_id" binding:"required,min=1"`
	ItemNames    []string `json:"item_names"`
	Shift        string   `json:"shift" binding:"required,max=50"`
	Purpose      string   `json:"purpose"`
}

// ListRecordsInput narrows a ledger listing
type ListRecordsInput struct {
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	Type         string `form:"type"`
	Status       string `form:"status"`
	CheckpointID int64  `form:"checkpoint_id"`
}

// ItemDTO is one enriched subject of a ledger record. Name and photo are
// resolved from the current fleet data; a deleted subject falls back to
// the name snapshotted at check-in and an empty photo.
type ItemDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// RecordDTO is the API representation of a ledger record
type RecordDTO struct {
	ID             int64      `json:"id"`
	CheckpointID   int64      `json:"checkpoint_id"`
	CheckpointName string     `json:"checkpoint_name"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Shift          string     `json:"shift,omitempty"`
	Purpose        string     `json:"purpose,omitempty"`
	ItemIDs        []int64    `json:"item_id"`
	ItemNames      []string   `json:"item_names"`
	Items          []ItemDTO  `json:"items"`
	CheckedInBy    int64      `json:"checked_in_by"`
	CheckedOutBy   *int64     `json:"checked_out_by,omitempty"`
	CheckInTime    time.Time  `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RecordListDTO is a paginated ledger listing
type RecordListDTO struct {
	Records  []RecordDTO `json:"records"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
