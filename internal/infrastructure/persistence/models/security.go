package models

import (
	"time"

	"github.com/gatesec/backend/internal/domain/security"
)

// CheckpointModel is the persistence model for the Checkpoint domain entity
type CheckpointModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Location    string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	CreatedBy   int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CheckpointModel) TableName() string {
	return "checkpoints"
}

// ToDomain converts the persistence model to a domain Checkpoint entity
func (m *CheckpointModel) ToDomain() *security.Checkpoint {
	return &security.Checkpoint{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Location:    m.Location,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Checkpoint entity
func (m *CheckpointModel) FromDomain(c *security.Checkpoint) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Location = c.Location
	m.Description = c.Description
	m.CreatedBy = c.CreatedBy
}

// CheckpointModelFromDomain creates a new persistence model from a domain Checkpoint entity
func CheckpointModelFromDomain(c *security.Checkpoint) *CheckpointModel {
	m := &CheckpointModel{}
	m.FromDomain(c)
	return m
}

// CheckInOutModel is the persistence model for the ledger record.
// Item IDs and names are stored as parallel JSONB arrays in item order.
type CheckInOutModel struct {
	BaseModel
	CheckpointID   int64      `gorm:"not null;index"`
	CheckpointName string     `gorm:"type:varchar(255);not null"`
	Type           string     `gorm:"type:varchar(20);not null;index:idx_check_in_outs_type_status"`
	ItemIDs        Int64List  `gorm:"column:item_id;type:jsonb;not null"`
	ItemNames      StringList `gorm:"type:jsonb;not null"`
	Status         string     `gorm:"type:varchar(20);not null;index:idx_check_in_outs_type_status"`
	Shift          string     `gorm:"type:varchar(50)"`
	Purpose        string     `gorm:"type:text"`
	CheckedInBy    int64      `gorm:"not null"`
	CheckedOutBy   *int64
	CheckInTime    time.Time `gorm:"not null"`
	CheckOutTime   *time.Time
}

// TableName returns the table name for GORM
func (CheckInOutModel) TableName() string {
	return "check_in_outs"
}

// ToDomain converts the persistence model to a domain ledger record
func (m *CheckInOutModel) ToDomain() *security.CheckInOutRecord {
	return &security.CheckInOutRecord{
		BaseEntity:     m.BaseModel.ToDomain(),
		CheckpointID:   m.CheckpointID,
		CheckpointName: m.CheckpointName,
		Type:           security.ItemType(m.Type),
		Items:          security.ItemSet(m.ItemIDs),
		ItemNames:      m.ItemNames,
		Status:         security.RecordStatus(m.Status),
		Shift:          m.Shift,
		Purpose:        m.Purpose,
		CheckedInBy:    m.CheckedInBy,
		CheckedOutBy:   m.CheckedOutBy,
		CheckInTime:    m.CheckInTime,
		CheckOutTime:   m.CheckOutTime,
	}
}

// FromDomain populates the persistence model from a domain ledger record
func (m *CheckInOutModel) FromDomain(r *security.CheckInOutRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.CheckpointID = r.CheckpointID
	m.CheckpointName = r.CheckpointName
	m.Type = string(r.Type)
	m.ItemIDs = Int64List(r.Items)
	m.ItemNames = r.ItemNames
	m.Status = string(r.Status)
	m.Shift = r.Shift
	m.Purpose = r.Purpose
	m.CheckedInBy = r.CheckedInBy
	m.CheckedOutBy = r.CheckedOutBy
	m.CheckInTime = r.CheckInTime
	m.CheckOutTime = r.CheckOutTime
}

// CheckInOutModelFromDomain creates a new persistence model from a domain ledger record
func CheckInOutModelFromDomain(r *security.CheckInOutRecord) *CheckInOutModel {
	m := &CheckInOutModel{}
	m.FromDomain(r)
	return m
}
