package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/gatesec/backend/internal/domain/fleet"
)

// RosterList stores a vehicle's embedded driver roster as a JSONB column
type RosterList []fleet.RosterEntry

// Value implements driver.Valuer
func (l RosterList) Value() (driver.Value, error) {
	if l == nil {
		l = RosterList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *RosterList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// VehicleModel is the persistence model for the Vehicle domain entity
type VehicleModel struct {
	BaseModel
	PlateNumber string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Model       string     `gorm:"type:varchar(100);not null"`
	Color       string     `gorm:"type:varchar(50);not null"`
	Images      StringList `gorm:"type:jsonb;not null;default:'[]'"`
	OwnerID     *int64     `gorm:"index"`
	Drivers     RosterList `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle entity
func (m *VehicleModel) ToDomain() *fleet.Vehicle {
	return &fleet.Vehicle{
		BaseEntity:  m.BaseModel.ToDomain(),
		PlateNumber: m.PlateNumber,
		Model:       m.Model,
		Color:       m.Color,
		Images:      m.Images,
		OwnerID:     m.OwnerID,
		Roster:      m.Drivers,
	}
}

// FromDomain populates the persistence model from a domain Vehicle entity
func (m *VehicleModel) FromDomain(v *fleet.Vehicle) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.PlateNumber = v.PlateNumber
	m.Model = v.Model
	m.Color = v.Color
	m.Images = v.Images
	m.OwnerID = v.OwnerID
	m.Drivers = v.Roster
}

// VehicleModelFromDomain creates a new persistence model from a domain Vehicle entity
func VehicleModelFromDomain(v *fleet.Vehicle) *VehicleModel {
	m := &VehicleModel{}
	m.FromDomain(v)
	return m
}

// DriverModel is the persistence model for the Driver domain entity
type DriverModel struct {
	BaseModel
	FullName      string `gorm:"type:varchar(255);not null"`
	Phone         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	LicenseNumber string `gorm:"type:varchar(100);not null;uniqueIndex"`
	VehicleNumber string `gorm:"type:varchar(50)"`
	Type          string `gorm:"type:varchar(20);not null"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'"`
	PhotoKey      string `gorm:"type:varchar(500)"`
	VehicleID     *int64 `gorm:"index"`
	CreatedBy     int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DriverModel) TableName() string {
	return "drivers"
}

// ToDomain converts the persistence model to a domain Driver entity
func (m *DriverModel) ToDomain() *fleet.Driver {
	return &fleet.Driver{
		BaseEntity:    m.BaseModel.ToDomain(),
		FullName:      m.FullName,
		Phone:         m.Phone,
		LicenseNumber: m.LicenseNumber,
		VehicleNumber: m.VehicleNumber,
		Type:          fleet.DriverType(m.Type),
		Status:        fleet.DriverStatus(m.Status),
		PhotoKey:      m.PhotoKey,
		VehicleID:     m.VehicleID,
		CreatedBy:     m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Driver entity
func (m *DriverModel) FromDomain(d *fleet.Driver) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.FullName = d.FullName
	m.Phone = d.Phone
	m.LicenseNumber = d.LicenseNumber
	m.VehicleNumber = d.VehicleNumber
	m.Type = string(d.Type)
	m.Status = string(d.Status)
	m.PhotoKey = d.PhotoKey
	m.VehicleID = d.VehicleID
	m.CreatedBy = d.CreatedBy
}

// DriverModelFromDomain creates a new persistence model from a domain Driver entity
func DriverModelFromDomain(d *fleet.Driver) *DriverModel {
	m := &DriverModel{}
	m.FromDomain(d)
	return m
}

// VisitorModel is the persistence model for the Visitor domain entity
type VisitorModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null"`
	IDNumber     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Phone        string `gorm:"type:varchar(50);not null"`
	Company      string `gorm:"type:varchar(255)"`
	PhotoKey     string `gorm:"type:varchar(500)"`
	RegisteredBy *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (VisitorModel) TableName() string {
	return "visitors"
}

// ToDomain converts the persistence model to a domain Visitor entity
func (m *VisitorModel) ToDomain() *fleet.Visitor {
	return &fleet.Visitor{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		IDNumber:     m.IDNumber,
		Phone:        m.Phone,
		Company:      m.Company,
		PhotoKey:     m.PhotoKey,
		RegisteredBy: m.RegisteredBy,
	}
}

// FromDomain populates the persistence model from a domain Visitor entity
func (m *VisitorModel) FromDomain(v *fleet.Visitor) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Name = v.Name
	m.IDNumber = v.IDNumber
	m.Phone = v.Phone
	m.Company = v.Company
	m.PhotoKey = v.PhotoKey
	m.RegisteredBy = v.RegisteredBy
}

// VisitorModelFromDomain creates a new persistence model from a domain Visitor entity
func VisitorModelFromDomain(v *fleet.Visitor) *VisitorModel {
	m := &VisitorModel{}
	m.FromDomain(v)
	return m
}
