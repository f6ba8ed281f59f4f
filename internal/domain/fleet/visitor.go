package fleet

import (
	"github.com/gatesec/backend/internal/domain/shared"
)

// Visitor represents a registered visitor
type Visitor struct {
	shared.BaseEntity
	Name         string
	IDNumber     string // government/company ID, unique
	Phone        string
	Company      string
	PhotoKey     string // storage key of the visitor photo, "" if none
	RegisteredBy *int64 // user who registered the visitor
}

// TableName returns the table name for GORM
func (Visitor) TableName() string {
	return "visitors"
}

// NewVisitor creates a new visitor record
func NewVisitor(name, idNumber, phone, company string, registeredBy *int64) (*Visitor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Visitor name cannot be empty")
	}
	if idNumber == "" {
		return nil, shared.NewDomainError("INVALID_ID_NUMBER", "Visitor ID number cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Visitor phone cannot be empty")
	}

	return &Visitor{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		IDNumber:     idNumber,
		Phone:        phone,
		Company:      company,
		RegisteredBy: registeredBy,
	}, nil
}

// Update updates the visitor's details
func (v *Visitor) Update(name, idNumber, phone, company string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Visitor name cannot be empty")
	}
	if idNumber == "" {
		return shared.NewDomainError("INVALID_ID_NUMBER", "Visitor ID number cannot be empty")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Visitor phone cannot be empty")
	}
	v.Name = name
	v.IDNumber = idNumber
	v.Phone = phone
	v.Company = company
	v.Touch()
	return nil
}

// SetPhoto replaces the visitor's photo key and returns the key of the
// replaced photo so the caller can release the old blob ("" if none).
func (v *Visitor) SetPhoto(key string) (released string) {
	released = v.PhotoKey
	v.PhotoKey = key
	v.Touch()
	return released
}
