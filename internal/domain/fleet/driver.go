package fleet

import (
	"github.com/gatesec/backend/internal/domain/shared"
)

// DriverType distinguishes staff drivers from cargo drivers
type DriverType string

const (
	DriverTypeStaff DriverType = "staff"
	DriverTypeCargo DriverType = "cargo"
)

// DriverStatus represents the status of a driver
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
)

// Driver represents a registered driver in the fleet context
type Driver struct {
	shared.BaseEntity
	FullName      string
	Phone         string // unique
	LicenseNumber string // unique
	VehicleNumber string // optional free-text label, falls back to the vehicle plate on the roster
	Type          DriverType
	Status        DriverStatus
	PhotoKey      string // storage key of the driver photo, "" if none
	VehicleID     *int64 // owning vehicle, nil if unassigned
	CreatedBy     int64
}

// TableName returns the table name for GORM
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a new driver registered against a vehicle
func NewDriver(fullName, phone, licenseNumber, vehicleNumber string, driverType DriverType, vehicleID *int64, createdBy int64) (*Driver, error) {
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Driver name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Driver phone cannot be empty")
	}
	if licenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_LICENSE", "License number cannot be empty")
	}
	if err := ValidateDriverType(driverType); err != nil {
		return nil, err
	}

	return &Driver{
		BaseEntity:    shared.NewBaseEntity(),
		FullName:      fullName,
		Phone:         phone,
		LicenseNumber: licenseNumber,
		VehicleNumber: vehicleNumber,
		Type:          driverType,
		Status:        DriverStatusActive,
		VehicleID:     vehicleID,
		CreatedBy:     createdBy,
	}, nil
}

// DriverUpdate carries the optional field changes for an update.
// Nil pointers leave the current value untouched.
type DriverUpdate struct {
	FullName      *string
	Phone         *string
	LicenseNumber *string
	VehicleNumber *string
	Type          *DriverType
	Status        *DriverStatus
}

// Apply mutates the driver with the non-nil fields of the update
func (d *Driver) Apply(u DriverUpdate) error {
	if u.FullName != nil {
		if *u.FullName == "" {
			return shared.NewDomainError("INVALID_NAME", "Driver name cannot be empty")
		}
		d.FullName = *u.FullName
	}
	if u.Phone != nil {
		if *u.Phone == "" {
			return shared.NewDomainError("INVALID_PHONE", "Driver phone cannot be empty")
		}
		d.Phone = *u.Phone
	}
	if u.LicenseNumber != nil {
		if *u.LicenseNumber == "" {
			return shared.NewDomainError("INVALID_LICENSE", "License number cannot be empty")
		}
		d.LicenseNumber = *u.LicenseNumber
	}
	if u.VehicleNumber != nil {
		d.VehicleNumber = *u.VehicleNumber
	}
	if u.Type != nil {
		if err := ValidateDriverType(*u.Type); err != nil {
			return err
		}
		d.Type = *u.Type
	}
	if u.Status != nil {
		if err := ValidateDriverStatus(*u.Status); err != nil {
			return err
		}
		d.Status = *u.Status
	}
	d.Touch()
	return nil
}

// SetPhoto replaces the driver's photo key and returns the key of the
// replaced photo so the caller can release the old blob ("" if none).
func (d *Driver) SetPhoto(key string) (released string) {
	released = d.PhotoKey
	d.PhotoKey = key
	d.Touch()
	return released
}

// RosterEntry builds the denormalized summary mirrored onto the owning
// vehicle's roster. The vehicle-number fallback to the vehicle plate is
// applied by the vehicle when the entry is attached.
func (d *Driver) RosterEntry() RosterEntry {
	return RosterEntry{
		DriverID:      d.ID,
		Name:          d.FullName,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		VehicleNumber: d.VehicleNumber,
		DriverType:    string(d.Type),
	}
}

// IsActive returns true if the driver status is active
func (d *Driver) IsActive() bool {
	return d.Status == DriverStatusActive
}

// ValidateDriverType checks that the type is one of the known driver types
func ValidateDriverType(t DriverType) error {
	switch t {
	case DriverTypeStaff, DriverTypeCargo:
		return nil
	default:
		return shared.NewDomainError("INVALID_DRIVER_TYPE", "Driver type must be 'staff' or 'cargo'")
	}
}

// ValidateDriverStatus checks that the status is one of the known statuses
func ValidateDriverStatus(s DriverStatus) error {
	switch s {
	case DriverStatusActive, DriverStatusInactive:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Driver status must be 'active' or 'inactive'")
	}
}
