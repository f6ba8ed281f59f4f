package fleet

import (
	"github.com/gatesec/backend/internal/domain/shared"
)

// RosterEntry is a point-in-time denormalized copy of a driver's summary,
// embedded on the vehicle for fast "drivers for this vehicle" reads without a
// join. Entries are not live foreign keys: they are kept in sync explicitly
// through the vehicle's roster mutation methods, and only through them.
type RosterEntry struct {
	DriverID      int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	VehicleNumber string `json:"vehicle_number"`
	DriverType    string `json:"driver_type"`
}

// Vehicle represents a registered vehicle in the fleet context.
// It is the aggregate root for the embedded driver roster.
type Vehicle struct {
	shared.BaseEntity
	PlateNumber string
	Model       string
	Color       string
	Images      []string // ordered storage keys, first image is the display photo
	OwnerID     *int64
	Roster      []RosterEntry
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle with required fields
func NewVehicle(plateNumber, model, color string, ownerID *int64) (*Vehicle, error) {
	if err := validatePlateNumber(plateNumber); err != nil {
		return nil, err
	}
	if model == "" {
		return nil, shared.NewDomainError("INVALID_MODEL", "Vehicle model cannot be empty")
	}
	if color == "" {
		return nil, shared.NewDomainError("INVALID_COLOR", "Vehicle color cannot be empty")
	}

	return &Vehicle{
		BaseEntity:  shared.NewBaseEntity(),
		PlateNumber: plateNumber,
		Model:       model,
		Color:       color,
		Images:      []string{},
		OwnerID:     ownerID,
		Roster:      []RosterEntry{},
	}, nil
}

// Update updates the vehicle's basic information. Empty values leave the
// current field untouched.
func (v *Vehicle) Update(plateNumber, model, color string) error {
	if plateNumber != "" {
		if err := validatePlateNumber(plateNumber); err != nil {
			return err
		}
		v.PlateNumber = plateNumber
	}
	if model != "" {
		v.Model = model
	}
	if color != "" {
		v.Color = color
	}
	v.Touch()
	return nil
}

// ReplaceImages swaps the vehicle's image set for a new ordered set of
// storage keys and returns the keys that were replaced, so the caller can
// release the old blobs.
func (v *Vehicle) ReplaceImages(keys []string) (released []string) {
	released = v.Images
	if keys == nil {
		keys = []string{}
	}
	v.Images = keys
	v.Touch()
	return released
}

// FirstImage returns the storage key of the display photo, or "" if none
func (v *Vehicle) FirstImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[0]
}

// AddRosterEntry appends a driver summary to the embedded roster.
// A second entry for the same driver is rejected.
func (v *Vehicle) AddRosterEntry(entry RosterEntry) error {
	if entry.DriverID == 0 {
		return shared.NewDomainError("INVALID_ROSTER_ENTRY", "Roster entry must reference a driver")
	}
	for _, e := range v.Roster {
		if e.DriverID == entry.DriverID {
			return shared.NewDomainError("ALREADY_EXISTS", "Driver is already on the vehicle roster")
		}
	}
	if entry.VehicleNumber == "" {
		entry.VehicleNumber = v.PlateNumber
	}
	v.Roster = append(v.Roster, entry)
	v.Touch()
	return nil
}

// SyncRosterEntry overwrites the mirrored fields of the roster entry with a
// matching driver id, leaving other entries untouched. Returns false if no
// entry matches.
func (v *Vehicle) SyncRosterEntry(entry RosterEntry) bool {
	for i, e := range v.Roster {
		if e.DriverID == entry.DriverID {
			if entry.VehicleNumber == "" {
				entry.VehicleNumber = v.PlateNumber
			}
			v.Roster[i] = entry
			v.Touch()
			return true
		}
	}
	return false
}

// RemoveRosterEntry prunes the roster entry for the given driver id.
// Returns false if no entry matches.
func (v *Vehicle) RemoveRosterEntry(driverID int64) bool {
	for i, e := range v.Roster {
		if e.DriverID == driverID {
			v.Roster = append(v.Roster[:i], v.Roster[i+1:]...)
			v.Touch()
			return true
		}
	}
	return false
}

// HasRosterEntry reports whether the roster contains the given driver id
func (v *Vehicle) HasRosterEntry(driverID int64) bool {
	for _, e := range v.Roster {
		if e.DriverID == driverID {
			return true
		}
	}
	return false
}

func validatePlateNumber(plate string) error {
	if plate == "" {
		return shared.NewDomainError("INVALID_PLATE", "Plate number cannot be empty")
	}
	if len(plate) > 50 {
		return shared.NewDomainError("INVALID_PLATE", "Plate number cannot exceed 50 characters")
	}
	return nil
}
