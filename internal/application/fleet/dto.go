package fleet

import (
	"time"

	"github.com/gatesec/backend/internal/domain/fleet"
)

// CreateVehicleInput contains the data to register a vehicle
type CreateVehicleInput struct {
	PlateNumber string   `json:"plate_number" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Color       string   `json:"color"`
	OwnerID     *int64   `json:"owner_id"`
	Images      []string `json:"images"` // base64 data URLs
}

// UpdateVehicleInput contains the optional changes for a vehicle.
// Empty strings leave the current value untouched; a non-nil Images
// slice replaces the whole image set.
type UpdateVehicleInput struct {
	PlateNumber string   `json:"plate_number"`
	Model       string   `json:"model"`
	Color       string   `json:"color"`
	OwnerID     *int64   `json:"owner_id"`
	Images      []string `json:"images"`
}

// CreateDriverInput contains the data to register a driver
type CreateDriverInput struct {
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	VehicleNumber string `json:"vehicle_number"`
	Type          string `json:"type" binding:"required,oneof=staff cargo"`
	VehicleID     *int64 `json:"vehicle_id"`
	Photo         string `json:"photo"` // base64 data URL, optional
}

// UpdateDriverInput contains the optional changes for a driver.
// Nil pointers leave the current value untouched.
type UpdateDriverInput struct {
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
	VehicleNumber *string `json:"vehicle_number"`
	Type          *string `json:"type"`
	Status        *string `json:"status"`
	VehicleID     *int64  `json:"vehicle_id"`
	Photo         *string `json:"photo"`
}

// CreateVisitorInput contains the data to register a visitor
type CreateVisitorInput struct {
	Name     string `json:"name" binding:"required"`
	IDNumber string `json:"id_number" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Company  string `json:"company"`
	Photo    string `json:"photo"` // base64 data URL, optional
}

// UpdateVisitorInput contains the optional changes for a visitor
type UpdateVisitorInput struct {
	Name     string  `json:"name"`
	IDNumber string  `json:"id_number"`
	Phone    string  `json:"phone"`
	Company  string  `json:"company"`
	Photo    *string `json:"photo"`
}

// RosterEntryDTO is the API representation of a vehicle's roster entry
type RosterEntryDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	VehicleNumber string `json:"vehicle_number"`
	DriverType    string `json:"driver_type"`
}

// VehicleDTO is the API representation of a vehicle
type VehicleDTO struct {
	ID          int64            `json:"id"`
	PlateNumber string           `json:"plate_number"`
	Model       string           `json:"model"`
	Color       string           `json:"color"`
	OwnerID     *int64           `json:"owner_id,omitempty"`
	Images      []string         `json:"images"`
	Photo       string           `json:"photo"` // first image, "" if none
	Drivers     []RosterEntryDTO `json:"drivers"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// DriverDTO is the API representation of a driver
type DriverDTO struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	VehicleNumber string    `json:"vehicle_number"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Photo         string    `json:"photo"`
	VehicleID     *int64    `json:"vehicle_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VisitorDTO is the API representation of a visitor
type VisitorDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IDNumber  string    `json:"id_number"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToVehicleDTO converts a domain vehicle to its API representation,
// resolving stored image keys to public URLs.
func ToVehicleDTO(v *fleet.Vehicle, storage ObjectStorage) VehicleDTO {
	images := make([]string, len(v.Images))
	for i, key := range v.Images {
		images[i] = storage.ObjectURL(key)
	}
	photo := ""
	if len(images) > 0 {
		photo = images[0]
	}

	drivers := make([]RosterEntryDTO, len(v.Roster))
	for i, e := range v.Roster {
		drivers[i] = RosterEntryDTO{
			ID:            e.DriverID,
			Name:          e.Name,
			Phone:         e.Phone,
			LicenseNumber: e.LicenseNumber,
			VehicleNumber: e.VehicleNumber,
			DriverType:    e.DriverType,
		}
	}

	return VehicleDTO{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Model:       v.Model,
		Color:       v.Color,
		OwnerID:     v.OwnerID,
		Images:      images,
		Photo:       photo,
		Drivers:     drivers,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToDriverDTO converts a domain driver to its API representation
func ToDriverDTO(d *fleet.Driver, storage ObjectStorage) DriverDTO {
	return DriverDTO{
		ID:            d.ID,
		FullName:      d.FullName,
		Phone:         d.Phone,
		LicenseNumber: d.LicenseNumber,
		VehicleNumber: d.VehicleNumber,
		Type:          string(d.Type),
		Status:        string(d.Status),
		Photo:         storage.ObjectURL(d.PhotoKey),
		VehicleID:     d.VehicleID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToVisitorDTO converts a domain visitor to its API representation
func ToVisitorDTO(v *fleet.Visitor, storage ObjectStorage) VisitorDTO {
	return VisitorDTO{
		ID:        v.ID,
		Name:      v.Name,
		IDNumber:  v.IDNumber,
		Phone:     v.Phone,
		Company:   v.Company,
		Photo:     storage.ObjectURL(v.PhotoKey),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
