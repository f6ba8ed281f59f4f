package fleet

import (
	"context"

	"github.com/gatesec/backend/internal/domain/shared"
)

// VehicleRepository defines the persistence interface for vehicles
type VehicleRepository interface {
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Vehicle, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vehicle, error)
	// ExistsByPlate checks plate uniqueness; excludeID skips the given
	// vehicle so updates do not collide with themselves (0 = exclude none).
	ExistsByPlate(ctx context.Context, plate string, excludeID int64) (bool, error)
	Save(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id int64) error
}

// DriverRepository defines the persistence interface for drivers
type DriverRepository interface {
	FindByID(ctx context.Context, id int64) (*Driver, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Driver, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
	ExistsByLicense(ctx context.Context, licenseNumber string, excludeID int64) (bool, error)
	Save(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, id int64) error
}

// VisitorRepository defines the persistence interface for visitors
type VisitorRepository interface {
	FindByID(ctx context.Context, id int64) (*Visitor, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Visitor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Visitor, error)
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID int64) (bool, error)
	Save(ctx context.Context, visitor *Visitor) error
	Delete(ctx context.Context, id int64) error
}
