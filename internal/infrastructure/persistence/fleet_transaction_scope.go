package persistence

import (
	"context"

	"gorm.io/gorm"

	fleetapp "github.com/gatesec/backend/internal/application/fleet"
	"github.com/gatesec/backend/internal/domain/fleet"
)

// GormFleetTransactionScope implements fleetapp.TransactionScope using GORM transactions
type GormFleetTransactionScope struct {
	db *gorm.DB
}

// NewGormFleetTransactionScope creates a new GormFleetTransactionScope
func NewGormFleetTransactionScope(db *gorm.DB) *GormFleetTransactionScope {
	return &GormFleetTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. The
// repositories handed to fn all share the transaction connection.
func (s *GormFleetTransactionScope) Execute(ctx context.Context, fn func(repos fleetapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFleetTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFleetTransactionalRepositories provides repositories bound to a transaction
type gormFleetTransactionalRepositories struct {
	tx *gorm.DB
}

// VehicleRepo returns the vehicle repository scoped to the current transaction
func (r *gormFleetTransactionalRepositories) VehicleRepo() fleet.VehicleRepository {
	return NewGormVehicleRepository(r.tx)
}

// DriverRepo returns the driver repository scoped to the current transaction
func (r *gormFleetTransactionalRepositories) DriverRepo() fleet.DriverRepository {
	return NewGormDriverRepository(r.tx)
}

var (
	_ fleetapp.TransactionScope          = (*GormFleetTransactionScope)(nil)
	_ fleetapp.TransactionalRepositories = (*gormFleetTransactionalRepositories)(nil)
)
