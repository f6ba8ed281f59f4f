package fleet

import (
	"context"

	"github.com/gatesec/backend/internal/domain/fleet"
)

// TransactionScope provides transactional access to fleet repositories.
// Driver writes and the matching vehicle roster updates must commit or
// roll back together, so both repositories are exposed through one scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the fleet repositories
// within a transaction. All repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// VehicleRepo returns the vehicle repository scoped to the current transaction
	VehicleRepo() fleet.VehicleRepository
	// DriverRepo returns the driver repository scoped to the current transaction
	DriverRepo() fleet.DriverRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	vehicleRepo fleet.VehicleRepository
	driverRepo  fleet.DriverRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(vehicleRepo fleet.VehicleRepository, driverRepo fleet.DriverRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// VehicleRepo returns the vehicle repository
func (s *NoOpTransactionScope) VehicleRepo() fleet.VehicleRepository {
	return s.vehicleRepo
}

// DriverRepo returns the driver repository
func (s *NoOpTransactionScope) DriverRepo() fleet.DriverRepository {
	return s.driverRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
