package security

import (
	"context"

	"github.com/gatesec/backend/internal/domain/security"
)

// TransactionScope provides transactional access to the ledger repository.
// The check-then-insert of a check-in and the state transition of a
// check-out must run atomically against concurrent requests.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repository
// within a transaction.
type TransactionalRepositories interface {
	// RecordRepo returns the ledger repository scoped to the current transaction
	RecordRepo() security.CheckInOutRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	recordRepo security.CheckInOutRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repository
func NewNoOpTransactionScope(recordRepo security.CheckInOutRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{recordRepo: recordRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RecordRepo returns the ledger repository
func (s *NoOpTransactionScope) RecordRepo() security.CheckInOutRepository {
	return s.recordRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
