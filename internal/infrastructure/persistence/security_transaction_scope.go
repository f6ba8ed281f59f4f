package persistence

import (
	"context"

	"gorm.io/gorm"

	securityapp "github.com/gatesec/backend/internal/application/security"
	"github.com/gatesec/backend/internal/domain/security"
)

// GormSecurityTransactionScope implements securityapp.TransactionScope using GORM transactions
type GormSecurityTransactionScope struct {
	db *gorm.DB
}

// NewGormSecurityTransactionScope creates a new GormSecurityTransactionScope
func NewGormSecurityTransactionScope(db *gorm.DB) *GormSecurityTransactionScope {
	return &GormSecurityTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. Row
// locks taken by the locked repository reads hold until commit.
func (s *GormSecurityTransactionScope) Execute(ctx context.Context, fn func(repos securityapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormSecurityTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormSecurityTransactionalRepositories provides repositories bound to a transaction
type gormSecurityTransactionalRepositories struct {
	tx *gorm.DB
}

// RecordRepo returns the ledger repository scoped to the current transaction
func (r *gormSecurityTransactionalRepositories) RecordRepo() security.CheckInOutRepository {
	return NewGormCheckInOutRepository(r.tx)
}

var (
	_ securityapp.TransactionScope          = (*GormSecurityTransactionScope)(nil)
	_ securityapp.TransactionalRepositories = (*gormSecurityTransactionalRepositories)(nil)
)
