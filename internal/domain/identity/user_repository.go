package identity

import (
	"context"

	"github.com/gatesec/backend/internal/domain/shared"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	// ExistsByEmail checks email uniqueness; excludeID skips the given
	// user so updates do not collide with themselves (0 = exclude none).
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}
