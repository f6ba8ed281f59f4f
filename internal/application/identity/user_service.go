package identity

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatesec/backend/internal/domain/identity"
	"github.com/gatesec/backend/internal/domain/shared"
)

// UserService handles user account administration
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user administration service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	user, err := identity.NewUser(input.FullName, input.Email, string(hash), identity.UserRole(input.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	dto := ToUserDTO(user)
	return &dto, nil
}

// List returns all user accounts matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserDTO, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = ToUserDTO(&users[i])
	}
	return dtos, nil
}

// Get returns a single user account
func (s *UserService) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToUserDTO(user)
	return &dto, nil
}

// Update applies the non-nil fields of the input to a user account
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}
		if err := user.ChangeEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.FullName != nil {
		if err := user.Rename(*input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := user.ChangeRole(identity.UserRole(*input.Role)); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
		}
		if err := user.ChangePassword(string(hash)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	dto := ToUserDTO(user)
	return &dto, nil
}

// Delete removes a user account. The caller may not delete itself.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return shared.NewDomainError("INVALID_STATE", "You cannot delete your own account")
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.Int64("user_id", id), zap.Int64("deleted_by", actorID))
	return nil
}
