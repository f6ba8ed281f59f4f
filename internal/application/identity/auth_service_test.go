package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatesec/backend/internal/domain/identity"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/auth"
	"github.com/gatesec/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-test-secret-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gatesec-test",
	})
}

func newTestAuthService() (*AuthService, *MockUserRepository) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return svc, repo
}

func testUser(t *testing.T, id int64, email, password string, role identity.UserRole) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := identity.NewUser("Test User", email, string(hash), role)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns a token pair on valid credentials", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "correct horse", identity.UserRoleAdmin)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

		result, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "correct horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, int64(1), result.User.ID)
		assert.Equal(t, "admin", result.User.Role)
		assert.Equal(t, int64(900), result.ExpiresIn)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "correct horse", identity.UserRoleAdmin)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

		_, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "wrong"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("unknown email yields the same error as a wrong password", func(t *testing.T) {
		svc, repo := newTestAuthService()
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "pw", identity.UserRoleAdmin)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
		repo.On("FindByID", mock.Anything, int64(1)).Return(user, nil)

		login, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "pw"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "pw", identity.UserRoleAdmin)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

		login, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "pw"})
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), RefreshInput{RefreshToken: login.AccessToken})
		assert.Error(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo := newTestAuthService()
	user := testUser(t, 1, "admin@example.com", "pw", identity.UserRoleAdmin)
	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	login, err := svc.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.AccessToken))

	t.Run("garbage token is rejected", func(t *testing.T) {
		assert.Error(t, svc.Logout(context.Background(), "garbage"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "old password", identity.UserRoleAdmin)
		repo.On("FindByID", mock.Anything, int64(1)).Return(user, nil)

		err := svc.ChangePassword(context.Background(), 1, ChangePasswordInput{
			CurrentPassword: "not it",
			NewPassword:     "new password!",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		svc, repo := newTestAuthService()
		user := testUser(t, 1, "admin@example.com", "old password", identity.UserRoleAdmin)
		oldHash := user.PasswordHash
		repo.On("FindByID", mock.Anything, int64(1)).Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		err := svc.ChangePassword(context.Background(), 1, ChangePasswordInput{
			CurrentPassword: "old password",
			NewPassword:     "new password!",
		})

		require.NoError(t, err)
		assert.NotEqual(t, oldHash, user.PasswordHash)
	})
}
