package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	identityapp "github.com/gatesec/backend/internal/application/identity"
	"github.com/gatesec/backend/internal/domain/identity"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/infrastructure/auth"
	"github.com/gatesec/backend/internal/infrastructure/config"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
	"github.com/gatesec/backend/internal/interfaces/http/middleware"
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

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "gatesec-test",
	}
}

func testUser(t *testing.T, password string) *identity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := identity.NewUser("Grace Okafor", "grace@gatesec.test", string(hash), identity.UserRoleAdmin)
	require.NoError(t, err)
	user.ID = 1
	return user
}

func setupAuthRouter(repo *MockUserRepository) (*gin.Engine, *auth.JWTService) {
	jwtService := auth.NewJWTService(testJWTConfig())
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(service)

	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, jwtService
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("returns token pair for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := testUser(t, "password123")
		repo.On("FindByEmail", mock.Anything, "grace@gatesec.test").Return(user, nil)

		r, _ := setupAuthRouter(repo)

		body, _ := json.Marshal(gin.H{"email": "grace@gatesec.test", "password": "password123"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		user := testUser(t, "password123")
		repo.On("FindByEmail", mock.Anything, "grace@gatesec.test").Return(user, nil)

		r, _ := setupAuthRouter(repo)

		body, _ := json.Marshal(gin.H{"email": "grace@gatesec.test", "password": "wrong-password"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@gatesec.test").Return(nil, shared.ErrNotFound)

		r, _ := setupAuthRouter(repo)

		body, _ := json.Marshal(gin.H{"email": "nobody@gatesec.test", "password": "password123"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		repo := new(MockUserRepository)
		r, _ := setupAuthRouter(repo)

		body, _ := json.Marshal(gin.H{"email": "not-an-email"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	repo := new(MockUserRepository)
	user := testUser(t, "password123")
	repo.On("FindByID", mock.Anything, int64(1)).Return(user, nil)

	r, jwtService := setupAuthRouter(repo)

	pair, err := jwtService.GenerateTokenPair(1, "grace@gatesec.test", "admin")
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{"refresh_token": pair.RefreshToken})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthHandlerMe(t *testing.T) {
	repo := new(MockUserRepository)
	user := testUser(t, "password123")
	repo.On("FindByID", mock.Anything, int64(1)).Return(user, nil)

	jwtService := auth.NewJWTService(testJWTConfig())
	service := identityapp.NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	handler := NewAuthHandler(service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, int64(1))
	})
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "grace@gatesec.test")
}

func TestAuthHandlerLogout(t *testing.T) {
	repo := new(MockUserRepository)
	r, jwtService := setupAuthRouter(repo)

	pair, err := jwtService.GenerateTokenPair(1, "grace@gatesec.test", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
