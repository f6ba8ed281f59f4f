package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	securityapp "github.com/gatesec/backend/internal/application/security"
	"github.com/gatesec/backend/internal/domain/security"
	"github.com/gatesec/backend/internal/domain/shared"
	"github.com/gatesec/backend/internal/interfaces/http/dto"
	"github.com/gatesec/backend/internal/interfaces/http/middleware"
)

// MockCheckpointRepository is a mock implementation of security.CheckpointRepository
type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) FindByID(ctx context.Context, id int64) (*security.Checkpoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Checkpoint), args.Error(1)
}

func (m *MockCheckpointRepository) FindAll(ctx context.Context, filter shared.Filter) ([]security.Checkpoint, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]security.Checkpoint), args.Error(1)
}

func (m *MockCheckpointRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckpointRepository) Save(ctx context.Context, checkpoint *security.Checkpoint) error {
	args := m.Called(ctx, checkpoint)
	return args.Error(0)
}

func (m *MockCheckpointRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupCheckpointRouter(repo *MockCheckpointRepository, role string) *gin.Engine {
	service := securityapp.NewCheckpointService(repo, zap.NewNop())
	handler := NewCheckpointHandler(service)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, int64(1))
		c.Set(middleware.JWTRoleKey, role)
	})
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r
}

func TestCheckpointHandlerCreate(t *testing.T) {
	t.Run("creates a checkpoint", func(t *testing.T) {
		repo := new(MockCheckpointRepository)
		repo.On("ExistsByName", mock.Anything, "Main Gate", int64(0)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*security.Checkpoint")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*security.Checkpoint).ID = 5
			}).
			Return(nil)

		r := setupCheckpointRouter(repo, "admin")

		body, _ := json.Marshal(gin.H{"name": "Main Gate", "location": "North entrance"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkpoints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(5), data["id"])
		assert.Equal(t, "Main Gate", data["name"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		repo := new(MockCheckpointRepository)
		repo.On("ExistsByName", mock.Anything, "Main Gate", int64(0)).Return(true, nil)

		r := setupCheckpointRouter(repo, "admin")

		body, _ := json.Marshal(gin.H{"name": "Main Gate"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkpoints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeAlreadyExists)
	})

	t.Run("forbids non-admins", func(t *testing.T) {
		repo := new(MockCheckpointRepository)
		r := setupCheckpointRouter(repo, "security")

		body, _ := json.Marshal(gin.H{"name": "Main Gate"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkpoints", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCheckpointHandlerGet(t *testing.T) {
	t.Run("returns a checkpoint", func(t *testing.T) {
		repo := new(MockCheckpointRepository)
		checkpoint, err := security.NewCheckpoint("East Gate", "East wing", "", 1)
		require.NoError(t, err)
		checkpoint.ID = 2
		repo.On("FindByID", mock.Anything, int64(2)).Return(checkpoint, nil)

		r := setupCheckpointRouter(repo, "security")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/checkpoints/2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "East Gate")
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		repo := new(MockCheckpointRepository)
		repo.On("FindByID", mock.Anything, int64(99)).Return(nil, shared.ErrNotFound)

		r := setupCheckpointRouter(repo, "security")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/checkpoints/99", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckpointHandlerList(t *testing.T) {
	repo := new(MockCheckpointRepository)
	main, err := security.NewCheckpoint("Main Gate", "North entrance", "", 1)
	require.NoError(t, err)
	main.ID = 1
	east, err := security.NewCheckpoint("East Gate", "East wing", "", 1)
	require.NoError(t, err)
	east.ID = 2
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]security.Checkpoint{*main, *east}, nil)

	r := setupCheckpointRouter(repo, "security")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/checkpoints", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestCheckpointHandlerDelete(t *testing.T) {
	repo := new(MockCheckpointRepository)
	checkpoint, err := security.NewCheckpoint("Main Gate", "", "", 1)
	require.NoError(t, err)
	checkpoint.ID = 1
	repo.On("FindByID", mock.Anything, int64(1)).Return(checkpoint, nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	r := setupCheckpointRouter(repo, "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/checkpoints/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
