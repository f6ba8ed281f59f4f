package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/shared"
)

func newTestCheckpointService() (*CheckpointService, *MockCheckpointRepository) {
	repo := new(MockCheckpointRepository)
	return NewCheckpointService(repo, zap.NewNop()), repo
}

func TestCheckpointService_Create(t *testing.T) {
	t.Run("creates checkpoint", func(t *testing.T) {
		svc, repo := newTestCheckpointService()
		repo.On("ExistsByName", mock.Anything, "Main Gate", int64(0)).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		dto, err := svc.Create(context.Background(), CreateCheckpointInput{Name: "Main Gate", Location: "north", Description: "Primary entrance"}, 7)

		require.NoError(t, err)
		assert.Equal(t, "Main Gate", dto.Name)
		assert.Equal(t, "Primary entrance", dto.Description)
		assert.Equal(t, int64(7), dto.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc, repo := newTestCheckpointService()
		repo.On("ExistsByName", mock.Anything, "Main Gate", int64(0)).Return(true, nil)

		_, err := svc.Create(context.Background(), CreateCheckpointInput{Name: "Main Gate"}, 7)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCheckpointService_Update(t *testing.T) {
	t.Run("renames checkpoint without touching history snapshots", func(t *testing.T) {
		svc, repo := newTestCheckpointService()
		cp := testCheckpoint(1, "Main Gate")
		repo.On("FindByID", mock.Anything, int64(1)).Return(cp, nil)
		repo.On("ExistsByName", mock.Anything, "East Gate", int64(1)).Return(false, nil)
		repo.On("Save", mock.Anything, cp).Return(nil)

		dto, err := svc.Update(context.Background(), 1, UpdateCheckpointInput{Name: "East Gate", Location: "east"})

		require.NoError(t, err)
		assert.Equal(t, "East Gate", dto.Name)
	})

	t.Run("missing checkpoint returns not found", func(t *testing.T) {
		svc, repo := newTestCheckpointService()
		repo.On("FindByID", mock.Anything, int64(404)).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(context.Background(), 404, UpdateCheckpointInput{Name: "X"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCheckpointService_Delete(t *testing.T) {
	svc, repo := newTestCheckpointService()
	repo.On("FindByID", mock.Anything, int64(2)).Return(testCheckpoint(2, "Side Gate"), nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 2))
	repo.AssertExpectations(t)
}
