package security

import (
	"context"

	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/security"
	"github.com/gatesec/backend/internal/domain/shared"
)

// CheckpointService handles checkpoint administration
type CheckpointService struct {
	checkpointRepo security.CheckpointRepository
	logger         *zap.Logger
}

// NewCheckpointService creates a new checkpoint service
func NewCheckpointService(checkpointRepo security.CheckpointRepository, logger *zap.Logger) *CheckpointService {
	return &CheckpointService{
		checkpointRepo: checkpointRepo,
		logger:         logger,
	}
}

// Create registers a new checkpoint
func (s *CheckpointService) Create(ctx context.Context, input CreateCheckpointInput, createdBy int64) (*CheckpointDTO, error) {
	exists, err := s.checkpointRepo.ExistsByName(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A checkpoint with this name already exists")
	}

	checkpoint, err := security.NewCheckpoint(input.Name, input.Location, input.Description, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.checkpointRepo.Save(ctx, checkpoint); err != nil {
		return nil, err
	}

	s.logger.Info("Checkpoint created",
		zap.Int64("checkpoint_id", checkpoint.ID),
		zap.String("name", checkpoint.Name))

	dto := ToCheckpointDTO(checkpoint)
	return &dto, nil
}

// List returns all checkpoints matching the filter
func (s *CheckpointService) List(ctx context.Context, filter shared.Filter) ([]CheckpointDTO, error) {
	checkpoints, err := s.checkpointRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]CheckpointDTO, len(checkpoints))
	for i := range checkpoints {
		dtos[i] = ToCheckpointDTO(&checkpoints[i])
	}
	return dtos, nil
}

// Get returns a single checkpoint
func (s *CheckpointService) Get(ctx context.Context, id int64) (*CheckpointDTO, error) {
	checkpoint, err := s.checkpointRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToCheckpointDTO(checkpoint)
	return &dto, nil
}

// Update modifies a checkpoint. Existing ledger records keep the name
// snapshotted at check-in time.
func (s *CheckpointService) Update(ctx context.Context, id int64, input UpdateCheckpointInput) (*CheckpointDTO, error) {
	checkpoint, err := s.checkpointRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != checkpoint.Name {
		exists, err := s.checkpointRepo.ExistsByName(ctx, input.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A checkpoint with this name already exists")
		}
	}

	if err := checkpoint.Update(input.Name, input.Location, input.Description); err != nil {
		return nil, err
	}
	if err := s.checkpointRepo.Save(ctx, checkpoint); err != nil {
		return nil, err
	}

	dto := ToCheckpointDTO(checkpoint)
	return &dto, nil
}

// Delete removes a checkpoint. Ledger records referencing it survive
// through their snapshotted checkpoint name.
func (s *CheckpointService) Delete(ctx context.Context, id int64) error {
	if _, err := s.checkpointRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.checkpointRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Checkpoint deleted", zap.Int64("checkpoint_id", id))
	return nil
}
