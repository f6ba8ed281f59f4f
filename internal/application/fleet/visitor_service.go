package fleet

import (
	"context"

	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
)

// VisitorService handles visitor registration and lifecycle
type VisitorService struct {
	visitorRepo fleet.VisitorRepository
	storage     ObjectStorage
	logger      *zap.Logger
}

// NewVisitorService creates a new visitor service
func NewVisitorService(visitorRepo fleet.VisitorRepository, storage ObjectStorage, logger *zap.Logger) *VisitorService {
	return &VisitorService{
		visitorRepo: visitorRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Create registers a new visitor, storing the uploaded photo if present
func (s *VisitorService) Create(ctx context.Context, input CreateVisitorInput, registeredBy int64) (*VisitorDTO, error) {
	exists, err := s.visitorRepo.ExistsByIDNumber(ctx, input.IDNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A visitor with this ID number already exists")
	}

	visitor, err := fleet.NewVisitor(input.Name, input.IDNumber, input.Phone, input.Company, &registeredBy)
	if err != nil {
		return nil, err
	}

	if input.Photo != "" {
		key, err := storeImage(ctx, s.storage, "visitors", input.Photo)
		if err != nil {
			return nil, err
		}
		visitor.PhotoKey = key
	}

	if err := s.visitorRepo.Save(ctx, visitor); err != nil {
		s.releasePhoto(ctx, visitor.PhotoKey)
		return nil, err
	}

	s.logger.Info("Visitor created",
		zap.Int64("visitor_id", visitor.ID),
		zap.String("id_number", visitor.IDNumber))

	dto := ToVisitorDTO(visitor, s.storage)
	return &dto, nil
}

// List returns all visitors matching the filter
func (s *VisitorService) List(ctx context.Context, filter shared.Filter) ([]VisitorDTO, error) {
	visitors, err := s.visitorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	dtos := make([]VisitorDTO, len(visitors))
	for i := range visitors {
		dtos[i] = ToVisitorDTO(&visitors[i], s.storage)
	}
	return dtos, nil
}

// Get returns a single visitor
func (s *VisitorService) Get(ctx context.Context, id int64) (*VisitorDTO, error) {
	visitor, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToVisitorDTO(visitor, s.storage)
	return &dto, nil
}

// Update modifies a visitor. Empty strings leave fields untouched; a
// non-nil Photo replaces the stored photo.
func (s *VisitorService) Update(ctx context.Context, id int64, input UpdateVisitorInput) (*VisitorDTO, error) {
	visitor, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := visitor.Name
	if input.Name != "" {
		name = input.Name
	}
	idNumber := visitor.IDNumber
	if input.IDNumber != "" {
		if input.IDNumber != visitor.IDNumber {
			exists, err := s.visitorRepo.ExistsByIDNumber(ctx, input.IDNumber, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A visitor with this ID number already exists")
			}
		}
		idNumber = input.IDNumber
	}
	phone := visitor.Phone
	if input.Phone != "" {
		phone = input.Phone
	}
	company := visitor.Company
	if input.Company != "" {
		company = input.Company
	}

	if err := visitor.Update(name, idNumber, phone, company); err != nil {
		return nil, err
	}

	var released string
	if input.Photo != nil && *input.Photo != "" {
		key, err := storeImage(ctx, s.storage, "visitors", *input.Photo)
		if err != nil {
			return nil, err
		}
		released = visitor.SetPhoto(key)
	}

	if err := s.visitorRepo.Save(ctx, visitor); err != nil {
		return nil, err
	}
	s.releasePhoto(ctx, released)

	dto := ToVisitorDTO(visitor, s.storage)
	return &dto, nil
}

// Delete removes a visitor and releases its stored photo
func (s *VisitorService) Delete(ctx context.Context, id int64) error {
	visitor, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.visitorRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.releasePhoto(ctx, visitor.PhotoKey)

	s.logger.Info("Visitor deleted", zap.Int64("visitor_id", id))
	return nil
}

func (s *VisitorService) releasePhoto(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete visitor photo", zap.String("key", key), zap.Error(err))
	}
}
