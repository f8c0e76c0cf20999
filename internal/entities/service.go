package entities

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service defines the entity operations exposed to controllers.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]EntityDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]EntityDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

type entityRepository interface {
	List(ctx context.Context, filter ListFilter) ([]models.Entity, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.Entity, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo entityRepository
}

// ServiceParams bundles the dependencies required to build an entities service.
type ServiceParams struct {
	Repo entityRepository
}

// NewService constructs the entities service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("entity repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]EntityDTO, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entities")
	}
	return FromModels(list), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]EntityDTO, error) {
	list, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user entities")
	}
	return FromModels(list), nil
}

// Delete reports success whether or not the entity existed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete entity")
	}
	return &DeleteResult{ID: id, Message: "entity deleted"}, nil
}
