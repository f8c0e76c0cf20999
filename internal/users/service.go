package users

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pawhaven-backend/internal/entities"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service serves the user directory routes.
type Service interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	ListUserEntities(ctx context.Context, userID uuid.UUID) ([]entities.EntityDTO, error)
}

type userLister interface {
	ListSummaries(ctx context.Context) ([]UserSummary, error)
}

type entityLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.EntityDTO, error)
}

type service struct {
	users    userLister
	entities entityLister
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	UserRepo userLister
	Entities entityLister
}

// NewService constructs the users service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Entities == nil {
		return nil, fmt.Errorf("entities service is required")
	}
	return &service{users: params.UserRepo, entities: params.Entities}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	list, err := s.users.ListSummaries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	if list == nil {
		list = []UserSummary{}
	}
	return list, nil
}

// ListUserEntities returns an empty list for unknown users.
func (s *service) ListUserEntities(ctx context.Context, userID uuid.UUID) ([]entities.EntityDTO, error) {
	return s.entities.ListByUser(ctx, userID)
}
