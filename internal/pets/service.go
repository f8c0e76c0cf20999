package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the pet operations exposed to controllers.
type Service interface {
	Create(ctx context.Context, caller *uuid.UUID, input CreatePetRequest) (*PetDTO, error)
	Search(ctx context.Context, params SearchParams) ([]PetDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PetDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]PetDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePetRequest) (*PetDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

type petRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	Search(ctx context.Context, query Query) ([]models.Pet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Pet, error)
	Save(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo petRepository
}

// ServiceParams bundles the dependencies required to build a pets service.
type ServiceParams struct {
	Repo petRepository
}

// NewService constructs the pets service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("pet repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Create persists a listing. An explicit owner in the body wins over the caller identity.
func (s *service) Create(ctx context.Context, caller *uuid.UUID, input CreatePetRequest) (*PetDTO, error) {
	owner, err := resolveOwner(caller, input.Owner)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"name": "is required"})
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"type": "is invalid"})
	}

	pet := input.toModel(owner)
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create pet")
	}
	return FromModel(pet), nil
}

func resolveOwner(caller *uuid.UUID, explicit *string) (uuid.UUID, error) {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*explicit))
		if err != nil {
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(map[string]string{"owner": "must be a valid id"})
		}
		return id, nil
	}
	if caller != nil && *caller != uuid.Nil {
		return *caller, nil
	}
	return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"owner": "is required"})
}

func (s *service) Search(ctx context.Context, params SearchParams) ([]PetDTO, error) {
	list, err := s.repo.Search(ctx, BuildQuery(params))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search pets")
	}
	return fromModels(list), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PetDTO, error) {
	pet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(pet), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]PetDTO, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list owner pets")
	}
	return fromModels(list), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePetRequest) (*PetDTO, error) {
	pet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	input.applyTo(pet)
	if err := s.repo.Save(ctx, pet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update pet")
	}
	return FromModel(pet), nil
}

// Delete reports success whether or not the pet existed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete pet")
	}
	return &DeleteResult{ID: id, Message: "pet deleted"}, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("pet")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load pet")
	}
	return pet, nil
}
