package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StepPetStatus labels failures of the pet write that follows an accepted request.
const StepPetStatus = "pet_status"

// Service defines the adoption request operations exposed to controllers.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*AdoptionRequestDTO, error)
	List(ctx context.Context, filter ListFilter) ([]AdoptionRequestDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*AdoptionRequestDTO, error)
}

type requestRepository interface {
	Create(ctx context.Context, req *models.AdoptionRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdoptionRequest, error)
	List(ctx context.Context, filter ListFilter) ([]models.AdoptionRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdoptionStatus) error
}

type petStatusWriter interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.PetStatus) error
}

type service struct {
	requests requestRepository
	pets     petStatusWriter
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an adoptions service.
type ServiceParams struct {
	Requests requestRepository
	Pets     petStatusWriter
	Logger   *logger.Logger
}

// NewService constructs the adoptions service.
func NewService(params ServiceParams) (Service, error) {
	if params.Requests == nil {
		return nil, fmt.Errorf("adoption request repository is required")
	}
	if params.Pets == nil {
		return nil, fmt.Errorf("pet status writer is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		requests: params.Requests,
		pets:     params.Pets,
		logg:     logg,
	}, nil
}

// Submit validates every reference before anything is persisted. The new
// request starts pending and the pet is left untouched.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*AdoptionRequestDTO, error) {
	invalid := map[string]string{}
	petID := parseRef(req.Pet, "pet", invalid)
	ownerID := parseRef(req.Owner, "owner", invalid)
	adopterID := parseRef(req.Adopter, "adopter", invalid)
	if len(invalid) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(invalid)
	}

	record := &models.AdoptionRequest{
		PetID:     petID,
		OwnerID:   ownerID,
		AdopterID: adopterID,
		Message:   req.Message,
		Status:    enums.AdoptionStatusPending,
	}
	if err := s.requests.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create adoption request")
	}
	return FromModel(record), nil
}

func parseRef(raw, field string, invalid map[string]string) uuid.UUID {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		invalid[field] = "is required"
		return uuid.Nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil || id == uuid.Nil {
		invalid[field] = "must be a valid id"
		return uuid.Nil
	}
	return id
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AdoptionRequestDTO, error) {
	list, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list adoption requests")
	}
	out := make([]AdoptionRequestDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out, nil
}

// UpdateStatus overwrites the request status, then moves the pet to pending
// when the request was accepted. The request write is authoritative: a failed
// pet write is reported but not rolled back, and repeating the call with the
// same status completes it.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*AdoptionRequestDTO, error) {
	next, err := enums.ParseAdoptionStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").
			WithDetails(map[string]string{"status": "must be one of pending, accepted, rejected"})
	}

	record, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("adoption request")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load adoption request")
	}

	if err := s.requests.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("adoption request")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update adoption request status")
	}
	record.Status = next

	if next != enums.AdoptionStatusAccepted {
		return FromModel(record), nil
	}

	if err := s.pets.UpdateStatus(ctx, record.PetID, enums.PetStatusPending); err != nil {
		details := map[string]any{
			"step":       StepPetStatus,
			"request_id": record.ID.String(),
			"pet_id":     record.PetID.String(),
		}
		logCtx := s.logg.WithFields(ctx, details)
		s.logg.Error(logCtx, "adoption accepted but pet status not advanced", err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("pet").WithDetails(details)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pet status").WithDetails(details)
	}
	return FromModel(record), nil
}
