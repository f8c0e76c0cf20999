package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/angelmondragon/pawhaven-backend/api/middleware"
	"github.com/angelmondragon/pawhaven-backend/internal/pets"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubPetService struct {
	caller  *uuid.UUID
	created pets.CreatePetRequest
	params  pets.SearchParams
	gotID   uuid.UUID
	err     error
}

func (s *stubPetService) Create(_ context.Context, caller *uuid.UUID, input pets.CreatePetRequest) (*pets.PetDTO, error) {
	s.caller, s.created = caller, input
	if s.err != nil {
		return nil, s.err
	}
	return &pets.PetDTO{ID: uuid.New(), Name: input.Name, Type: input.Type, Status: enums.PetStatusAvailable}, nil
}

func (s *stubPetService) Search(_ context.Context, params pets.SearchParams) ([]pets.PetDTO, error) {
	s.params = params
	return []pets.PetDTO{}, s.err
}

func (s *stubPetService) Get(_ context.Context, id uuid.UUID) (*pets.PetDTO, error) {
	s.gotID = id
	if s.err != nil {
		return nil, s.err
	}
	return &pets.PetDTO{ID: id}, nil
}

func (s *stubPetService) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]pets.PetDTO, error) {
	s.gotID = ownerID
	return []pets.PetDTO{}, s.err
}

func (s *stubPetService) Update(_ context.Context, id uuid.UUID, _ pets.UpdatePetRequest) (*pets.PetDTO, error) {
	s.gotID = id
	return &pets.PetDTO{ID: id}, s.err
}

func (s *stubPetService) Delete(_ context.Context, id uuid.UUID) (*pets.DeleteResult, error) {
	s.gotID = id
	return &pets.DeleteResult{ID: id, Message: "pet deleted"}, s.err
}

func TestPetsCreateUsesCallerAndReturns201(t *testing.T) {
	svc := &stubPetService{}
	caller := uuid.New()
	req := newRequest(http.MethodPost, "/api/pets", `{"name":"Rex","type":"dog"}`, nil)
	req = req.WithContext(middleware.WithCaller(req.Context(), middleware.Caller{ID: caller, Role: enums.UserRoleOwner}))

	code, env := serve(t, PetsCreate(svc, testLogger()), req)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, svc.caller)
	require.Equal(t, caller, *svc.caller)

	var pet pets.PetDTO
	require.NoError(t, json.Unmarshal(env.Data, &pet))
	require.Equal(t, "Rex", pet.Name)
}

func TestPetsCreateRejectsInvalidBody(t *testing.T) {
	svc := &stubPetService{}
	code, env := serve(t, PetsCreate(svc, testLogger()), newRequest(http.MethodPost, "/api/pets", `{"type":"dragon"}`, nil))
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, string(pkgerrors.CodeValidation), env.Error.Code)
	require.Contains(t, env.Error.Details, "name")
	require.Contains(t, env.Error.Details, "type")
}

func TestPetsSearchParsesQuery(t *testing.T) {
	svc := &stubPetService{}
	code, _ := serve(t, PetsSearch(svc, testLogger()), newRequest(http.MethodGet, "/api/pets?type=dog,cat&vaccinated=true&maxPrice=100&sort=price-low", "", nil))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []enums.PetType{enums.PetTypeDog, enums.PetTypeCat}, svc.params.Types)
	require.NotNil(t, svc.params.Vaccinated)
	require.True(t, *svc.params.Vaccinated)
	require.Equal(t, 100.0, *svc.params.MaxPrice)
	require.Equal(t, enums.PetSortPriceLow, svc.params.Sort)
}

func TestPetsSearchRejectsMalformedBound(t *testing.T) {
	code, env := serve(t, PetsSearch(&stubPetService{}, testLogger()), newRequest(http.MethodGet, "/api/pets?minAge=old", "", nil))
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Error.Details, "minAge")
}

func TestPetsGetValidatesIDAndMapsNotFound(t *testing.T) {
	svc := &stubPetService{err: pkgerrors.NotFound("pet")}

	code, _ := serve(t, PetsGet(svc, testLogger()), newRequest(http.MethodGet, "/api/pets/x", "", map[string]string{"id": "x"}))
	require.Equal(t, http.StatusBadRequest, code)

	id := uuid.New()
	code, env := serve(t, PetsGet(svc, testLogger()), newRequest(http.MethodGet, "/api/pets/"+id.String(), "", map[string]string{"id": id.String()}))
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, string(pkgerrors.CodeNotFound), env.Error.Code)
	require.Equal(t, id, svc.gotID)
}

func TestPetsDeleteReturnsResult(t *testing.T) {
	svc := &stubPetService{}
	id := uuid.New()
	code, env := serve(t, PetsDelete(svc, testLogger()), newRequest(http.MethodDelete, "/api/pets/"+id.String(), "", map[string]string{"id": id.String()}))
	require.Equal(t, http.StatusOK, code)

	var result pets.DeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, id, result.ID)
}

func TestPetsNilServiceIsInternalError(t *testing.T) {
	code, _ := serve(t, PetsSearch(nil, testLogger()), newRequest(http.MethodGet, "/api/pets", "", nil))
	require.Equal(t, http.StatusInternalServerError, code)
}
