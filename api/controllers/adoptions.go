package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/api/responses"
	"github.com/angelmondragon/pawhaven-backend/api/validators"
	"github.com/angelmondragon/pawhaven-backend/internal/adoptions"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

func AdoptionsSubmit(svc adoptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "adoptions service unavailable"))
			return
		}

		var body adoptions.SubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := svc.Submit(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, req)
	}
}

// AdoptionsList returns requests filtered by owner, adopter, pet and status.
func AdoptionsList(svc adoptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "adoptions service unavailable"))
			return
		}

		filter, err := adoptionFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func adoptionFilter(r *http.Request) (adoptions.ListFilter, error) {
	var (
		filter adoptions.ListFilter
		err    error
	)
	if filter.OwnerID, err = validators.ParseQueryUUID(r, "owner"); err != nil {
		return filter, err
	}
	if filter.AdopterID, err = validators.ParseQueryUUID(r, "adopter"); err != nil {
		return filter, err
	}
	if filter.PetID, err = validators.ParseQueryUUID(r, "pet"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, parseErr := enums.ParseAdoptionStatus(raw)
		if parseErr != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid query parameter").WithDetails(map[string]string{"status": "must be one of: pending accepted rejected"})
		}
		filter.Status = &status
	}
	return filter, nil
}

// AdoptionsUpdateStatus moves a request to a new status. Accepting a request
// also marks its pet as pending.
func AdoptionsUpdateStatus(svc adoptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "adoptions service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adoptions.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := svc.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, req)
	}
}
