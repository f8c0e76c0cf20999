package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/pawhaven-backend/api/responses"
	"github.com/angelmondragon/pawhaven-backend/api/validators"
	"github.com/angelmondragon/pawhaven-backend/internal/entities"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

// EntitiesList returns entities, optionally narrowed by created_by and name.
func EntitiesList(svc entities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entities service unavailable"))
			return
		}

		createdBy, err := validators.ParseQueryUUID(r, "created_by")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := entities.ListFilter{
			CreatedBy: createdBy,
			Name:      strings.TrimSpace(r.URL.Query().Get("name")),
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func EntitiesByUser(svc entities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entities service unavailable"))
			return
		}

		userID, err := validators.ParseUUIDParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// EntitiesDelete removes the entity named by the id query parameter.
func EntitiesDelete(svc entities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "entities service unavailable"))
			return
		}

		id, err := validators.RequireQueryUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
