package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a required UUID path parameter.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").WithDetails(map[string]string{name: "is required"})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid path parameter").WithDetails(map[string]string{name: "must be a valid id"})
	}
	return id, nil
}

// ParseQueryUUID reads an optional UUID query parameter; nil when absent.
func ParseQueryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query parameter").WithDetails(map[string]string{key: "must be a valid id"})
	}
	return &id, nil
}

// RequireQueryUUID reads a required UUID query parameter.
func RequireQueryUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := ParseQueryUUID(r, key)
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing query parameter").WithDetails(map[string]string{key: "is required"})
	}
	return *id, nil
}
