package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Owner string `json:"owner" validate:"omitempty,uuid"`
}

func decode(t *testing.T, body string) (sampleBody, error) {
	t.Helper()
	var dest sampleBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return dest, DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBody(t *testing.T) {
	got, err := decode(t, `{"name":"Rex"}`)
	require.NoError(t, err)
	require.Equal(t, "Rex", got.Name)

	for _, body := range []string{``, `{"name":"Rex","extra":1}`, `{"name":"Rex"} {}`, `{"name":`} {
		_, err := decode(t, body)
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "body %q: %v", body, err)
	}
}

func TestDecodeJSONBodyFieldDetails(t *testing.T) {
	_, err := decode(t, `{"name":"toolong","email":"nope","owner":"x"}`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, map[string]string{
		"name":  "must be at most 5 characters",
		"email": "must be a valid email",
		"owner": "must be a valid id",
	}, typed.Details())
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	rctx.URLParams.Add("bad", "nope")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := ParseUUIDParam(req, "id")
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = ParseUUIDParam(req, "bad")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = ParseUUIDParam(req, "missing")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseQueryUUID(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/?owner="+id.String()+"&bad=1", nil)

	got, err := ParseQueryUUID(req, "owner")
	require.NoError(t, err)
	require.Equal(t, id, *got)

	got, err = ParseQueryUUID(req, "adopter")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = ParseQueryUUID(req, "bad")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = RequireQueryUUID(req, "adopter")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

type listingBody struct {
	Type enums.PetType  `json:"type" validate:"required,enum"`
	Size *enums.PetSize `json:"size,omitempty" validate:"omitempty,enum"`
}

func TestEnumTag(t *testing.T) {
	small := enums.PetSize("small")
	require.NoError(t, ValidateStruct(listingBody{Type: enums.PetTypeDog, Size: &small}))
	require.NoError(t, ValidateStruct(listingBody{Type: enums.PetTypeCat}))

	huge := enums.PetSize("huge")
	err := ValidateStruct(listingBody{Type: "dragon", Size: &huge})
	require.Equal(t, map[string]string{
		"type": "is not a supported value",
		"size": "is not a supported value",
	}, pkgerrors.As(err).Details())
}
