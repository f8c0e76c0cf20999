package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func serveWithPolicy(t *testing.T, policy Policy, ctx context.Context) int {
	t.Helper()
	handler := Authorize(policy, ActionPetCreate, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/pets", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthorizeAllowAllAdmitsAnonymous(t *testing.T) {
	require.Equal(t, http.StatusNoContent, serveWithPolicy(t, AllowAll, context.Background()))
	require.Equal(t, http.StatusNoContent, serveWithPolicy(t, nil, context.Background()))
}

func TestAuthorizeRolePolicy(t *testing.T) {
	policy := RolePolicy{ActionPetCreate: {enums.UserRoleOwner, enums.UserRoleAdmin}}

	anonymous := context.Background()
	require.Equal(t, http.StatusUnauthorized, serveWithPolicy(t, policy, anonymous))

	adopter := WithCaller(context.Background(), Caller{ID: uuid.New(), Role: enums.UserRoleAdopter})
	require.Equal(t, http.StatusForbidden, serveWithPolicy(t, policy, adopter))

	owner := WithCaller(context.Background(), Caller{ID: uuid.New(), Role: enums.UserRoleOwner})
	require.Equal(t, http.StatusNoContent, serveWithPolicy(t, policy, owner))

	unlisted := RolePolicy{ActionPetDelete: {enums.UserRoleAdmin}}
	require.Equal(t, http.StatusNoContent, serveWithPolicy(t, unlisted, anonymous))
}

func TestAuthorizeUntypedErrorIsForbidden(t *testing.T) {
	deny := PolicyFunc(func(context.Context, Action, *http.Request) error {
		return errors.New("nope")
	})
	require.Equal(t, http.StatusForbidden, serveWithPolicy(t, deny, context.Background()))
}
