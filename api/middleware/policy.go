package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/pawhaven-backend/api/responses"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pawhaven-backend/pkg/errors"
	"github.com/angelmondragon/pawhaven-backend/pkg/logger"
)

// Action names a mutating operation guarded by a Policy.
type Action string

const (
	ActionPetCreate      Action = "pet.create"
	ActionPetUpdate      Action = "pet.update"
	ActionPetDelete      Action = "pet.delete"
	ActionEntityDelete   Action = "entity.delete"
	ActionAdoptionSubmit Action = "adoption.submit"
	ActionAdoptionUpdate Action = "adoption.update_status"
)

// Policy decides whether the caller in ctx may perform action.
// A nil error admits the request; typed errors are written as-is.
type Policy interface {
	Authorize(ctx context.Context, action Action, r *http.Request) error
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(ctx context.Context, action Action, r *http.Request) error

func (f PolicyFunc) Authorize(ctx context.Context, action Action, r *http.Request) error {
	return f(ctx, action, r)
}

// AllowAll admits every caller, authenticated or not.
var AllowAll Policy = PolicyFunc(func(context.Context, Action, *http.Request) error { return nil })

// RolePolicy restricts the listed actions to callers holding one of the
// roles. Actions without an entry are admitted.
type RolePolicy map[Action][]enums.UserRole

func (p RolePolicy) Authorize(ctx context.Context, action Action, _ *http.Request) error {
	roles, ok := p[action]
	if !ok {
		return nil
	}
	caller, ok := CallerFrom(ctx)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	for _, role := range roles {
		if role == caller.Role {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "role required")
}

// Authorize runs the policy for action before the wrapped handler.
func Authorize(policy Policy, action Action, logg *logger.Logger) func(http.Handler) http.Handler {
	if policy == nil {
		policy = AllowAll
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := policy.Authorize(r.Context(), action, r); err != nil {
				if pkgerrors.As(err) == nil {
					err = pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "access denied")
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
