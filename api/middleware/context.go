package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

// Caller is the authenticated user behind a request.
type Caller struct {
	ID   uuid.UUID
	Role enums.UserRole
	Name string
}

type callerKey struct{}

// WithCaller marks ctx as authenticated by c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom reports the authenticated caller; ok is false for anonymous
// requests.
func CallerFrom(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok || c.ID == uuid.Nil {
		return Caller{}, false
	}
	return c, true
}

// CallerID returns the authenticated caller id, or nil for anonymous requests.
func CallerID(ctx context.Context) *uuid.UUID {
	c, ok := CallerFrom(ctx)
	if !ok {
		return nil
	}
	return &c.ID
}
