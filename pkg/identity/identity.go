// Package identity carries the authenticated principal through request contexts.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the caller established by authentication middleware.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

type contextKey struct{}

// With returns a copy of ctx carrying p.
func With(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// From returns the principal stored in ctx, if any.
func From(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
