// Package auth issues and verifies identity tokens and carries the
// authenticated caller through request contexts.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the verified caller of a request.
type Identity struct {
	UserID     uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"isAdmin"`
	IsSupplier bool      `json:"isSupplier"`
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok && id != nil
}

// IsAuthenticated reports whether id is a verified caller.
func IsAuthenticated(id *Identity) bool {
	return id != nil && id.UserID != uuid.Nil
}

// IsAdmin reports whether id carries the admin role.
func IsAdmin(id *Identity) bool {
	return IsAuthenticated(id) && id.IsAdmin
}

// IsSupplier reports whether id carries the supplier role.
func IsSupplier(id *Identity) bool {
	return IsAuthenticated(id) && id.IsSupplier
}
