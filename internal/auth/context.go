package auth

import (
	"context"

	"github.com/knowhealth/backend/internal/domain/entities"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous requests
func UserFrom(ctx context.Context) *entities.User {
	user, _ := ctx.Value(userContextKey).(*entities.User)
	return user
}
