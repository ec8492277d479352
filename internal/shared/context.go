// Package shared carries request-scoped values across layer boundaries.
package shared

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal stores the authenticated user's id on the context.
func ContextWithPrincipal(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, principalKey, userID)
}

// PrincipalFromContext returns the authenticated user's id, if any.
func PrincipalFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalKey).(uuid.UUID)
	return id, ok
}
