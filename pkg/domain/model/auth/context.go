package auth

import (
	"context"

	"github.com/hospitalops/pulse/pkg/domain/types"
)

type ctxClaimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ctxClaimsKey{}).(*Claims)
	return claims
}

// UserIDFromContext returns the authenticated user, or EmptyUserID.
func UserIDFromContext(ctx context.Context) types.UserID {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.UserID
	}
	return types.EmptyUserID
}
