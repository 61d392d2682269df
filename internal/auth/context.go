package auth

import (
	"context"

	"github.com/protomem/people-registry/internal/ctxstore"
	"github.com/protomem/people-registry/internal/model"
)

const _claimsKey = ctxstore.Key("authClaims")

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return ctxstore.With(ctx, _claimsKey, claims)
}

func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	return ctxstore.From[*Claims](ctx, _claimsKey)
}

// HasRole reports whether the authenticated account holds one of roles.
func HasRole(ctx context.Context, roles ...model.Role) bool {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return false
	}

	for _, role := range roles {
		if claims.Role == role {
			return true
		}
	}
	return false
}
