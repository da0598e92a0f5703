package messagely

import (
	"context"

	"github.com/goliatone/go-router"
)

// DefaultContextKey is the router locals key the authentication step uses
// when the config does not override it.
const DefaultContextKey = "user"

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// ClaimsFromRequest resolves the authenticated claims for a request, checking
// the standard context first and falling back to router locals.
func ClaimsFromRequest(ctx router.Context) (AuthClaims, bool) {
	if claims, ok := GetClaims(ctx.Context()); ok {
		return claims, true
	}
	return GetRouterClaims(ctx, DefaultContextKey)
}
