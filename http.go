package messagely

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	"github.com/kneyzberg/messagely/middleware/authware"
)

// RouteRegistrar captures the router methods used by the controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// AuthenticationStep builds the best-effort authentication middleware from
// the app config and the token service. Mount it once, ahead of every route.
func AuthenticationStep(opts Config, ts TokenService) router.MiddlewareFunc {
	return authware.New(authware.Config{
		Decoder:         TokenDecoderAdapter(ts),
		ContextKey:      opts.GetContextKey(),
		TokenLookup:     opts.GetTokenLookup(),
		AuthScheme:      opts.GetAuthScheme(),
		ContextEnricher: ContextEnricherAdapter,
	})
}

// TokenDecoderAdapter exposes the token service's total decode to authware
func TokenDecoderAdapter(ts TokenService) authware.TokenDecoder {
	return func(raw string) (authware.AuthClaims, bool) {
		claims, ok := ts.Decode(raw)
		if !ok {
			return nil, false
		}
		return claims, true
	}
}

// ContextEnricherAdapter adapts authware.AuthClaims back to AuthClaims and
// stores them in the standard context for downstream guard usage.
func ContextEnricherAdapter(c context.Context, claims authware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// RespondError maps a categorized error onto an HTTP status and writes the
// JSON error payload. Auth category failures reuse the uniform guard payload
// so credential probing learns nothing from the response body.
func RespondError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "internal server error")
	}

	status := router.StatusInternalServerError
	switch richErr.Category {
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return RespondUnauthorized(ctx)
	case goerrors.CategoryNotFound:
		status = router.StatusNotFound
	case goerrors.CategoryConflict:
		status = router.StatusConflict
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		status = router.StatusBadRequest
	}

	payload := map[string]any{
		"error": richErr.Message,
	}
	if richErr.TextCode != "" {
		payload["code"] = richErr.TextCode
	}

	return ctx.JSON(status, payload)
}
