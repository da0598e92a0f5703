package messagely

import (
	"github.com/goliatone/go-router"
)

// RequireAuthenticated rejects requests that carry no authenticated claims.
// The authentication step never blocks anything, so guards like this one are
// the only place a 401 is produced.
func RequireAuthenticated() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if _, ok := ClaimsFromRequest(ctx); !ok {
				return RespondUnauthorized(ctx)
			}
			return next(ctx)
		}
	}
}

// RequireSelf rejects requests unless the authenticated username matches the
// named route parameter exactly.
func RequireSelf(param string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims, ok := ClaimsFromRequest(ctx)
			if !ok {
				return RespondUnauthorized(ctx)
			}
			if claims.Username() != ctx.Param(param) {
				return RespondUnauthorized(ctx)
			}
			return next(ctx)
		}
	}
}

// CanReadMessage reports whether the claims holder may view the message.
// Either participant qualifies.
func CanReadMessage(claims AuthClaims, msg *Message) bool {
	if claims == nil {
		return false
	}
	return msg.IsParticipant(claims.Username())
}

// CanMarkMessageRead reports whether the claims holder may mark the message
// as read. Only the recipient qualifies.
func CanMarkMessageRead(claims AuthClaims, msg *Message) bool {
	if claims == nil {
		return false
	}
	return msg.IsRecipient(claims.Username())
}

// RespondUnauthorized writes the single guard rejection payload. It stays
// identical for every failure mode so responses leak nothing about why.
func RespondUnauthorized(ctx router.Context) error {
	return ctx.JSON(router.StatusUnauthorized, map[string]any{
		"error": ErrUnauthorized.Message,
		"code":  ErrUnauthorized.TextCode,
	})
}
