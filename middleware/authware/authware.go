// Package authware provides the authentication stage of the request
// pipeline. It is deliberately best effort: it attaches claims when the
// request carries a decodable token and otherwise lets the request continue
// anonymously. Enforcement lives in the authorization guards, never here.
package authware

import (
	"context"

	"github.com/goliatone/go-router"
)

var defaultTokenLookup = "header:" + router.HeaderAuthorization + ",query:_token"

// AuthClaims mirrors the claims interface from the root package without
// creating an import cycle.
type AuthClaims interface {
	Subject() string
	Username() string
}

// TokenDecoder turns a raw token into claims. It is total: any undecodable
// token reports ok=false and carries no error.
type TokenDecoder func(raw string) (AuthClaims, bool)

type Config struct {
	// Filter skips the middleware entirely when it returns true
	Filter func(router.Context) bool

	// Decoder is required
	Decoder TokenDecoder

	// ContextKey is the router locals key claims are stored under
	ContextKey string

	// TokenLookup is a comma separated list of "<source>:<name>" entries
	TokenLookup string

	// AuthScheme is the header scheme stripped from header tokens
	AuthScheme string

	// ContextEnricher propagates claims to the standard Go context so code
	// below the router can read them without a router.Context.
	ContextEnricher func(c context.Context, claims AuthClaims) context.Context
}

// New builds the authentication middleware. Whatever happens during
// extraction or decoding, the wrapped handler always runs.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return hf(ctx)
			}

			raw := ExtractRawToken(ctx, cfg.getExtractors())
			if raw == "" {
				return hf(ctx)
			}

			claims, ok := cfg.Decoder(raw)
			if !ok {
				// an undecodable token is the same as no token
				return hf(ctx)
			}

			ctx.Locals(cfg.ContextKey, claims)

			if cfg.ContextEnricher != nil {
				stdCtx := ctx.Context()
				ctx.SetContext(cfg.ContextEnricher(stdCtx, claims))
			}

			return hf(ctx)
		}
	}
}

// ExtractRawToken runs the extractors in order and returns the first hit
func ExtractRawToken(ctx router.Context, extractors []TokenExtractor) string {
	for _, extractor := range extractors {
		if raw := extractor(ctx); raw != "" {
			return raw
		}
	}
	return ""
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Decoder == nil {
		panic("MSGLY: auth middleware configuration: Decoder is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func (cfg *Config) getExtractors() []TokenExtractor {
	return GetExtractors(cfg.TokenLookup, cfg.AuthScheme)
}
