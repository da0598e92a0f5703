package authware

import (
	"strings"

	"github.com/goliatone/go-router"
)

// TokenExtractor pulls a raw token out of one request location. A miss is an
// empty string, never an error.
type TokenExtractor func(c router.Context) string

// GetExtractors parses a lookup expression into extractors.
// e.g. "header:Authorization,query:_token,cookie:jwt"
func GetExtractors(tokenLookup string, authSchemes ...string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) < 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(parts[1]))
		}
	}

	return extractors
}

// tokenFromHeader returns an extractor that reads the request header and
// strips the auth scheme prefix.
func tokenFromHeader(header string, authScheme string) TokenExtractor {
	return func(c router.Context) string {
		a := c.GetString(header, "")
		scheme := strings.TrimSpace(authScheme)
		l := len(scheme)
		if l == 0 {
			return strings.TrimSpace(a)
		}
		if len(a) > l+1 && strings.EqualFold(a[:l], scheme) {
			return strings.TrimSpace(a[l:])
		}
		return ""
	}
}

// tokenFromQuery returns an extractor that reads the query string.
func tokenFromQuery(param string) TokenExtractor {
	return func(c router.Context) string {
		return c.Query(param, "")
	}
}

// tokenFromCookie returns an extractor that reads the named cookie.
func tokenFromCookie(name string) TokenExtractor {
	return func(c router.Context) string {
		return c.Cookies(name)
	}
}
