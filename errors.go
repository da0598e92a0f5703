package messagely

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeTokenExpired       = "token_expired"
	TextCodeTokenMalformed     = "token_malformed"
	TextCodeEmptyPassword      = "empty_password"
	TextCodeUnauthorized       = "unauthorized"
	TextCodeIdentityNotFound   = "identity_not_found"
	TextCodeUserNotFound       = "user_not_found"
	TextCodeMessageNotFound    = "message_not_found"
	TextCodeUsernameTaken      = "username_taken"
	TextCodeInvalidPhone       = "invalid_phone_number"
	TextCodeClaimsDecode       = "claims_decode_failed"
)

// ErrMismatchedHashAndPassword is returned when credentials do not verify.
// Unknown usernames collapse into this same error so responses never reveal
// whether an account exists.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a session token is past its expiration.
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token fails structural or signature checks.
var ErrTokenMalformed = errors.New("session token invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when an empty password reaches the hasher.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrUnauthorized is the single error surfaced by authorization guards. It
// carries no detail about which check failed.
var ErrUnauthorized = errors.New("unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is returned when a verified identity comes back empty.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// ErrUserNotFound is returned when a username has no matching account.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrMessageNotFound is returned when a message id has no matching record.
var ErrMessageNotFound = errors.New("message not found", errors.CategoryNotFound).
	WithTextCode(TextCodeMessageNotFound).
	WithCode(errors.CodeNotFound)

// ErrUsernameTaken is returned when registration collides with an existing username.
var ErrUsernameTaken = errors.New("username already taken", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrInvalidPhone is returned when a registration phone number cannot be parsed.
var ErrInvalidPhone = errors.New("phone number is not valid", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidPhone).
	WithCode(errors.CodeBadRequest)

// ErrUnableToDecodeClaims is returned when a parsed token carries unusable claims.
var ErrUnableToDecodeClaims = errors.New("unable to decode session claims", errors.CategoryAuth).
	WithTextCode(TextCodeClaimsDecode).
	WithCode(errors.CodeUnauthorized)
