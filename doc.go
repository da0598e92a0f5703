// Package messagely implements a small messaging service built around
// token-based sessions: users register and log in for a signed JWT, then
// exchange text messages subject to ownership rules.
//
// Authentication vs authorization:
//   - The authentication step (middleware/authware) is best effort. It
//     decodes whatever token the request carries and attaches the claims to
//     the request context. It never halts the pipeline; a missing, expired,
//     or tampered token simply leaves the request anonymous.
//   - Authorization guards are the only enforcement point.
//     RequireAuthenticated and RequireSelf gate routes, while CanReadMessage
//     and CanMarkMessageRead gate individual message records after they are
//     loaded.
//
// Session issuance:
//   - Auther.Login verifies credentials through an IdentityProvider and signs
//     a JWT on success. RegisterUserHandler creates the account inside a
//     transaction; the HTTP layer then issues a token exactly as login would.
//
// Persistence is built on Bun repositories (see RepositoryManager) with the
// schema shipped as embedded SQL migrations via GetMigrationsFS.
package messagely
