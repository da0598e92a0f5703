package messagely_test

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"

	messagely "github.com/kneyzberg/messagely"
)

// TestIdentity is a simple Identity implementation for tests
type TestIdentity struct {
	username string
}

func (t TestIdentity) Username() string { return t.username }

// MockIdentityProvider mocks the IdentityProvider interface
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, username, password string) (messagely.Identity, error) {
	args := m.Called(ctx, username, password)
	if v := args.Get(0); v != nil {
		return v.(messagely.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserTracker mocks the UserTracker store interface
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByUsername(ctx context.Context, username string, criteria ...repository.SelectCriteria) (*messagely.User, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*messagely.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *messagely.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAuthenticator mocks the Authenticator interface
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

type mockConfig struct {
	signingKey      string
	contextKey      string
	tokenExpiration int
	tokenLookup     string
	authScheme      string
	issuer          string
	audience        []string
}

func newMockConfig() mockConfig {
	return mockConfig{
		signingKey:      "test-signing-key",
		contextKey:      "user",
		tokenExpiration: 24,
		tokenLookup:     "header:Authorization",
		authScheme:      "Bearer",
		issuer:          "test-issuer",
	}
}

func (c mockConfig) GetSigningKey() string   { return c.signingKey }
func (c mockConfig) GetContextKey() string   { return c.contextKey }
func (c mockConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c mockConfig) GetTokenLookup() string  { return c.tokenLookup }
func (c mockConfig) GetAuthScheme() string   { return c.authScheme }
func (c mockConfig) GetIssuer() string       { return c.issuer }
func (c mockConfig) GetAudience() []string   { return c.audience }
